package services_test

import (
	"testing"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedSearchLotteries(t *testing.T, repo *repositories.MockLotteryRepository) {
	t.Helper()
	lotteries := []models.Lottery{
		{ID: 1, Name: "Spring Jackpot", Description: "our big one", PricePerTicket: 5},
		{ID: 2, Name: "Winter Special", Description: "the annual spring drawing", PricePerTicket: 2},
		{ID: 3, Name: "Autumn Draw", Description: "fall fun", PricePerTicket: 1},
	}
	for i := range lotteries {
		assert.NoError(t, repo.Create(&lotteries[i]))
	}
}

func TestLotteryService_SearchLotteries(t *testing.T) {
	repo := repositories.NewMockLotteryRepository()
	svc := services.NewLotteryService(repo)
	seedSearchLotteries(t, repo)

	// Matches name or description, case-insensitively.
	results, err := svc.SearchLotteries("spring")
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "Spring Jackpot")
	assert.Contains(t, names, "Winter Special")
	assert.NotContains(t, names, "Autumn Draw")

	results, err = svc.SearchLotteries("SPRING")
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.SearchLotteries("nothing like this")
	assert.NoError(t, err)
	assert.Len(t, results, 0)
}

func TestLotteryService_DeleteLottery(t *testing.T) {
	repo := repositories.NewMockLotteryRepository()
	svc := services.NewLotteryService(repo)
	seedSearchLotteries(t, repo)

	assert.NoError(t, svc.DeleteLottery(1))
	_, err := svc.GetLotteryByID(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = svc.DeleteLottery(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
