package services_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/stretchr/testify/assert"
)

func activeLottery(id uint, name string, price float64) models.Lottery {
	now := time.Now()
	return models.Lottery{
		ID:             id,
		Name:           name,
		PricePerTicket: price,
		StartDate:      now.AddDate(0, 0, -1),
		EndDate:        now.AddDate(0, 0, 7),
		Description:    "test draw",
	}
}

func newTicketService(limit int) (*services.TicketService, *repositories.MockTicketRepository, *repositories.MockLotteryRepository) {
	ticketRepo := repositories.NewMockTicketRepository()
	lotteryRepo := repositories.NewMockLotteryRepository()
	return services.NewTicketService(ticketRepo, lotteryRepo, nil, limit), ticketRepo, lotteryRepo
}

func TestTicketService_PurchaseTicket(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	lottery := activeLottery(1, "Spring Jackpot", 5.00)
	assert.NoError(t, lotteryRepo.Create(&lottery))
	ticketRepo.SeedLottery(lottery)

	// The submitted numbers and card fields are persisted verbatim:
	// duplicates, zeroes, and out-of-range values included.
	in := services.PurchaseInput{
		Numbers:        [5]int{7, 7, 0, 999, -3},
		CardNumber:     "not even digits",
		ExpirationDate: "13/99",
		BillingAddress: "123 Main St",
	}
	ticket, err := svc.PurchaseTicket(42, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, [5]int{7, 7, 0, 999, -3}, ticket.Numbers())
	assert.Equal(t, "not even digits", ticket.CardNumber)
	assert.Equal(t, "13/99", ticket.ExpirationDate)
	assert.Equal(t, "123 Main St", ticket.BillingAddress)
	assert.NotEmpty(t, ticket.Reference)

	count, err := ticketRepo.CountForUser(42)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTicketService_PurchaseTicket_LotteryNotFound(t *testing.T) {
	svc, ticketRepo, _ := newTicketService(10)

	_, err := svc.PurchaseTicket(42, 99, services.PurchaseInput{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	count, _ := ticketRepo.CountForUser(42)
	assert.Equal(t, int64(0), count)
}

func TestTicketService_PurchaseTicket_ClosedWindow(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	now := time.Now()
	ended := models.Lottery{
		ID:             1,
		Name:           "Ended Draw",
		PricePerTicket: 2.00,
		StartDate:      now.AddDate(0, 0, -14),
		EndDate:        now.AddDate(0, 0, -7),
	}
	assert.NoError(t, lotteryRepo.Create(&ended))

	_, err := svc.PurchaseTicket(42, 1, services.PurchaseInput{})
	assert.ErrorIs(t, err, services.ErrLotteryClosed)

	count, _ := ticketRepo.CountForUser(42)
	assert.Equal(t, int64(0), count)
}

func TestTicketService_PurchaseTicket_LimitIsGlobal(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	first := activeLottery(1, "First Draw", 1.00)
	second := activeLottery(2, "Second Draw", 1.00)
	assert.NoError(t, lotteryRepo.Create(&first))
	assert.NoError(t, lotteryRepo.Create(&second))
	ticketRepo.SeedLottery(first)
	ticketRepo.SeedLottery(second)

	// Ten tickets spread over two lotteries fill the cap.
	for i := 0; i < 5; i++ {
		_, err := svc.PurchaseTicket(42, 1, services.PurchaseInput{})
		assert.NoError(t, err)
		_, err = svc.PurchaseTicket(42, 2, services.PurchaseInput{})
		assert.NoError(t, err)
	}

	// The eleventh is rejected even in a lottery the user has "only"
	// five tickets in, and the count does not move.
	_, err := svc.PurchaseTicket(42, 2, services.PurchaseInput{})
	assert.ErrorIs(t, err, repositories.ErrTicketLimitReached)

	count, _ := ticketRepo.CountForUser(42)
	assert.Equal(t, int64(10), count)

	// Another user is unaffected by the first user's cap.
	_, err = svc.PurchaseTicket(7, 1, services.PurchaseInput{})
	assert.NoError(t, err)
}

func TestTicketService_PurchaseTicket_ConcurrentCap(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	lottery := activeLottery(1, "Busy Draw", 1.00)
	assert.NoError(t, lotteryRepo.Create(&lottery))
	ticketRepo.SeedLottery(lottery)

	// Twenty simultaneous purchases by one user must not race past
	// the cap: the count check and insert share one critical section.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.PurchaseTicket(42, 1, services.PurchaseInput{})
		}()
	}
	wg.Wait()

	count, err := ticketRepo.CountForUser(42)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestTicketService_RevenueReport(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	spring := activeLottery(1, "Spring Jackpot", 19.99)
	winter := activeLottery(2, "Winter Special", 5.00)
	idle := activeLottery(3, "Idle Draw", 100.00)
	for _, l := range []models.Lottery{spring, winter, idle} {
		lottery := l
		assert.NoError(t, lotteryRepo.Create(&lottery))
		ticketRepo.SeedLottery(lottery)
	}

	for i := 0; i < 3; i++ {
		_, err := svc.PurchaseTicket(42, 1, services.PurchaseInput{})
		assert.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.PurchaseTicket(7, 2, services.PurchaseInput{})
		assert.NoError(t, err)
	}

	report, err := svc.RevenueReport()
	assert.NoError(t, err)
	assert.Len(t, report, 2) // the lottery with no tickets is absent

	byID := make(map[uint]models.LotteryRevenue)
	for _, row := range report {
		byID[row.LotteryID] = row
	}
	assert.Equal(t, int64(3), byID[1].TicketsSold)
	assert.InDelta(t, 59.97, byID[1].TotalRevenue, 1e-9)
	assert.Equal(t, int64(2), byID[2].TicketsSold)
	assert.InDelta(t, 10.00, byID[2].TotalRevenue, 1e-9)
	_, present := byID[3]
	assert.False(t, present)
}

func TestTicketService_OrderHistory(t *testing.T) {
	svc, ticketRepo, lotteryRepo := newTicketService(10)
	lottery := activeLottery(1, "Spring Jackpot", 5.00)
	assert.NoError(t, lotteryRepo.Create(&lottery))
	ticketRepo.SeedLottery(lottery)

	for i := 0; i < 3; i++ {
		_, err := svc.PurchaseTicket(42, 1, services.PurchaseInput{
			Numbers: [5]int{i, i, i, i, i},
		})
		assert.NoError(t, err)
	}
	_, err := svc.PurchaseTicket(7, 1, services.PurchaseInput{})
	assert.NoError(t, err)

	history, err := svc.OrderHistory(42)
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	for _, ticket := range history {
		assert.Equal(t, uint(42), ticket.UserID, fmt.Sprintf("ticket %s belongs to another user", ticket.Reference))
	}
}
