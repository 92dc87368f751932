package services

import (
	"lotto/internal/models"
	"lotto/internal/repositories"
)

// LotteryService handles business logic related to lotteries.
type LotteryService struct {
	repo repositories.LotteryRepository
}

// NewLotteryService creates a new LotteryService.
func NewLotteryService(repo repositories.LotteryRepository) *LotteryService {
	return &LotteryService{
		repo: repo,
	}
}

// GetAllLotteries retrieves all lotteries.
func (s *LotteryService) GetAllLotteries() ([]models.Lottery, error) {
	return s.repo.GetAll()
}

// GetLotteryByID retrieves a single lottery by its ID.
func (s *LotteryService) GetLotteryByID(id uint) (*models.Lottery, error) {
	return s.repo.GetByID(id)
}

// CreateLottery creates a new lottery.
func (s *LotteryService) CreateLottery(lottery *models.Lottery) error {
	return s.repo.Create(lottery)
}

// DeleteLottery deletes a lottery by its ID.
func (s *LotteryService) DeleteLottery(id uint) error {
	return s.repo.Delete(id)
}

// SearchLotteries finds lotteries whose name or description contains
// the query, case-insensitively. Callers are expected to have trimmed
// the query; an empty query is a listing, not a search.
func (s *LotteryService) SearchLotteries(query string) ([]models.Lottery, error) {
	return s.repo.Search(query)
}
