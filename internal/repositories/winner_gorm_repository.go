package repositories

import (
	"errors"
	"fmt"

	"lotto/internal/models"

	"gorm.io/gorm"
)

// GORMWinnerRepository is a GORM implementation of WinnerRepository.
type GORMWinnerRepository struct {
	db *gorm.DB
}

// NewGORMWinnerRepository creates a new instance of GORMWinnerRepository.
func NewGORMWinnerRepository(db *gorm.DB) *GORMWinnerRepository {
	return &GORMWinnerRepository{
		db: db,
	}
}

// Create appends a new winner row for a lottery.
func (r *GORMWinnerRepository) Create(winner *models.Winner) error {
	if err := r.db.Create(winner).Error; err != nil {
		return fmt.Errorf("failed to create winner: %w", err)
	}
	return nil
}

// GetAll retrieves every posted winner row.
func (r *GORMWinnerRepository) GetAll() ([]models.Winner, error) {
	var winners []models.Winner
	if err := r.db.Find(&winners).Error; err != nil {
		return nil, fmt.Errorf("failed to get all winners: %w", err)
	}
	return winners, nil
}

// LatestForLottery retrieves the most recently inserted winner row for
// the lottery. Earlier postings are superseded and never consulted.
func (r *GORMWinnerRepository) LatestForLottery(lotteryID uint) (*models.Winner, error) {
	var winner models.Winner
	err := r.db.Where("lottery_id = ?", lotteryID).Order("id DESC").First(&winner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lottery %d: %w", lotteryID, ErrNoWinnerPosted)
		}
		return nil, fmt.Errorf("failed to get latest winner for lottery %d: %w", lotteryID, err)
	}
	return &winner, nil
}
