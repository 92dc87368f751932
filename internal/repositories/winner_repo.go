package repositories

import "lotto/internal/models"

// WinnerRepository defines the interface for winner data access.
type WinnerRepository interface {
	// Create appends a new winner row. Postings are never upserted;
	// history accumulates.
	Create(winner *models.Winner) error
	GetAll() ([]models.Winner, error)
	// LatestForLottery returns the winner row with the highest id for
	// the lottery, or ErrNoWinnerPosted when none exists.
	LatestForLottery(lotteryID uint) (*models.Winner, error)
}
