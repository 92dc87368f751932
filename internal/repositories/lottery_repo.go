package repositories

import "lotto/internal/models"

// LotteryRepository defines the interface for lottery data access.
type LotteryRepository interface {
	GetAll() ([]models.Lottery, error)
	GetByID(id uint) (*models.Lottery, error)
	Create(lottery *models.Lottery) error
	Delete(id uint) error
	// Search returns lotteries whose name or description contains the
	// query as a case-insensitive substring.
	Search(query string) ([]models.Lottery, error)
}
