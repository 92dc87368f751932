package repositories

import (
	"errors"
	"fmt"
	"strings"

	"lotto/internal/models"

	"gorm.io/gorm"
)

// GORMLotteryRepository is a GORM implementation of LotteryRepository.
type GORMLotteryRepository struct {
	db *gorm.DB
}

// NewGORMLotteryRepository creates a new instance of GORMLotteryRepository.
func NewGORMLotteryRepository(db *gorm.DB) *GORMLotteryRepository {
	return &GORMLotteryRepository{
		db: db,
	}
}

// GetAll retrieves all lotteries from the database.
func (r *GORMLotteryRepository) GetAll() ([]models.Lottery, error) {
	var lotteries []models.Lottery
	if err := r.db.Find(&lotteries).Error; err != nil {
		return nil, fmt.Errorf("failed to get all lotteries: %w", err)
	}
	return lotteries, nil
}

// GetByID retrieves a single lottery by its ID from the database.
func (r *GORMLotteryRepository) GetByID(id uint) (*models.Lottery, error) {
	var lottery models.Lottery
	if err := r.db.First(&lottery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lottery with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get lottery by ID %d: %w", id, err)
	}
	return &lottery, nil
}

// Create creates a new lottery in the database.
func (r *GORMLotteryRepository) Create(lottery *models.Lottery) error {
	if err := r.db.Create(lottery).Error; err != nil {
		return fmt.Errorf("failed to create lottery: %w", err)
	}
	return nil
}

// Delete deletes a lottery by its ID from the database. Tickets sold
// for it are left in place; there are no cascade rules.
func (r *GORMLotteryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Lottery{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lottery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lottery with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// Search retrieves lotteries whose name or description contains the
// query as a substring, case-insensitively. LOWER on both sides keeps
// the behavior identical on SQLite and PostgreSQL.
func (r *GORMLotteryRepository) Search(query string) ([]models.Lottery, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var lotteries []models.Lottery
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Find(&lotteries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search lotteries for %q: %w", query, err)
	}
	return lotteries, nil
}
