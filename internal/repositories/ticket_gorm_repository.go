package repositories

import (
	"fmt"

	"lotto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTicketRepository is a GORM implementation of TicketRepository.
type GORMTicketRepository struct {
	db *gorm.DB
}

// NewGORMTicketRepository creates a new instance of GORMTicketRepository.
func NewGORMTicketRepository(db *gorm.DB) *GORMTicketRepository {
	return &GORMTicketRepository{
		db: db,
	}
}

// CreateIfUnderLimit counts the user's tickets and inserts the new one
// inside a single transaction. The limit is global per user, not per
// lottery: the count spans every lottery the user ever bought into, so
// a user at the cap cannot buy a ticket for any draw.
func (r *GORMTicketRepository) CreateIfUnderLimit(ticket *models.Ticket, limit int) error {
	if ticket.Reference == "" {
		ticket.Reference = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Ticket{}).Where("user_id = ?", ticket.UserID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count tickets for user %d: %w", ticket.UserID, err)
		}
		if count >= int64(limit) {
			return ErrTicketLimitReached
		}
		if err := tx.Create(ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		return nil
	})
}

// GetByUser retrieves all tickets owned by a user, with their lotteries
// loaded for display.
func (r *GORMTicketRepository) GetByUser(userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Preload("Lottery").Where("user_id = ?", userID).Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tickets for user %d: %w", userID, err)
	}
	return tickets, nil
}

// GetByUserAndLottery retrieves a user's tickets for one lottery.
func (r *GORMTicketRepository) GetByUserAndLottery(userID, lotteryID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("user_id = ? AND lottery_id = ?", userID, lotteryID).Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets for user %d in lottery %d: %w", userID, lotteryID, err)
	}
	return tickets, nil
}

// CountForUser counts a user's tickets across every lottery.
func (r *GORMTicketRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Ticket{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets for user %d: %w", userID, err)
	}
	return count, nil
}

// GetAllDetailed retrieves every ticket with its user and lottery.
func (r *GORMTicketRepository) GetAllDetailed() ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Preload("User").Preload("Lottery").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tickets: %w", err)
	}
	return tickets, nil
}

// RevenueReport computes, in one aggregation query, the revenue of
// every lottery that sold at least one ticket. Lotteries with no
// tickets produce no row.
func (r *GORMTicketRepository) RevenueReport() ([]models.LotteryRevenue, error) {
	var report []models.LotteryRevenue
	err := r.db.Model(&models.Ticket{}).
		Select("tickets.lottery_id AS lottery_id, lotteries.name AS name, COUNT(tickets.id) AS tickets_sold, COUNT(tickets.id) * lotteries.price_per_ticket AS total_revenue").
		Joins("JOIN lotteries ON lotteries.id = tickets.lottery_id").
		Group("tickets.lottery_id, lotteries.name, lotteries.price_per_ticket").
		Scan(&report).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lottery revenue: %w", err)
	}
	return report, nil
}
