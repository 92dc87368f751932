package repositories

import "lotto/internal/models"

// TicketRepository defines the interface for ticket data access.
type TicketRepository interface {
	// CreateIfUnderLimit inserts the ticket only if the owning user
	// holds fewer than limit tickets in total, across every lottery.
	// The count and the insert run in one transaction so concurrent
	// purchases cannot race past the cap. Returns
	// ErrTicketLimitReached when the cap is hit.
	CreateIfUnderLimit(ticket *models.Ticket, limit int) error
	GetByUser(userID uint) ([]models.Ticket, error)
	GetByUserAndLottery(userID, lotteryID uint) ([]models.Ticket, error)
	CountForUser(userID uint) (int64, error)
	// GetAllDetailed returns every ticket with its user and lottery
	// loaded.
	GetAllDetailed() ([]models.Ticket, error)
	// RevenueReport aggregates, per lottery with at least one ticket
	// sold, tickets sold times the price per ticket.
	RevenueReport() ([]models.LotteryRevenue, error)
}
