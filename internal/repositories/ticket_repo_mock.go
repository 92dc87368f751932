package repositories

import (
	"sync"

	"lotto/internal/models"

	"github.com/google/uuid"
)

// MockTicketRepository is an in-memory implementation of TicketRepository.
// Lotteries can be seeded so the revenue report and detailed listing have
// prices and names to join against.
type MockTicketRepository struct {
	tickets   map[uint]models.Ticket
	lotteries map[uint]models.Lottery
	nextID    uint
	mu        sync.RWMutex
}

// NewMockTicketRepository creates a new instance of MockTicketRepository.
func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		tickets:   make(map[uint]models.Ticket),
		lotteries: make(map[uint]models.Lottery),
		nextID:    1,
	}
}

// SeedLottery registers a lottery for the report and listing joins.
func (r *MockTicketRepository) SeedLottery(lottery models.Lottery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lotteries[lottery.ID] = lottery
}

// CreateIfUnderLimit counts and inserts under one lock, matching the
// transactional guarantee of the GORM implementation.
func (r *MockTicketRepository) CreateIfUnderLimit(ticket *models.Ticket, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, t := range r.tickets {
		if t.UserID == ticket.UserID {
			count++
		}
	}
	if count >= limit {
		return ErrTicketLimitReached
	}

	if ticket.Reference == "" {
		ticket.Reference = uuid.New().String()
	}
	if ticket.ID == 0 {
		ticket.ID = r.nextID
	}
	if ticket.ID >= r.nextID {
		r.nextID = ticket.ID + 1
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

// GetByUser returns all tickets owned by a user.
func (r *MockTicketRepository) GetByUser(userID uint) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tickets []models.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			if lottery, ok := r.lotteries[t.LotteryID]; ok {
				l := lottery
				t.Lottery = &l
			}
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

// GetByUserAndLottery returns a user's tickets for one lottery.
func (r *MockTicketRepository) GetByUserAndLottery(userID, lotteryID uint) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tickets []models.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID && t.LotteryID == lotteryID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

// CountForUser counts a user's tickets across every lottery.
func (r *MockTicketRepository) CountForUser(userID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, t := range r.tickets {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

// GetAllDetailed returns every ticket with any seeded lottery attached.
func (r *MockTicketRepository) GetAllDetailed() ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tickets := make([]models.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if lottery, ok := r.lotteries[t.LotteryID]; ok {
			l := lottery
			t.Lottery = &l
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// RevenueReport aggregates ticket counts times price per seeded lottery.
// Tickets referencing an unknown lottery are skipped, matching the SQL
// inner join.
func (r *MockTicketRepository) RevenueReport() ([]models.LotteryRevenue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uint]int64)
	for _, t := range r.tickets {
		counts[t.LotteryID]++
	}

	var report []models.LotteryRevenue
	for lotteryID, count := range counts {
		lottery, ok := r.lotteries[lotteryID]
		if !ok {
			continue
		}
		report = append(report, models.LotteryRevenue{
			LotteryID:    lotteryID,
			Name:         lottery.Name,
			TicketsSold:  count,
			TotalRevenue: float64(count) * lottery.PricePerTicket,
		})
	}
	return report, nil
}
