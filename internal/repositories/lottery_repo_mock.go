package repositories

import (
	"fmt"
	"strings"
	"sync"

	"lotto/internal/models"
)

// MockLotteryRepository is an in-memory implementation of LotteryRepository.
type MockLotteryRepository struct {
	lotteries map[uint]models.Lottery
	nextID    uint
	mu        sync.RWMutex
}

// NewMockLotteryRepository creates a new instance of MockLotteryRepository.
func NewMockLotteryRepository() *MockLotteryRepository {
	return &MockLotteryRepository{
		lotteries: make(map[uint]models.Lottery),
		nextID:    1,
	}
}

// GetAll returns all lotteries.
func (r *MockLotteryRepository) GetAll() ([]models.Lottery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lotteryList := make([]models.Lottery, 0, len(r.lotteries))
	for _, l := range r.lotteries {
		lotteryList = append(lotteryList, l)
	}
	return lotteryList, nil
}

// GetByID returns a lottery by its ID.
func (r *MockLotteryRepository) GetByID(id uint) (*models.Lottery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lottery, ok := r.lotteries[id]
	if !ok {
		return nil, fmt.Errorf("lottery with ID %d: %w", id, ErrNotFound)
	}
	return &lottery, nil
}

// Create adds a new lottery, assigning the next id.
func (r *MockLotteryRepository) Create(lottery *models.Lottery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lottery.ID == 0 {
		lottery.ID = r.nextID
	}
	if lottery.ID >= r.nextID {
		r.nextID = lottery.ID + 1
	}
	r.lotteries[lottery.ID] = *lottery
	return nil
}

// Delete removes a lottery by its ID.
func (r *MockLotteryRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lotteries[id]; !ok {
		return fmt.Errorf("lottery with ID %d: %w", id, ErrNotFound)
	}
	delete(r.lotteries, id)
	return nil
}

// Search returns lotteries whose name or description contains the query,
// case-insensitively.
func (r *MockLotteryRepository) Search(query string) ([]models.Lottery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var matches []models.Lottery
	for _, l := range r.lotteries {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Description), q) {
			matches = append(matches, l)
		}
	}
	return matches, nil
}
