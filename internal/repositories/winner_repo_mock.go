package repositories

import (
	"fmt"
	"sync"

	"lotto/internal/models"
)

// MockWinnerRepository is an in-memory implementation of WinnerRepository.
type MockWinnerRepository struct {
	winners map[uint]models.Winner
	nextID  uint
	mu      sync.RWMutex
}

// NewMockWinnerRepository creates a new instance of MockWinnerRepository.
func NewMockWinnerRepository() *MockWinnerRepository {
	return &MockWinnerRepository{
		winners: make(map[uint]models.Winner),
		nextID:  1,
	}
}

// Create appends a new winner row, assigning the next id.
func (r *MockWinnerRepository) Create(winner *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if winner.ID == 0 {
		winner.ID = r.nextID
	}
	if winner.ID >= r.nextID {
		r.nextID = winner.ID + 1
	}
	r.winners[winner.ID] = *winner
	return nil
}

// GetAll returns every posted winner row.
func (r *MockWinnerRepository) GetAll() ([]models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	winnerList := make([]models.Winner, 0, len(r.winners))
	for _, w := range r.winners {
		winnerList = append(winnerList, w)
	}
	return winnerList, nil
}

// LatestForLottery returns the winner row with the highest id for the
// lottery.
func (r *MockWinnerRepository) LatestForLottery(lotteryID uint) (*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.Winner
	for id := range r.winners {
		w := r.winners[id]
		if w.LotteryID != lotteryID {
			continue
		}
		if latest == nil || w.ID > latest.ID {
			latest = &w
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("lottery %d: %w", lotteryID, ErrNoWinnerPosted)
	}
	return latest, nil
}
