package services

import (
	"encoding/json"
	"log"
	"math/rand"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/pkg/rabbitmq"
)

// WinnerService handles posting draw results and checking tickets
// against them.
type WinnerService struct {
	winnerRepo  repositories.WinnerRepository
	ticketRepo  repositories.TicketRepository
	lotteryRepo repositories.LotteryRepository
	mqClient    *rabbitmq.Client
}

// NewWinnerService creates a new WinnerService.
func NewWinnerService(winnerRepo repositories.WinnerRepository, ticketRepo repositories.TicketRepository, lotteryRepo repositories.LotteryRepository, mqClient *rabbitmq.Client) *WinnerService {
	return &WinnerService{
		winnerRepo:  winnerRepo,
		ticketRepo:  ticketRepo,
		lotteryRepo: lotteryRepo,
		mqClient:    mqClient,
	}
}

// PostWinner appends a draw result for the lottery. Postings are never
// replaced; each new row supersedes the previous ones by id.
func (s *WinnerService) PostWinner(lotteryID uint, numbers [5]int) (*models.Winner, error) {
	lottery, err := s.lotteryRepo.GetByID(lotteryID)
	if err != nil {
		return nil, err
	}

	winner := &models.Winner{
		LotteryID: lotteryID,
		Number1:   numbers[0],
		Number2:   numbers[1],
		Number3:   numbers[2],
		Number4:   numbers[3],
		Number5:   numbers[4],
	}
	if err := s.winnerRepo.Create(winner); err != nil {
		return nil, err
	}

	s.publishPosted(winner, lottery)
	return winner, nil
}

func (s *WinnerService) publishPosted(winner *models.Winner, lottery *models.Lottery) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"lottoID": winner.LotteryID,
		"lotto":   lottery.Name,
		"numbers": winner.Numbers(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal winner event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("lottery", "winner.posted", body); err != nil {
		log.Printf("Warning: Failed to publish winner event for lottery %d: %v", winner.LotteryID, err)
	}
}

// ViewWinners retrieves every posted winner row.
func (s *WinnerService) ViewWinners() ([]models.Winner, error) {
	return s.winnerRepo.GetAll()
}

// CheckResult reports the outcome of comparing a user's tickets against
// the latest posted draw for a lottery.
type CheckResult struct {
	IsWinner bool           `json:"is_winner"`
	Winner   *models.Winner `json:"winner"`
}

// CheckWinner loads the latest posted draw for the lottery and reports
// whether any of the user's tickets for it matches position by
// position. A lottery with no posted draw yields ErrNoWinnerPosted from
// the repository, never a nil dereference.
func (s *WinnerService) CheckWinner(userID, lotteryID uint) (*CheckResult, error) {
	latest, err := s.winnerRepo.LatestForLottery(lotteryID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.ticketRepo.GetByUserAndLottery(userID, lotteryID)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Winner: latest}
	for i := range tickets {
		if latest.Matches(&tickets[i]) {
			result.IsWinner = true
			break
		}
	}
	return result, nil
}

// SuggestNumbers returns five distinct numbers in 1..50 to prefill the
// posting form.
func SuggestNumbers() [5]int {
	perm := rand.Perm(50)
	var numbers [5]int
	for i := range numbers {
		numbers[i] = perm[i] + 1
	}
	return numbers
}
