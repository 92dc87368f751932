package services

import (
	"encoding/json"
	"log"
	"time"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/pkg/rabbitmq"

	"github.com/google/uuid"
)

// TicketService handles ticket purchases and sales reporting.
type TicketService struct {
	ticketRepo  repositories.TicketRepository
	lotteryRepo repositories.LotteryRepository
	mqClient    *rabbitmq.Client
	limit       int // max tickets one user may hold across all lotteries
}

// NewTicketService creates a new TicketService.
func NewTicketService(ticketRepo repositories.TicketRepository, lotteryRepo repositories.LotteryRepository, mqClient *rabbitmq.Client, limit int) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		lotteryRepo: lotteryRepo,
		mqClient:    mqClient,
		limit:       limit,
	}
}

// PurchaseInput carries the purchase form fields. The numbers and card
// details are persisted exactly as submitted.
type PurchaseInput struct {
	Numbers        [5]int
	CardNumber     string
	ExpirationDate string
	BillingAddress string
}

// PurchaseTicket sells one ticket for the lottery to the user. Three
// gates apply: the lottery must exist, its date window must be open,
// and the user must hold fewer than the ticket cap. The count and
// insert run in one transaction so concurrent purchases cannot both
// slip under the cap.
func (s *TicketService) PurchaseTicket(userID, lotteryID uint, in PurchaseInput) (*models.Ticket, error) {
	lottery, err := s.lotteryRepo.GetByID(lotteryID)
	if err != nil {
		return nil, err
	}
	if !lottery.ActiveOn(time.Now()) {
		return nil, ErrLotteryClosed
	}

	ticket := &models.Ticket{
		Reference:      uuid.New().String(),
		UserID:         userID,
		LotteryID:      lotteryID,
		Number1:        in.Numbers[0],
		Number2:        in.Numbers[1],
		Number3:        in.Numbers[2],
		Number4:        in.Numbers[3],
		Number5:        in.Numbers[4],
		CardNumber:     in.CardNumber,
		ExpirationDate: in.ExpirationDate,
		BillingAddress: in.BillingAddress,
	}
	if err := s.ticketRepo.CreateIfUnderLimit(ticket, s.limit); err != nil {
		return nil, err
	}

	s.publishPurchased(ticket, lottery)
	return ticket, nil
}

// publishPurchased emits a ticket.purchased event. Publishing is best
// effort: a missing client or broker failure never fails the sale.
func (s *TicketService) publishPurchased(ticket *models.Ticket, lottery *models.Lottery) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"reference": ticket.Reference,
		"userID":    ticket.UserID,
		"lottoID":   ticket.LotteryID,
		"lotto":     lottery.Name,
		"price":     lottery.PricePerTicket,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal ticket event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("lottery", "ticket.purchased", body); err != nil {
		log.Printf("Warning: Failed to publish purchase event for ticket %s: %v", ticket.Reference, err)
	}
}

// OrderHistory retrieves the user's tickets across every lottery.
func (s *TicketService) OrderHistory(userID uint) ([]models.Ticket, error) {
	return s.ticketRepo.GetByUser(userID)
}

// AllTicketsSold retrieves every ticket with buyer and lottery loaded.
func (s *TicketService) AllTicketsSold() ([]models.Ticket, error) {
	return s.ticketRepo.GetAllDetailed()
}

// TicketCount counts the user's tickets across every lottery.
func (s *TicketService) TicketCount(userID uint) (int64, error) {
	return s.ticketRepo.CountForUser(userID)
}

// RevenueReport computes per-lottery revenue (tickets sold times price)
// for every lottery that sold at least one ticket. The aggregation runs
// fresh on each call; nothing is cached.
func (s *TicketService) RevenueReport() ([]models.LotteryRevenue, error) {
	return s.ticketRepo.RevenueReport()
}
