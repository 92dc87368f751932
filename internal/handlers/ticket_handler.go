package handlers

import (
	"errors"
	"log"

	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TicketHandler handles HTTP requests for purchases and sales views.
type TicketHandler struct {
	ticketService  *services.TicketService
	lotteryService *services.LotteryService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *services.TicketService, lotteryService *services.LotteryService) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		lotteryService: lotteryService,
	}
}

// RegisterRoutes registers ticket routes. session gates a route behind
// a signed-in principal and admin behind the administrator role.
func (h *TicketHandler) RegisterRoutes(router fiber.Router, session, admin fiber.Handler) {
	router.Get("/ticket_counter", h.HandleTicketCounter)

	router.Get("/purchase/:lottoId", session, h.HandlePurchasePage)
	router.Post("/purchase/:lottoId", session, h.HandlePurchase)
	router.Get("/order_history", session, h.HandleOrderHistory)

	router.Get("/tickets_sold", session, admin, h.HandleTicketsSold)
}

// PurchaseRequest represents the purchase form. The five numbers and
// the card fields are accepted verbatim; there is no range, duplicate,
// or card-format validation.
type PurchaseRequest struct {
	Number1        int    `json:"ticket_number1" form:"ticket_number1"`
	Number2        int    `json:"ticket_number2" form:"ticket_number2"`
	Number3        int    `json:"ticket_number3" form:"ticket_number3"`
	Number4        int    `json:"ticket_number4" form:"ticket_number4"`
	Number5        int    `json:"ticket_number5" form:"ticket_number5"`
	CardNumber     string `json:"card_number" form:"card_number"`
	ExpirationDate string `json:"expiration_date" form:"expiration_date"`
	BillingAddress string `json:"billing_address" form:"billing_address"`
}

// HandlePurchasePage serves the purchase form data for one lottery.
func (h *TicketHandler) HandlePurchasePage(c *fiber.Ctx) error {
	lotteryID, err := c.ParamsInt("lottoId")
	if err != nil || lotteryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid lottery id",
		})
	}

	lottery, err := h.lotteryService.GetLotteryByID(uint(lotteryID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Lottery not found",
			})
		}
		log.Printf("Error loading lottery %d: %v", lotteryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load lottery",
		})
	}
	return c.JSON(fiber.Map{"lottery": lottery})
}

// HandlePurchase sells a ticket to the authenticated user.
func (h *TicketHandler) HandlePurchase(c *fiber.Ctx) error {
	lotteryID, err := c.ParamsInt("lottoId")
	if err != nil || lotteryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid lottery id",
		})
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing purchase request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	ticket, err := h.ticketService.PurchaseTicket(currentUserID(c), uint(lotteryID), services.PurchaseInput{
		Numbers:        [5]int{req.Number1, req.Number2, req.Number3, req.Number4, req.Number5},
		CardNumber:     req.CardNumber,
		ExpirationDate: req.ExpirationDate,
		BillingAddress: req.BillingAddress,
	})
	if err != nil {
		log.Printf("Error purchasing ticket for lottery %d: %v", lotteryID, err)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Lottery not found",
			})
		case errors.Is(err, repositories.ErrTicketLimitReached):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "You have already purchased the maximum allowed tickets.",
			})
		case errors.Is(err, services.ErrLotteryClosed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "This lottery is not open for purchase.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not purchase ticket",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ticket purchased successfully!",
		"ticket":  ticket,
	})
}

// HandleOrderHistory returns the authenticated user's tickets.
func (h *TicketHandler) HandleOrderHistory(c *fiber.Ctx) error {
	tickets, err := h.ticketService.OrderHistory(currentUserID(c))
	if err != nil {
		log.Printf("Error loading order history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order history",
		})
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

// HandleTicketsSold returns every sold ticket with buyer and lottery.
func (h *TicketHandler) HandleTicketsSold(c *fiber.Ctx) error {
	tickets, err := h.ticketService.AllTicketsSold()
	if err != nil {
		log.Printf("Error loading tickets sold: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tickets",
		})
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

// HandleTicketCounter returns the per-lottery revenue aggregation.
// Lotteries with no tickets sold are absent from the result.
func (h *TicketHandler) HandleTicketCounter(c *fiber.Ctx) error {
	report, err := h.ticketService.RevenueReport()
	if err != nil {
		log.Printf("Error aggregating revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not aggregate revenue",
		})
	}
	return c.JSON(fiber.Map{"ticket_costs": report})
}
