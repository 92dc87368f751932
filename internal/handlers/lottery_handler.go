package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// LotteryHandler handles HTTP requests for lottery listings and admin
// lottery management.
type LotteryHandler struct {
	lotteryService *services.LotteryService
	ticketService  *services.TicketService
	validate       *validator.Validate
}

// NewLotteryHandler creates a new LotteryHandler.
func NewLotteryHandler(lotteryService *services.LotteryService, ticketService *services.TicketService) *LotteryHandler {
	return &LotteryHandler{
		lotteryService: lotteryService,
		ticketService:  ticketService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers lottery routes. session gates a route behind
// a signed-in principal and admin behind the administrator role.
func (h *LotteryHandler) RegisterRoutes(router fiber.Router, session, admin fiber.Handler) {
	router.Get("/", h.HandleIndex)
	router.Get("/user_dashboard", h.HandleDashboard)
	router.Get("/user_lotto_list", h.HandleLottoList)
	router.Get("/search", h.HandleSearch)

	router.Get("/admin_dashboard", session, admin, h.HandleDashboard)
	router.Get("/add_lotto", session, admin, h.HandleAddLottoPage)
	router.Post("/add_lotto", session, admin, h.HandleAddLotto)
	router.Post("/remove_lotto", session, admin, h.HandleRemoveLotto)
}

// HandleIndex serves the landing page data.
func (h *LotteryHandler) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the lottery",
		"signin":  "/signin",
		"signup":  "/signup",
	})
}

// HandleDashboard lists every lottery. Serves both the user and admin
// dashboards; the admin route is role-gated by the router.
func (h *LotteryHandler) HandleDashboard(c *fiber.Ctx) error {
	lotteries, err := h.lotteryService.GetAllLotteries()
	if err != nil {
		log.Printf("Error getting lotteries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve lotteries",
		})
	}
	return c.JSON(fiber.Map{
		"username":  c.Locals("username"),
		"lotteries": lotteries,
	})
}

// HandleLottoList lists every lottery together with the revenue totals.
func (h *LotteryHandler) HandleLottoList(c *fiber.Ctx) error {
	lotteries, err := h.lotteryService.GetAllLotteries()
	if err != nil {
		log.Printf("Error getting lotteries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve lotteries",
		})
	}
	totals, err := h.ticketService.RevenueReport()
	if err != nil {
		log.Printf("Error aggregating revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not aggregate revenue",
		})
	}
	return c.JSON(fiber.Map{
		"lotteries": lotteries,
		"totals":    totals,
	})
}

// HandleSearch performs a case-insensitive substring search over
// lottery names and descriptions. An empty or whitespace-only query
// redirects to the default listing.
func (h *LotteryHandler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Redirect("/user_dashboard", fiber.StatusFound)
	}

	results, err := h.lotteryService.SearchLotteries(query)
	if err != nil {
		log.Printf("Error searching lotteries for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search lotteries",
		})
	}
	return c.JSON(fiber.Map{
		"search_query": query,
		"results":      results,
	})
}

// AddLottoRequest represents the lottery creation form.
type AddLottoRequest struct {
	Name           string  `json:"name" form:"name" validate:"required"`
	Description    string  `json:"description" form:"description"`
	PricePerTicket float64 `json:"price_per_ticket" form:"pricePerTicket" validate:"required,gt=0"`
	StartDate      string  `json:"start_date" form:"startDate" validate:"required"`
	EndDate        string  `json:"end_date" form:"endDate" validate:"required"`
}

// HandleAddLottoPage serves the creation form data.
func (h *LotteryHandler) HandleAddLottoPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Create a lottery"})
}

// HandleAddLotto creates a new lottery.
func (h *LotteryHandler) HandleAddLotto(c *fiber.Ctx) error {
	var req AddLottoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add_lotto request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid start_date, expected YYYY-MM-DD",
		})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid end_date, expected YYYY-MM-DD",
		})
	}

	lottery := &models.Lottery{
		Name:           req.Name,
		Description:    req.Description,
		PricePerTicket: req.PricePerTicket,
		StartDate:      startDate,
		EndDate:        endDate,
	}
	if err := h.lotteryService.CreateLottery(lottery); err != nil {
		log.Printf("Error creating lottery: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create lottery",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lottery created",
		"lottery": lottery,
	})
}

// RemoveLottoRequest identifies the lottery to delete.
type RemoveLottoRequest struct {
	LottoID uint `json:"lotto_id" form:"lotto_id" validate:"required"`
}

// HandleRemoveLotto deletes a lottery by id.
func (h *LotteryHandler) HandleRemoveLotto(c *fiber.Ctx) error {
	var req RemoveLottoRequest
	if err := c.BodyParser(&req); err != nil || req.LottoID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "lotto_id is required",
		})
	}

	if err := h.lotteryService.DeleteLottery(req.LottoID); err != nil {
		log.Printf("Error removing lottery %d: %v", req.LottoID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Lottery with ID %d not found", req.LottoID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove lottery",
		})
	}
	return c.JSON(fiber.Map{"message": "Lottery removed"})
}
