package handlers

import (
	"errors"
	"fmt"
	"log"

	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WinnerHandler handles HTTP requests for posting and checking draws.
type WinnerHandler struct {
	winnerService  *services.WinnerService
	lotteryService *services.LotteryService
	validate       *validator.Validate
}

// NewWinnerHandler creates a new WinnerHandler.
func NewWinnerHandler(winnerService *services.WinnerService, lotteryService *services.LotteryService) *WinnerHandler {
	return &WinnerHandler{
		winnerService:  winnerService,
		lotteryService: lotteryService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers winner routes. session gates a route behind
// a signed-in principal and admin behind the administrator role.
func (h *WinnerHandler) RegisterRoutes(router fiber.Router, session, admin fiber.Handler) {
	router.Get("/view_winners", h.HandleViewWinners)

	router.Get("/check_winner", session, h.HandleCheckWinnerPage)
	router.Post("/check_winner", session, h.HandleCheckWinner)

	router.Get("/add_winner/:lottoId", session, admin, h.HandleAddWinnerPage)
	router.Post("/add_winner/:lottoId", session, admin, h.HandleAddWinner)
}

// AddWinnerRequest represents the winner posting form. All five numbers
// must be present; pointers keep 0 distinguishable from a missing field.
type AddWinnerRequest struct {
	Number1 *int `json:"ticket_number1" form:"ticket_number1" validate:"required"`
	Number2 *int `json:"ticket_number2" form:"ticket_number2" validate:"required"`
	Number3 *int `json:"ticket_number3" form:"ticket_number3" validate:"required"`
	Number4 *int `json:"ticket_number4" form:"ticket_number4" validate:"required"`
	Number5 *int `json:"ticket_number5" form:"ticket_number5" validate:"required"`
}

// HandleAddWinnerPage serves the posting form for one lottery, with
// five suggested random numbers to prefill it.
func (h *WinnerHandler) HandleAddWinnerPage(c *fiber.Ctx) error {
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

	return c.JSON(fiber.Map{
		"lottery":           lottery,
		"suggested_numbers": services.SuggestNumbers(),
	})
}

// HandleAddWinner appends a new draw result for the lottery.
func (h *WinnerHandler) HandleAddWinner(c *fiber.Ctx) error {
	lotteryID, err := c.ParamsInt("lottoId")
	if err != nil || lotteryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid lottery id",
		})
	}

	var req AddWinnerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add_winner request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide all ticket numbers.",
		})
	}

	winner, err := h.winnerService.PostWinner(uint(lotteryID), [5]int{*req.Number1, *req.Number2, *req.Number3, *req.Number4, *req.Number5})
	if err != nil {
		log.Printf("Error posting winner for lottery %d: %v", lotteryID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Lottery with ID %d not found", lotteryID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not post winner",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Winner added successfully!",
		"winner":  winner,
	})
}

// HandleViewWinners returns every posted winner row.
func (h *WinnerHandler) HandleViewWinners(c *fiber.Ctx) error {
	winners, err := h.winnerService.ViewWinners()
	if err != nil {
		log.Printf("Error listing winners: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve winners",
		})
	}
	return c.JSON(fiber.Map{"winners": winners})
}

// HandleCheckWinnerPage serves the check form: the list of lotteries to
// pick from.
func (h *WinnerHandler) HandleCheckWinnerPage(c *fiber.Ctx) error {
	lotteries, err := h.lotteryService.GetAllLotteries()
	if err != nil {
		log.Printf("Error getting lotteries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve lotteries",
		})
	}
	return c.JSON(fiber.Map{"lotteries": lotteries})
}

// CheckWinnerRequest identifies the lottery to check against.
type CheckWinnerRequest struct {
	LottoID uint `json:"lotto_id" form:"lotto_id" validate:"required"`
}

// HandleCheckWinner compares the authenticated user's tickets for a
// lottery against its latest posted draw.
func (h *WinnerHandler) HandleCheckWinner(c *fiber.Ctx) error {
	var req CheckWinnerRequest
	if err := c.BodyParser(&req); err != nil || req.LottoID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "lotto_id is required",
		})
	}

	result, err := h.winnerService.CheckWinner(currentUserID(c), req.LottoID)
	if err != nil {
		log.Printf("Error checking winner for lottery %d: %v", req.LottoID, err)
		if errors.Is(err, repositories.ErrNoWinnerPosted) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No winner has been posted for this lottery yet.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not check winner",
		})
	}

	return c.JSON(fiber.Map{
		"is_winner":     result.IsWinner,
		"recent_winner": result.Winner,
	})
}
