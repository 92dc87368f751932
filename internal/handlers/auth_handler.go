package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lotto/internal/middleware"
	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers account routes. session gates a route behind
// a signed-in principal and admin behind the administrator role.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, session, admin fiber.Handler) {
	router.Get("/signin", h.HandleSigninPage)
	router.Post("/signin", h.HandleSignin)
	router.Get("/signup", h.HandleSignupPage)
	router.Post("/signup", h.HandleSignup)
	router.Get("/admin_creation", h.HandleAdminCreationPage)
	router.Post("/admin_creation", h.HandleAdminCreation)

	router.Get("/logout", session, h.HandleLogout)
	router.Get("/customer_profile", session, h.HandleCustomerProfile)

	router.Get("/user_list", session, admin, h.HandleUserList)
	router.Post("/remove_user", session, admin, h.HandleRemoveUser)
}

// RegistrationRequest represents the signup and admin-creation form.
type RegistrationRequest struct {
	Username    string `json:"username" form:"username" validate:"required"`
	Password    string `json:"password" form:"password" validate:"required"`
	Birthday    string `json:"birthday" form:"birthday" validate:"required"`
	PhoneNumber string `json:"phone_number" form:"phonenum" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required"`
}

// HandleSignupPage serves the signup form data.
func (h *AuthHandler) HandleSignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Create an account"})
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	return h.handleRegistration(c, h.authService.RegisterUser)
}

// HandleAdminCreationPage serves the admin-creation form data.
func (h *AuthHandler) HandleAdminCreationPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Create an administrator account"})
}

// HandleAdminCreation handles new administrator registration.
func (h *AuthHandler) HandleAdminCreation(c *fiber.Ctx) error {
	return h.handleRegistration(c, h.authService.RegisterAdmin)
}

func (h *AuthHandler) handleRegistration(c *fiber.Ctx, register func(services.RegistrationInput) (*models.User, error)) error {
	var req RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing registration request body: %v", err)
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

	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid birthday, expected YYYY-MM-DD",
		})
	}

	user, err := register(services.RegistrationInput{
		Username:    req.Username,
		Password:    req.Password,
		Birthday:    birthday,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			status = fiber.StatusConflict
		case errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrUnderage):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for signin.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleSigninPage serves the signin form data.
func (h *AuthHandler) HandleSigninPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Sign in"})
}

// HandleSignin authenticates a user, sets the session cookie, and
// returns the dashboard to land on by role. The failure message never
// reveals whether the username existed.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signin request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during signin for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login failed. Please check your credentials.",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	redirect := "/user_dashboard"
	if user.Role == models.RoleAdmin {
		redirect = "/admin_dashboard"
	}
	return c.JSON(fiber.Map{
		"message":  "Login successful!",
		"token":    token,
		"role":     user.Role,
		"redirect": redirect,
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// HandleCustomerProfile returns the authenticated user's account.
func (h *AuthHandler) HandleCustomerProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(currentUserID(c))
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
		})
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleUserList returns every registered account.
func (h *AuthHandler) HandleUserList(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(fiber.Map{"users": users})
}

// RemoveUserRequest identifies the account to delete.
type RemoveUserRequest struct {
	UserID uint `json:"user_id" form:"user_id" validate:"required"`
}

// HandleRemoveUser deletes an account by id.
func (h *AuthHandler) HandleRemoveUser(c *fiber.Ctx) error {
	var req RemoveUserRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "user_id is required",
		})
	}

	if err := h.authService.RemoveUser(req.UserID); err != nil {
		log.Printf("Error removing user %d: %v", req.UserID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %d not found", req.UserID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove user",
		})
	}
	return c.JSON(fiber.Map{"message": "User removed"})
}
