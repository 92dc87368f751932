package middleware

import (
	"log"
	"strings"

	"lotto/internal/models"
	"lotto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the session token for browser
// clients.
const SessionCookie = "session_token"

// SessionRequired checks for a valid session token, taken from the
// session cookie or an Authorization bearer header, and stores the
// principal in the request context.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			// Expected format: "Bearer <token>"
			parts := strings.SplitN(c.Get("Authorization"), " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Sign in required",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}
		role, _ := claims["role"].(string)

		c.Locals("user_id", uint(userID))
		c.Locals("username", claims["username"])
		c.Locals("role", models.Role(role))

		return c.Next()
	}
}

// RequireRole gates a route to one role. It must run after
// SessionRequired, which is the only writer of the role local.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("role").(models.Role)
		if !ok || current != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}
