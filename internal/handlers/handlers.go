package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// dateLayout is the wire format for birthday and lottery date fields.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// currentUserID reads the authenticated user's id stored by the
// session middleware. Zero means the route was not session-gated.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}
