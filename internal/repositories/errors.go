package repositories

import "errors"

// Sentinel errors shared by every repository implementation so callers
// can branch with errors.Is instead of matching message strings.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrTicketLimitReached is returned when a purchase would push a
	// user past the ticket cap.
	ErrTicketLimitReached = errors.New("ticket limit reached")

	// ErrNoWinnerPosted is returned when a lottery has no winner rows
	// posted yet.
	ErrNoWinnerPosted = errors.New("no winner posted")
)
