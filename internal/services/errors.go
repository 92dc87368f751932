package services

import "errors"

// Business-rule failures surfaced to users. Each sentinel carries the
// human-readable message rendered by handlers, and callers branch with
// errors.Is.
var (
	ErrUsernameTaken      = errors.New("username already exists, please choose another")
	ErrInvalidPhone       = errors.New("please enter a valid phone number (10-15 digits)")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrUnderage           = errors.New("you must be at least 18 years old to register")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLotteryClosed      = errors.New("lottery is not open for purchase")
)
