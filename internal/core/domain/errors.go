package domain

import "errors"

var (
	// ErrValidation covers missing or malformed required fields (400).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password. Callers must never distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken signals a uniqueness violation on registration (409).
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthorized is returned by handlers that require an identity the
	// gateway did not attach (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an identity is present but its role does
	// not allow the operation (403).
	ErrForbidden = errors.New("access forbidden")

	// ErrTooManyAttempts signals login rate limiting (429). Recoverable once
	// the window resets.
	ErrTooManyAttempts = errors.New("too many attempts")

	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)
