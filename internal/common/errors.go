// Package common defines sentinel errors shared across Inkwell layers.
// Callers should use errors.Is to match these values; the REST layer maps
// them onto HTTP statuses.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal  = errors.New("internal error")
	ErrForbidden = errors.New("forbidden")

	// Registration conflicts. Kept distinct so the API can tell the caller
	// which field collided.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token lifecycle errors. Expiry is distinct from a bad signature or a
	// malformed token.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError reports rejected input with a message that is safe to show
// to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a *ValidationError with the given client-facing message.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}
