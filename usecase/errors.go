// Package usecase holds the application logic between the HTTP handlers and
// the repositories.
package usecase

import (
	"errors"
	"fmt"

	"resourceshub/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmailRequired     = errors.New("Email is required")
	ErrInvalidEmail      = errors.New("Please provide a valid email address")
	ErrAlreadySubscribed = errors.New("You are already subscribed to our newsletter.")

	ErrInvalid2FACode       = errors.New("invalid 2FA code")
	Err2FAAlreadyEnabled    = errors.New("2FA is already enabled")
	Err2FANotEnabled        = errors.New("2FA is not enabled")
	ErrDatabaseUnavailable  = errors.New("database unavailable")
	ErrServerFileOutsideDir = errors.New("file is outside the server file directory")
)

// ValidationError is a client error whose message is safe to return as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError and returns its message.
func IsValidation(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}

// translate maps repository sentinels onto the usecase ones.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	default:
		return err
	}
}
