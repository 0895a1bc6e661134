package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser = "user"
)

// Result classifiers returned to the presentation layer.
const (
	StatusOK              = "ok"
	StatusUnauthorized    = "unauthorized"
	StatusNotFound        = "not_found"
	StatusInvalidArgument = "invalid_argument"
	StatusInternalError   = "internal_error"
)

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"
	MessageSignInRequired     = "sign in to continue"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")

	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation error")
	ErrPersistence     = errors.New("persistence error")
)

// Identity is the authenticated caller. A nil *Identity means anonymous.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
}

// ValidationError reports the field that failed a semantic rule.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// WrapPersistence keeps the underlying message while tagging the error
// as a data-layer failure.
func WrapPersistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// StatusOf maps an operation error to its result classifier.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenNotFound),
		errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		return StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrValidation):
		return StatusInvalidArgument
	default:
		return StatusInternalError
	}
}
