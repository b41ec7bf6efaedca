package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidGroup indicates a blood group outside the eight enumerated codes.
var ErrInvalidGroup = errors.New("invalid blood group")

// ErrInvalidDelta indicates a stock adjustment of zero units.
var ErrInvalidDelta = errors.New("delta must be non-zero")

// ErrInsufficientStock indicates an adjustment that would drive units below zero.
var ErrInsufficientStock = errors.New("not enough units")

// ErrAuthentication indicates bad credentials.
var ErrAuthentication = errors.New("invalid credentials")

// ErrUnauthorized indicates a missing or invalid session token.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps a lower-level failure with an HTTP-ish code and a readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err carries one of the client-facing sentinels.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrValidation,
		ErrDuplicate,
		ErrInvalidGroup,
		ErrInvalidDelta,
		ErrInsufficientStock,
		ErrAuthentication,
		ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
