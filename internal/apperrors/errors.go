package apperrors

import (
	"errors"
	"fmt"

	"go-erp-api/pkg/validator"
)

// Kinds of failure. Handlers map them to HTTP statuses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("resource already exists")
	ErrConflict     = errors.New("resource is still referenced")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal server error")
)

// Error carries a message that is safe to show to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// ValidationError reports every rule a payload failed.
type ValidationError struct {
	Message    string
	Violations validator.Violations
}

func NewValidation(v validator.Violations) *ValidationError {
	return &ValidationError{Message: "Validation failed", Violations: v}
}

// FieldError is a ValidationError with a single violation.
func FieldError(field, message string) *ValidationError {
	return NewValidation(validator.Violations{{Field: field, Message: message}})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d violation(s)", len(e.Violations))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Internal wraps a store or infrastructure failure. The cause is kept for logs only.
func Internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
