package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrTripNotFound         = errors.New("trip not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrDayNotFound          = errors.New("day not found in itinerary")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrUpstream             = errors.New("upstream service failure")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrDatabaseError        = errors.New("database error")
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field that failed, not only the first one.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
