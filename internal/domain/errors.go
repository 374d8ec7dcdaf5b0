package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFilter signals a search filter that failed validation.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidCursor signals a malformed or undecodable page cursor.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidRound signals a round that failed validation.
	ErrInvalidRound = errors.New("invalid round")
	// ErrRoundNotFound signals a missing round document.
	ErrRoundNotFound = errors.New("round not found")
)

// FilterError wraps ErrInvalidFilter with the offending field and reason.
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidFilter.Error(), e.Field, e.Reason)
}

func (e *FilterError) Unwrap() error { return ErrInvalidFilter }

// NewFilterError creates a validation error for a single filter field.
func NewFilterError(field, reason string) error {
	return &FilterError{Field: field, Reason: reason}
}
