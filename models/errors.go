package models

import (
	"errors"
	"fmt"
)

// ErrInvalidOdds is returned when an American odds value is zero or not a
// finite number. It must block any dependent multiplier or settlement
// computation; callers never default the multiplier instead.
var ErrInvalidOdds = errors.New("american odds must be a nonzero finite number")

// ErrNotFound is returned when a requested record does not exist or does
// not belong to the requesting user.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a write before it reaches the calculation core
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is a user-facing rejection
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidOdds)
}
