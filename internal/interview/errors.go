package interview

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when the referenced session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrMatchingNotFound is returned when a matching result is requested
// before the interview completed.
var ErrMatchingNotFound = errors.New("matching result not found")

// ValidationError rejects malformed input before any side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
