package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExpectationFailed matches every ExpectationError.
	ErrExpectationFailed = errors.New("expectation failed")
)

// ExpectationError reports a failed expect_* call.
type ExpectationError struct {
	Check string // "row 3" or "line"
	Got   string
	Want  string
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expect %s: got %q, want %q", e.Check, e.Got, e.Want)
}

// Is matches ErrExpectationFailed.
func (e *ExpectationError) Is(target error) bool {
	return target == ErrExpectationFailed
}
