package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a monitor, line or ticket does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a concurrent change beat the caller to a
// batch transition. The batch is rolled back; retrying with fresh state
// usually succeeds.
var ErrConflict = errors.New("conflicting concurrent update")

// ValidationError reports a malformed configuration or request.
// The UI shows Field/Reason directly, so keep them human readable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports an illegal prep-status move. Nothing is
// mutated when this is returned.
type InvalidTransitionError struct {
	From   PrepStatus
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a line in status %q", e.Action, e.From)
}

// StoreUnavailableError wraps a storage failure so handlers can offer a
// retry affordance instead of a generic 500.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
