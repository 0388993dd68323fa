package entity

import (
	"errors"
	"fmt"
)

// Error taxonomy. External-call failures are converted to degraded outcomes at
// the boundary; only invariant violations abort a turn.
var (
	// ErrTransientExternal marks a reachable-later collaborator failure
	// (knowledge store, handler channel). Always retried or degraded.
	ErrTransientExternal = errors.New("transient external failure")

	// ErrClassificationGap means no domain/priority rule matched. The caller
	// falls back to the lowest-confidence default and logs for taxonomy review.
	ErrClassificationGap = errors.New("classification gap")

	// ErrConcurrencyConflict means a second worker attempted to mutate a
	// session already owned by an active lane. The losing worker retries.
	ErrConcurrencyConflict = errors.New("session concurrency conflict")

	// ErrInvariantViolation is fatal for the turn: persisted state would
	// contradict the data model invariants.
	ErrInvariantViolation = errors.New("invariant violation")
)

// TransientExternal wraps err as a transient external failure.
func TransientExternal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransientExternal, op, err)
}

// InvariantViolation builds a fatal invariant error with a clear diagnostic.
func InvariantViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
