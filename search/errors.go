// Package search provides a generic best-first (A*) state-space search engine.
package search

import "errors"

// ErrDuplicateKey indicates an Insert into a Queue for a key that is already
// present. Callers must Remove or update explicitly; Insert never overwrites.
var ErrDuplicateKey = errors.New("key already present in queue")

// ErrMaxExpansionsExceeded indicates that the search expanded the configured
// maximum number of states without reaching a goal. The partial Result
// returned alongside it carries the statistics gathered so far.
var ErrMaxExpansionsExceeded = errors.New("search exceeded maximum expansions limit")

// ErrInvariantViolation indicates corrupted engine bookkeeping (a backlink
// cycle, an f != g+h mismatch, or a state tracked by neither frontier).
// It always signals an engine bug, never a property of the problem.
var ErrInvariantViolation = errors.New("search invariant violated")

// ErrInvalidCost indicates that a problem definition returned a negative,
// NaN or infinite edge cost or heuristic value.
var ErrInvalidCost = errors.New("invalid cost value")

// EngineError represents an error from Engine operations.
//
// Code is a stable machine-readable identifier (for example
// "DUPLICATE_KEY", "BACKLINK_CYCLE", "INVALID_EDGE_COST"). Cause, when set,
// is one of the sentinel errors above so callers can use errors.Is.
type EngineError struct {
	Message string
	Code    string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

func invariantError(code, message string) *EngineError {
	return &EngineError{Message: message, Code: code, Cause: ErrInvariantViolation}
}
