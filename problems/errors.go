package problems

import "errors"

// Sentinel errors for the problem registry.
var (
	ErrUnknownProblem = errors.New("unknown problem")
	ErrAlreadyExists  = errors.New("problem already registered")
	ErrEmptyName      = errors.New("problem name is empty")
	ErrMalformedState = errors.New("malformed initial state")
)
