// Package problems holds the registry of named problem definitions and the
// type-erased Solver used to run them when the problem is chosen at runtime.
package problems

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Default is the problem solved when none is named.
const Default = "eight-puzzle-hamming"

// Entry describes a registered problem.
type Entry struct {
	// Name is the lookup key, e.g. "rubik2".
	Name string

	// Description is a one-line summary shown by listings.
	Description string

	// Build creates a Solver from an initial-state literal. An empty literal
	// selects the problem's built-in initial state and never fails.
	// A literal that cannot be parsed yields ErrMalformedState.
	Build func(literal string) (Solver, error)
}

type registry struct {
	entries map[string]Entry
	mu      sync.RWMutex
}

var register = &registry{
	entries: make(map[string]Entry),
}

// Register adds an entry to the global registry.
// Returns ErrAlreadyExists if the name is taken.
func Register(entry Entry) error {
	if entry.Name == "" {
		return ErrEmptyName
	}
	if entry.Build == nil {
		return fmt.Errorf("problem %s has no builder", entry.Name)
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[entry.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, entry.Name)
	}

	register.entries[entry.Name] = entry
	return nil
}

// Lookup retrieves an entry by name.
// Returns ErrUnknownProblem if nothing is registered under name.
func Lookup(name string) (Entry, error) {
	register.mu.RLock()
	defer register.mu.RUnlock()

	e, exists := register.entries[name]
	if !exists {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownProblem, name)
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	register.mu.RLock()
	defer register.mu.RUnlock()

	names := make([]string, 0, len(register.entries))
	for name := range register.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all entries sorted by name.
func List() []Entry {
	register.mu.RLock()
	defer register.mu.RUnlock()

	entries := make([]Entry, 0, len(register.entries))
	for _, e := range register.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Build resolves name (Default when empty) and builds a Solver from literal.
//
// When the literal is malformed the returned Solver uses the built-in
// initial state and the error wraps ErrMalformedState, so callers can warn
// and carry on. Any other error leaves the Solver nil.
func Build(name, literal string) (Solver, error) {
	if name == "" {
		name = Default
	}
	entry, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	solver, err := entry.Build(literal)
	if err == nil || !errors.Is(err, ErrMalformedState) {
		return solver, err
	}
	fallback, ferr := entry.Build("")
	if ferr != nil {
		return nil, fmt.Errorf("build default state for %s: %w", name, ferr)
	}
	return fallback, err
}
