package search

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Engine runs A* searches over one problem definition.
//
// The Engine holds only immutable configuration. Every Search (or Stepper)
// call allocates its own open and closed queues, g/f maps and backlinks, so
// one Engine can serve several concurrent searches and tests can build
// isolated engines freely.
//
// Type parameter S is the problem's state type.
//
// Example:
//
//	engine, err := search.New(tiles.New(tiles.Default(), tiles.Manhattan))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Search(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Found {
//	    fmt.Println("No solution found")
//	}
type Engine[S State[S]] struct {
	problem Problem[S]
	opts    Options
}

// Result is the outcome of a search.
//
// Found == false is the NotFound outcome: the open frontier was exhausted
// without reaching a goal. It is a normal terminal result, not an error.
// When Search also returns an error (budget exceeded, cancellation, invariant
// violation) the Result carries the statistics gathered up to that point.
type Result[S any] struct {
	// RunID identifies the run in events, metrics and archived reports.
	RunID string

	// Found reports whether a goal state was reached.
	Found bool

	// Path lists the states from the initial state to the goal, inclusive.
	// Empty when Found is false.
	Path []S

	// Moves lists operator names; Moves[i] leads from Path[i] to Path[i+1].
	Moves []string

	// TotalCost is g of the goal state: the sum of edge costs along Path.
	TotalCost float64

	// Expanded counts states whose successors were generated. The goal
	// state itself is not counted.
	Expanded int

	// MaxOpen is the largest open-frontier size observed.
	MaxOpen int

	// Reopened counts closed states moved back to open via a cheaper path.
	Reopened int

	// Duration is the wall time of the search.
	Duration time.Duration
}

// Edges returns the number of edges on the solution path.
func (r Result[S]) Edges() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// New creates an Engine for problem.
//
// Returns an error if problem is nil or an option is invalid.
func New[S State[S]](problem Problem[S], options ...Option) (*Engine[S], error) {
	if problem == nil {
		return nil, &EngineError{
			Message: "problem is required",
			Code:    "MISSING_PROBLEM",
		}
	}

	cfg := &engineConfig{}
	for _, option := range options {
		if err := option(cfg); err != nil {
			return nil, err
		}
	}

	return &Engine[S]{problem: problem, opts: cfg.opts}, nil
}

// Problem returns the problem definition the engine searches.
func (e *Engine[S]) Problem() Problem[S] {
	return e.problem
}

// Search runs A* to completion.
//
// The search:
//  1. Seeds the open frontier with the initial state (g = 0, f = h)
//  2. Repeatedly pops the lowest-f state, ties going to the earliest insertion
//  3. Returns the path as soon as a popped state passes the goal test
//  4. Otherwise generates successors in operator order, reconciling each
//     with the open and closed sets (cheaper rediscoveries of closed states
//     are reopened)
//  5. Returns Found == false once the open frontier is empty
//
// ctx is checked between expansions; a cancelled context returns ctx.Err()
// with partial statistics. No I/O happens inside an expansion apart from
// the configured emitter.
func (e *Engine[S]) Search(ctx context.Context) (Result[S], error) {
	stepper := e.Stepper()
	for {
		if err := ctx.Err(); err != nil {
			return stepper.abort(OutcomeCanceled, err)
		}

		snapshot, err := stepper.Step()
		if err != nil {
			return snapshot.Result, err
		}
		if snapshot.Done {
			return snapshot.Result, nil
		}
	}
}

// Stepper starts a new search run that advances one expansion per Step
// call. Use it to drive visualizations or debuggers; Search is a loop over
// a Stepper.
func (e *Engine[S]) Stepper() *Stepper[S] {
	runID := e.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return newStepper(e.problem, e.opts, runID)
}
