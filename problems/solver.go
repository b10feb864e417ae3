package problems

import (
	"context"
	"time"

	"github.com/dshills/astar-go/search"
	"github.com/dshills/astar-go/search/store"
)

// Solver runs a problem without exposing its state type.
type Solver interface {
	// Name returns the problem name.
	Name() string

	// Initial returns the string form of the initial state.
	Initial() string

	// Solve runs a fresh search. Errors are those of search.Engine.Search;
	// the Outcome carries whatever statistics were gathered.
	Solve(ctx context.Context, opts ...search.Option) (Outcome, error)
}

// Outcome is a search result with states rendered as strings.
type Outcome struct {
	Problem     string
	RunID       string
	Initial     string
	Found       bool
	GoalMessage string
	Path        []string
	Moves       []string
	TotalCost   float64
	Expanded    int
	MaxOpen     int
	Reopened    int
	Duration    time.Duration
}

// Edges returns the number of edges on the solution path.
func (o Outcome) Edges() int {
	if len(o.Path) == 0 {
		return 0
	}
	return len(o.Path) - 1
}

// Report converts the outcome into an archive record.
func (o Outcome) Report() store.Report {
	return store.Report{
		RunID:      o.RunID,
		Problem:    o.Problem,
		Initial:    o.Initial,
		Found:      o.Found,
		Path:       o.Path,
		Moves:      o.Moves,
		TotalCost:  o.TotalCost,
		Expanded:   o.Expanded,
		MaxOpen:    o.MaxOpen,
		Reopened:   o.Reopened,
		DurationMS: o.Duration.Milliseconds(),
	}
}

type typedSolver[S search.State[S]] struct {
	problem search.Problem[S]
}

// NewSolver adapts a typed problem definition to Solver.
func NewSolver[S search.State[S]](problem search.Problem[S]) Solver {
	return &typedSolver[S]{problem: problem}
}

func (t *typedSolver[S]) Name() string { return t.problem.Name() }

func (t *typedSolver[S]) Initial() string { return t.problem.InitialState().String() }

func (t *typedSolver[S]) Solve(ctx context.Context, opts ...search.Option) (Outcome, error) {
	outcome := Outcome{Problem: t.Name(), Initial: t.Initial()}

	engine, err := search.New[S](t.problem, opts...)
	if err != nil {
		return outcome, err
	}
	result, err := engine.Search(ctx)

	outcome.RunID = result.RunID
	outcome.Found = result.Found
	outcome.Moves = result.Moves
	outcome.TotalCost = result.TotalCost
	outcome.Expanded = result.Expanded
	outcome.MaxOpen = result.MaxOpen
	outcome.Reopened = result.Reopened
	outcome.Duration = result.Duration
	if len(result.Path) > 0 {
		outcome.Path = make([]string, len(result.Path))
		for i, state := range result.Path {
			outcome.Path[i] = state.String()
		}
		if result.Found {
			outcome.GoalMessage = t.problem.GoalMessage(result.Path[len(result.Path)-1])
		}
	}
	return outcome, err
}
