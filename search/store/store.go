// Package store provides persistence for search outcome reports.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = errors.New("not found")

// Store archives the outcome of completed searches.
//
// It enables:
//   - Comparing runs of the same problem across heuristics and budgets
//   - Browsing past solutions from the CLI (astar history)
//   - Auditing costs and expansion counts over time
//
// Reports describe outcomes only. Open/closed sets are never persisted and
// a search cannot be resumed from a report.
//
// Implementations:
//   - In-memory storage (for tests and one-shot CLI runs, see memory.go)
//   - SQLite single-file archive (see sqlite.go)
//   - MySQL/MariaDB shared archive (see mysql.go)
type Store interface {
	// SaveReport persists a report. Saving a report whose RunID already
	// exists replaces the earlier one but keeps its CreatedAt.
	SaveReport(ctx context.Context, report Report) error

	// LoadReport retrieves the report for runID.
	//
	// Returns ErrNotFound if runID doesn't exist.
	LoadReport(ctx context.Context, runID string) (Report, error)

	// ListReports returns reports matching filter, newest first.
	// An empty result is not an error.
	ListReports(ctx context.Context, filter Filter) ([]Report, error)

	// Close releases any resources held by the store.
	Close() error
}

// Report is the archived outcome of one search run.
type Report struct {
	// RunID uniquely identifies the run (the engine's run ID).
	RunID string `json:"run_id"`

	// Problem is the registered problem name.
	Problem string `json:"problem"`

	// Initial is the string form of the initial state.
	Initial string `json:"initial"`

	// Found reports whether a goal was reached.
	Found bool `json:"found"`

	// Path holds the string forms of the states on the solution path.
	Path []string `json:"path"`

	// Moves holds the operator names along the path.
	Moves []string `json:"moves"`

	TotalCost  float64 `json:"total_cost"`
	Expanded   int     `json:"expanded"`
	MaxOpen    int     `json:"max_open"`
	Reopened   int     `json:"reopened"`
	DurationMS int64   `json:"duration_ms"`

	// CreatedAt is when the report was first saved. Stores fill it in when
	// it is zero on the first save and ignore it on later saves.
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows ListReports results. Zero values disable each criterion.
type Filter struct {
	// Problem restricts results to one problem name.
	Problem string

	// Limit caps the number of results.
	Limit int
}
