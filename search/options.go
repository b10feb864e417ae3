package search

import (
	"fmt"

	"github.com/dshills/astar-go/search/emit"
)

// Options configures Engine behavior.
//
// Zero values are valid: no expansion budget, no invariant checks, a
// generated run ID, an expand event for every expansion, no emitter and no
// metrics.
type Options struct {
	// MaxExpansions bounds the number of expanded states. When the budget
	// is used up before a goal is found, Search returns
	// ErrMaxExpansionsExceeded with partial statistics. 0 means no limit.
	MaxExpansions int

	// InvariantChecks verifies, on every expansion, that f = g + h for the
	// expanded state and that the frontiers partition the g-map. Costs
	// O(1) per expansion plus one heuristic evaluation.
	InvariantChecks bool

	// RunID labels events, metrics and reports. Empty means a fresh UUID
	// per Search call.
	RunID string

	// ProgressEvery emits an expand event every N expansions. 0 and 1 both
	// emit on every expansion.
	ProgressEvery int

	// Emitter receives progress events. Nil discards them.
	Emitter emit.Emitter

	// Metrics records Prometheus metrics. Nil disables metrics.
	Metrics *PrometheusMetrics
}

// Option is a functional option for configuring an Engine.
//
// Example:
//
//	engine, err := search.New(problem,
//	    search.WithMaxExpansions(100000),
//	    search.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	    search.WithInvariantChecks(true),
//	)
type Option func(*engineConfig) error

// engineConfig collects options before they are applied to an Engine.
type engineConfig struct {
	opts Options
}

// WithOptions replaces the whole configuration with opts. Options listed
// after it still override individual fields.
func WithOptions(opts Options) Option {
	return func(cfg *engineConfig) error {
		cfg.opts = opts
		return nil
	}
}

// WithMaxExpansions bounds the number of states the search may expand.
//
// Default: 0 (no limit). Negative values are rejected.
//
// This is the external step budget: the engine never polls for timeouts
// inside an expansion, so callers that need bounded work set a budget.
func WithMaxExpansions(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return &EngineError{
				Message: fmt.Sprintf("max expansions must be >= 0, got %d", n),
				Code:    "INVALID_OPTION",
			}
		}
		cfg.opts.MaxExpansions = n
		return nil
	}
}

// WithInvariantChecks enables per-expansion bookkeeping verification.
// A violation aborts the search with an error wrapping ErrInvariantViolation.
func WithInvariantChecks(enabled bool) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.InvariantChecks = enabled
		return nil
	}
}

// WithRunID fixes the run ID used for events and metrics labels.
// Useful in tests that read a BufferedEmitter by run ID.
func WithRunID(runID string) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.RunID = runID
		return nil
	}
}

// WithProgressEvery emits an expand event only every n expansions.
func WithProgressEvery(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return &EngineError{
				Message: fmt.Sprintf("progress interval must be >= 0, got %d", n),
				Code:    "INVALID_OPTION",
			}
		}
		cfg.opts.ProgressEvery = n
		return nil
	}
}

// WithEmitter sets the event emitter for progress reporting.
func WithEmitter(emitter emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Emitter = emitter
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, _ := search.New(problem, search.WithMetrics(metrics))
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Metrics = metrics
		return nil
	}
}
