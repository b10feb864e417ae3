// Package emit provides progress and observability events for search runs.
package emit

// Event messages emitted by the search engine.
const (
	MsgSearchStart     = "search_start"
	MsgExpand          = "expand"
	MsgReopen          = "reopen"
	MsgGoalFound       = "goal_found"
	MsgSearchExhausted = "search_exhausted"
	MsgBudgetExceeded  = "budget_exceeded"
	MsgSearchCanceled  = "search_canceled"
	MsgSearchFailed    = "search_failed"
)

// Event represents an observability event emitted during a search run.
//
// Events cover:
//   - Run start and terminal outcome (goal found, exhausted, budget exceeded,
//     canceled, failed on an invalid cost or broken invariant)
//   - Per-expansion progress (open size, closed size, expansion count)
//   - Reopening of closed states reached by a cheaper path
//
// Events are emitted to an Emitter which can:
//   - Log to stdout/stderr or a slog.Logger
//   - Send to OpenTelemetry
//   - Buffer in memory for analysis and tests
type Event struct {
	// RunID identifies the search run that emitted this event.
	RunID string

	// Step is the expansion count at the time of the event.
	// Zero for events emitted before the first expansion.
	Step int

	// Problem is the name of the problem definition being searched.
	Problem string

	// Msg is the event kind (one of the Msg* constants).
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "open", "closed": frontier sizes
	//   - "expanded": expansion count
	//   - "g", "f": cost values for the state concerned
	//   - "state": string form of the state concerned
	//   - "cost": total solution cost on goal_found
	Meta map[string]interface{}
}
