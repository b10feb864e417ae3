package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory, grouped
// by run ID.
//
// Use cases:
//   - Tests asserting on expansion order and reopen events
//   - Comparing the traces of two runs for determinism
//   - Post-run analysis in tools that drive the engine
//
// Warning: every expand event is retained. For large searches prefer a
// LogEmitter or clear runs once analyzed.
//
// Example usage:
//
//	history := emit.NewBufferedEmitter()
//	engine, _ := search.New(problem, search.WithEmitter(history), search.WithRunID("run-001"))
//	_, _ = engine.Search(ctx)
//
//	reopens := history.GetHistoryWithFilter("run-001", emit.HistoryFilter{Msg: emit.MsgReopen})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
}

// HistoryFilter specifies criteria for filtering run history.
//
// All fields are optional and combined with AND logic.
type HistoryFilter struct {
	Problem string // Filter by problem name (empty = no filter)
	Msg     string // Filter by message (empty = no filter)
	MinStep *int   // Minimum step number (nil = no filter)
	MaxStep *int   // Maximum step number (nil = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// GetHistory returns a copy of all events for runID in emission order.
// Returns an empty slice if the run is unknown.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	return b.GetHistoryWithFilter(runID, HistoryFilter{})
}

// GetHistoryWithFilter returns the events for runID that match filter, in
// emission order. Returns an empty slice if nothing matches.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Event, 0)
	for _, event := range b.events[runID] {
		if matchesFilter(event, filter) {
			result = append(result, event)
		}
	}
	return result
}

// RunIDs returns the IDs of all runs with buffered events.
func (b *BufferedEmitter) RunIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.events))
	for id := range b.events {
		ids = append(ids, id)
	}
	return ids
}

func matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.Problem != "" && event.Problem != filter.Problem {
		return false
	}
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinStep != nil && event.Step < *filter.MinStep {
		return false
	}
	if filter.MaxStep != nil && event.Step > *filter.MaxStep {
		return false
	}
	return true
}

// Clear removes stored events for runID, or for every run when runID is empty.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, runID)
}
