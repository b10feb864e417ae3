package emit

// Emitter receives and processes events from search runs.
//
// Emitters enable pluggable observability backends:
//   - Logging: text or JSON lines, log/slog
//   - Distributed tracing: OpenTelemetry
//   - In-memory history for tests and post-run analysis
//
// Implementations should be:
//   - Non-blocking: the expansion loop calls Emit synchronously
//   - Thread-safe: one emitter may serve several concurrent searches
//   - Resilient: handle failures internally, never panic
type Emitter interface {
	// Emit sends an event to the configured backend.
	Emit(event Event)
}

// MultiEmitter fans events out to several emitters in order.
//
// Example:
//
//	history := emit.NewBufferedEmitter()
//	emitter := emit.NewMultiEmitter(history, emit.NewLogEmitter(os.Stderr, false))
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter creates a MultiEmitter that forwards events to all
// non-nil emitters.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	filtered := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	return &MultiEmitter{emitters: filtered}
}

// Emit forwards the event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
