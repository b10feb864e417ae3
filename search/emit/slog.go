package emit

import (
	"context"
	"log/slog"
	"sort"
)

// SlogEmitter emits events to a slog.Logger. The event message becomes the
// log message and Meta keys are flattened as top-level attributes in sorted
// order.
//
// Progress events (expand, reopen) are logged at Debug so that a logger at
// Info level only records run boundaries. Terminal events are logged at
// Info, except budget_exceeded and search_canceled (Warn) and search_failed
// (Error).
type SlogEmitter struct {
	logger *slog.Logger
}

// NewSlogEmitter creates a SlogEmitter that emits to the given logger.
// A nil logger uses slog.Default().
func NewSlogEmitter(logger *slog.Logger) *SlogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEmitter{logger: logger}
}

// Emit logs the event.
func (s *SlogEmitter) Emit(event Event) {
	attrs := make([]slog.Attr, 0, len(event.Meta)+3)
	attrs = append(attrs,
		slog.String("run_id", event.RunID),
		slog.String("problem", event.Problem),
		slog.Int("step", event.Step),
	)

	keys := make([]string, 0, len(event.Meta))
	for k := range event.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Meta[k]))
	}

	s.logger.LogAttrs(context.Background(), levelFor(event.Msg), event.Msg, attrs...)
}

func levelFor(msg string) slog.Level {
	switch msg {
	case MsgExpand, MsgReopen:
		return slog.LevelDebug
	case MsgBudgetExceeded, MsgSearchCanceled:
		return slog.LevelWarn
	case MsgSearchFailed:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
