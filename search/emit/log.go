package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LogEmitter implements Emitter by writing one line per event to a writer.
//
// Supports two output modes:
//   - Text mode (default): human-readable format with key=value pairs
//   - JSON mode: machine-readable JSON format, one event per line
//
// Example text output:
//
//	[expand] runID=run-001 problem=eight-puzzle-hamming step=3 meta={"closed":3,"expanded":3,"open":5}
//
// Example JSON output:
//
//	{"runID":"run-001","step":3,"problem":"eight-puzzle-hamming","msg":"expand","meta":{"closed":3,"expanded":3,"open":5}}
//
// Meta keys are written in sorted order, so identical runs produce
// byte-identical logs.
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a new LogEmitter.
//
// A nil writer defaults to os.Stdout.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{
		writer:   writer,
		jsonMode: jsonMode,
	}
}

// Emit writes an event to the configured writer.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID   string                 `json:"runID"`
		Step    int                    `json:"step"`
		Problem string                 `json:"problem"`
		Msg     string                 `json:"msg"`
		Meta    map[string]interface{} `json:"meta"`
	}{
		RunID:   event.RunID,
		Step:    event.Step,
		Problem: event.Problem,
		Msg:     event.Msg,
		Meta:    event.Meta,
	})
	if err != nil {
		fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}

	fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	fmt.Fprintf(l.writer, "[%s] runID=%s problem=%s step=%d",
		event.Msg, event.RunID, event.Problem, event.Step)

	if len(event.Meta) > 0 {
		metaJSON, err := json.Marshal(event.Meta)
		if err == nil {
			fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}

	fmt.Fprint(l.writer, "\n")
}
