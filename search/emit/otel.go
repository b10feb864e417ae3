package emit

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter implements Emitter by creating OpenTelemetry spans.
//
// Each event becomes a span with:
//   - Span name: event.Msg (e.g., "search_start", "expand")
//   - Attributes: run ID, step, problem, and all event.Meta fields
//   - Status: Error if event.Meta["error"] exists
//
// Well-known Meta keys are mapped into the "astar." attribute namespace:
//   - open, closed: astar.frontier.open, astar.frontier.closed
//   - expanded: astar.expanded
//   - cost: astar.solution.cost
//   - g, f: astar.state.g, astar.state.f
//
// Usage:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
//	emitter := emit.NewOTelEmitter(otel.Tracer("astar-go"))
//	engine, _ := search.New(problem, search.WithEmitter(emitter))
type OTelEmitter struct {
	tracer   trace.Tracer
	provider trace.TracerProvider
}

// NewOTelEmitter creates a new OTelEmitter from a tracer. Flush then acts
// on the global tracer provider.
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// NewOTelEmitterFromProvider creates an OTelEmitter whose spans come from a
// tracer named name on provider. Flush acts on that provider, so it works for
// providers that are not installed globally.
func NewOTelEmitterFromProvider(provider trace.TracerProvider, name string) *OTelEmitter {
	return &OTelEmitter{tracer: provider.Tracer(name), provider: provider}
}

// Emit creates a span for the event and ends it immediately; events are
// points in time rather than durations.
func (o *OTelEmitter) Emit(event Event) {
	o.emitSpan(context.Background(), event)
}

// EmitBatch creates one span per event under ctx, so all spans of a run can
// share a parent span.
func (o *OTelEmitter) EmitBatch(ctx context.Context, events []Event) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		o.emitSpan(ctx, event)
	}
	return nil
}

// Flush forces export of pending spans when the tracer provider supports it
// (the SDK provider does; the no-op provider does not). The provider is the
// one given to NewOTelEmitterFromProvider, or the global one otherwise.
func (o *OTelEmitter) Flush(ctx context.Context) error {
	type flusher interface {
		ForceFlush(context.Context) error
	}

	provider := o.provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	if f, ok := provider.(flusher); ok {
		return f.ForceFlush(ctx)
	}
	return nil
}

func (o *OTelEmitter) emitSpan(ctx context.Context, event Event) {
	_, span := o.tracer.Start(ctx, event.Msg)
	defer span.End()

	span.SetAttributes(
		attribute.String("astar.run_id", event.RunID),
		attribute.Int("astar.step", event.Step),
		attribute.String("astar.problem", event.Problem),
	)
	o.addMetadataAttributes(span, event.Meta)

	if err, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, err)
		span.RecordError(fmt.Errorf("%s", err))
	}
}

// addMetadataAttributes converts event metadata to span attributes.
func (o *OTelEmitter) addMetadataAttributes(span trace.Span, meta map[string]interface{}) {
	for key, value := range meta {
		attrKey := key
		switch key {
		case "open":
			attrKey = "astar.frontier.open"
		case "closed":
			attrKey = "astar.frontier.closed"
		case "expanded":
			attrKey = "astar.expanded"
		case "cost":
			attrKey = "astar.solution.cost"
		case "g":
			attrKey = "astar.state.g"
		case "f":
			attrKey = "astar.state.f"
		}

		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String(attrKey, v))
		case int:
			span.SetAttributes(attribute.Int(attrKey, v))
		case int64:
			span.SetAttributes(attribute.Int64(attrKey, v))
		case float64:
			span.SetAttributes(attribute.Float64(attrKey, v))
		case bool:
			span.SetAttributes(attribute.Bool(attrKey, v))
		case time.Duration:
			span.SetAttributes(attribute.Int64(attrKey, int64(v/time.Millisecond)))
		default:
			span.SetAttributes(attribute.String(attrKey, fmt.Sprintf("%v", v)))
		}
	}
}
