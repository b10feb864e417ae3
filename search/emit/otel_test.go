package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *OTelEmitter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return exporter, NewOTelEmitter(otel.Tracer("test"))
}

func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func TestOTelEmitter_Emit(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		RunID:   "run-001",
		Step:    4,
		Problem: "eight-puzzle-manhattan",
		Msg:     MsgExpand,
		Meta: map[string]interface{}{
			"open":     12,
			"closed":   4,
			"f":        6.0,
			"state":    "[[1,4,2],[3,0,5],[6,7,8]]",
			"verified": true,
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != MsgExpand {
		t.Errorf("span name = %q, want %q", span.Name, MsgExpand)
	}

	attrs := attributeMap(span.Attributes)
	checks := map[string]interface{}{
		"astar.run_id":          "run-001",
		"astar.step":            int64(4),
		"astar.problem":         "eight-puzzle-manhattan",
		"astar.frontier.open":   int64(12),
		"astar.frontier.closed": int64(4),
		"astar.state.f":         6.0,
		"state":                 "[[1,4,2],[3,0,5],[6,7,8]]",
		"verified":              true,
	}
	for key, want := range checks {
		if got := attrs[key]; got != want {
			t.Errorf("%s = %v (%T), want %v (%T)", key, got, got, want, want)
		}
	}
	if span.Status.Code == codes.Error {
		t.Error("span without error meta must not have error status")
	}
}

func TestOTelEmitter_ErrorStatus(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		RunID: "run-002",
		Msg:   MsgSearchFailed,
		Meta:  map[string]interface{}{"error": "COST_MISMATCH: f != g+h"},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if spans[0].Status.Description != "COST_MISMATCH: f != g+h" {
		t.Errorf("unexpected status description %q", spans[0].Status.Description)
	}
}

func TestOTelEmitter_EmitBatch(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	events := []Event{
		{RunID: "r", Msg: MsgSearchStart},
		{RunID: "r", Step: 1, Msg: MsgExpand},
		{RunID: "r", Step: 1, Msg: MsgGoalFound, Meta: map[string]interface{}{"cost": 1.0}},
	}
	if err := emitter.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch failed: %v", err)
	}
	if got := len(exporter.GetSpans()); got != 3 {
		t.Errorf("expected 3 spans, got %d", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := emitter.EmitBatch(ctx, events); err == nil {
		t.Error("expected error for cancelled context")
	}

	if err := emitter.Flush(context.Background()); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
}

func TestOTelEmitter_FlushOwnProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	// Batched and not installed globally: spans appear only after a flush of
	// this provider.
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	emitter := NewOTelEmitterFromProvider(tp, "test")
	emitter.Emit(Event{RunID: "run-003", Msg: MsgGoalFound})

	if err := emitter.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != MsgGoalFound {
		t.Errorf("expected the goal_found span after Flush, got %d spans", len(spans))
	}
}
