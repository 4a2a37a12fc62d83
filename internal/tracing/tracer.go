// Package tracing wraps the scheduler core's OpenTelemetry spans: one span
// per cycle drain and one per host spawn call, tagged with the attributes
// below.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps the trace.Tracer supplied via the core's Configuration. A
// nil Tracer is valid and every method becomes a no-op, so tracing is
// entirely optional.
type Tracer struct {
	tracer trace.Tracer
}

// New wraps t. Passing nil yields a Tracer whose methods are no-ops.
func New(t trace.Tracer) *Tracer {
	return &Tracer{tracer: t}
}

// StartCycle starts the span around one scheduler cycle drain.
func (t *Tracer) StartCycle(ctx context.Context) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "scheduler.cycle", trace.WithSpanKind(trace.SpanKindInternal))
}

// StartSubmission starts the VmSubmission trace span for a newServer call.
func (t *Tracer) StartSubmission(ctx context.Context, name string, cpuCount int, memorySize int64) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "vm.submission",
		trace.WithAttributes(AttrServerName.String(name), AttrCPUCount.Int(cpuCount), AttrMemorySize.Int64(memorySize)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartSpawn starts the span around a single host.Spawn call.
func (t *Tracer) StartSpawn(ctx context.Context, name, hostUID string) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "host.spawn",
		trace.WithAttributes(AttrServerName.String(name), AttrHostUID.String(hostUID)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// Finish records err (if any) on span and ends it, folding the
// status/RecordError bookkeeping a caller would otherwise repeat at every
// call site into one call. Safe to call with a nil-backed span from a
// no-op Tracer.
func (t *Tracer) Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Span attribute keys for novasched spans.
var (
	AttrServerName = attribute.Key("novasched.server.name")
	AttrHostUID    = attribute.Key("novasched.host.uid")
	AttrCPUCount   = attribute.Key("novasched.flavor.cpu_count")
	AttrMemorySize = attribute.Key("novasched.flavor.memory_size")
)
