package tracing

import (
	"context"
	"testing"
)

func TestNilTracerIsNoop(t *testing.T) {
	var tr *Tracer
	ctx, span := tr.StartCycle(context.Background())
	if ctx == nil || span == nil {
		t.Fatal("expected non-nil context/span even with nil tracer")
	}
}
