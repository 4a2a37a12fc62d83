package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestCollectorsObserveSetsGauges(t *testing.T) {
	c := NewCollectors("novasched_test")
	c.Observe(Snapshot{Queued: 3, Running: 2, Unscheduled: 1}, 5, 4)

	if got := gaugeValue(t, c.queuedVms); got != 3 {
		t.Errorf("queuedVms = %f, want 3", got)
	}
	if got := gaugeValue(t, c.hostCount); got != 5 {
		t.Errorf("hostCount = %f, want 5", got)
	}
	if got := gaugeValue(t, c.availableHostCount); got != 4 {
		t.Errorf("availableHostCount = %f, want 4", got)
	}
}

func TestCollectorsHandlerServesRegisteredMetrics(t *testing.T) {
	c := NewCollectors("novasched_test2")
	if c.Handler() == nil {
		t.Fatal("expected non-nil handler")
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "novasched_test2_submitted_vms_total") {
		t.Fatalf("expected submitted_vms_total in scrape output, got %q", rec.Body.String())
	}
}
