package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveOperation("add", time.Millisecond)
	m.SetLedgerState(0, 0)
	m.PersistenceFailed("add")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) != 5 {
		t.Fatalf("expected 5 registered metrics, got %d", len(metricFamilies))
	}
}

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("add", time.Millisecond)
	m.ObserveOperation("add", time.Millisecond)
	m.ObserveOperation("remove", time.Millisecond)

	if got := testutil.ToFloat64(m.EntryOperations.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected 2 add operations, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntryOperations.WithLabelValues("remove")); got != 1 {
		t.Fatalf("expected 1 remove operation, got %v", got)
	}
	if got := testutil.CollectAndCount(m.RecomputeDuration); got != 2 {
		t.Fatalf("expected 2 duration series, got %d", got)
	}
}

func TestLedgerStateAndFailures(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetLedgerState(3, -250.5)
	m.PersistenceFailed("update")

	if got := testutil.ToFloat64(m.Entries); got != 3 {
		t.Fatalf("expected 3 entries, got %v", got)
	}
	if got := testutil.ToFloat64(m.CurrentBalance); got != -250.5 {
		t.Fatalf("expected balance -250.5, got %v", got)
	}
	if got := testutil.ToFloat64(m.PersistenceErrors.WithLabelValues("update")); got != 1 {
		t.Fatalf("expected 1 persistence error, got %v", got)
	}
}
