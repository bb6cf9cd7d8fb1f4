package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus metrics. It implements usecase.Metrics.
type Metrics struct {
	// Ledger metrics
	EntryOperations   *prometheus.CounterVec
	RecomputeDuration *prometheus.HistogramVec
	PersistenceErrors *prometheus.CounterVec
	CurrentBalance    prometheus.Gauge
	Entries           prometheus.Gauge
}

// New creates the metrics and registers them with reg.
// A nil reg registers with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		EntryOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "networth_entry_operations_total",
				Help: "Total ledger operations by type",
			},
			[]string{"operation"},
		),
		RecomputeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "networth_recompute_duration_seconds",
				Help:    "Duration of a mutation including the full balance recompute",
				Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"operation"},
		),
		PersistenceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "networth_persistence_errors_total",
				Help: "Total failed snapshot writes by operation",
			},
			[]string{"operation"},
		),
		CurrentBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "networth_current_balance",
			Help: "Running balance of the chronologically last entry",
		}),
		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "networth_entries",
			Help: "Number of entries in the ledger",
		}),
	}
}

// ObserveOperation counts an operation and records how long it took.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	m.EntryOperations.WithLabelValues(operation).Inc()
	m.RecomputeDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// PersistenceFailed counts a failed snapshot write.
func (m *Metrics) PersistenceFailed(operation string) {
	m.PersistenceErrors.WithLabelValues(operation).Inc()
}

// SetLedgerState publishes the size and current balance of the ledger.
func (m *Metrics) SetLedgerState(entries int, balance float64) {
	m.Entries.Set(float64(entries))
	m.CurrentBalance.Set(balance)
}
