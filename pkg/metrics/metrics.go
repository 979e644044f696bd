// Package metrics provides prometheus instrumentation for driftwatch.
// Metrics are registered once via promauto and recorded from the hot paths
// of the columnar store and the report orchestrator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ColumnsAnalyzed counts analyzed columns, labeled by semantic type.
	ColumnsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftwatch",
		Name:      "columns_analyzed_total",
		Help:      "Total number of columns analyzed",
	}, []string{"type"})

	// DriftDetected counts positive drift findings, labeled by kind
	// (trend_change or new_categories).
	DriftDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftwatch",
		Name:      "drift_detected_total",
		Help:      "Total number of drift findings",
	}, []string{"kind"})

	// ColumnSwaps counts disk round trips performed by the columnar store.
	ColumnSwaps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftwatch",
		Name:      "column_swaps_total",
		Help:      "Total number of column loads from spill storage",
	})

	// SpillBytes counts bytes written to spill storage.
	SpillBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftwatch",
		Name:      "spill_bytes_total",
		Help:      "Total bytes written to column spill storage",
	})

	// ColumnLatency observes per-column analysis latency in seconds.
	ColumnLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "driftwatch",
		Name:      "column_analysis_seconds",
		Help:      "Per-column analysis latency",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)

// Timer measures elapsed time for a single operation.
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveColumn records the elapsed time into ColumnLatency and returns it.
func (t *Timer) ObserveColumn() time.Duration {
	elapsed := time.Since(t.start)
	ColumnLatency.Observe(elapsed.Seconds())
	return elapsed
}
