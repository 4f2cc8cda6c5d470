package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rxindexer",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of store operations.",
	}, []string{"operation", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
)

// Store tracks metrics for derived-state store operations.
type Store struct{}

// NewStore creates a Store metrics collector.
func NewStore() *Store {
	return &Store{}
}

// Observe records duration and status of a store operation.
func (m Store) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	storeOperationsTotal.WithLabelValues(operation, status).Inc()
	storeOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
