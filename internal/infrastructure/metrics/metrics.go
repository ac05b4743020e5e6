package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the lifecycle engine.
type Metrics struct {
	LifecycleOps *prometheus.CounterVec
}

// New registers the metrics on a fresh registry so tests can hold their own
// instance without duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LifecycleOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peerlend_lifecycle_ops_total",
			Help: "Lifecycle operations by operation and outcome",
		}, []string{"op", "outcome"}),
	}
}

// ObserveOp records one lifecycle call. Outcome is "ok" or the error kind.
func (m *Metrics) ObserveOp(op, outcome string) {
	m.LifecycleOps.WithLabelValues(op, outcome).Inc()
}
