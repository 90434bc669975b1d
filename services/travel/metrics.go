package travel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts how estimates are produced. A nil *Metrics records nothing.
type Metrics struct {
	estimates       *prometheus.CounterVec
	routingFailures *prometheus.CounterVec
	cacheErrors     prometheus.Counter
}

// NewMetrics registers the travel collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		estimates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glowslots",
			Subsystem: "travel",
			Name:      "estimates_total",
			Help:      "Travel estimates returned, by source.",
		}, []string{"source"}),
		routingFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glowslots",
			Subsystem: "travel",
			Name:      "routing_failures_total",
			Help:      "Routing provider calls that fell through to the next strategy.",
		}, []string{"reason"}),
		cacheErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "glowslots",
			Subsystem: "travel",
			Name:      "cache_errors_total",
			Help:      "Cache reads or writes that failed.",
		}),
	}
}

func (m *Metrics) observeEstimate(source string) {
	if m == nil {
		return
	}
	m.estimates.WithLabelValues(source).Inc()
}

func (m *Metrics) observeRoutingFailure(reason string) {
	if m == nil {
		return
	}
	m.routingFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeCacheError() {
	if m == nil {
		return
	}
	m.cacheErrors.Inc()
}
