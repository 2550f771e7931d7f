// Package metrics exports autotuning telemetry as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/czxttkl/autotune/tune"
)

// Sink counts finished selections and observes kernel durations in
// Prometheus metrics. It implements tune.Sink and optionally forwards every
// call to a wrapped sink, so it chains in front of an in-memory recorder.
type Sink struct {
	next tune.Sink

	selections *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewSink creates a Sink registered with reg. next may be nil.
func NewSink(reg prometheus.Registerer, next tune.Sink) *Sink {
	s := &Sink{
		next: next,
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autotune_selections_total",
			Help: "Number of finished selections by bandit family and chosen implementation",
		}, []string{"family", "implementation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "autotune_kernel_duration_seconds",
			Help: "Observed kernel durations by chosen implementation",
			// Kernel latencies of interest run from microseconds to ~1s.
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 11),
		}, []string{"implementation"}),
	}
	reg.MustRegister(s.selections, s.durations)
	return s
}

// RegisterKey implements tune.Sink. Key labels are not exported as metric
// labels (unbounded cardinality); registration only forwards to the wrapped
// sink.
func (s *Sink) RegisterKey(key tune.CallSiteKey, repr func() string) {
	if s.next != nil {
		s.next.RegisterKey(key, repr)
	}
}

// Record implements tune.Sink.
func (s *Sink) Record(family tune.Family, key tune.CallSiteKey, choice tune.Implementation, deltaNs int64) {
	s.selections.WithLabelValues(family.String(), choice.String()).Inc()
	s.durations.WithLabelValues(choice.String()).Observe(float64(deltaNs) / 1e9)
	if s.next != nil {
		s.next.Record(family, key, choice, deltaNs)
	}
}
