package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics are the tracker's Prometheus collectors on their own registry.
type Metrics struct {
	Registry       *prometheus.Registry
	TrackedSeconds *prometheus.CounterVec
	Samples        *prometheus.CounterVec
}

// NewMetrics creates and registers the tracker collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		TrackedSeconds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusd_tracked_seconds_total",
			Help: "Focused seconds recorded per application.",
		}, []string{"app"}),
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusd_samples_total",
			Help: "Tracker samples by outcome.",
		}, []string{"outcome"}),
	}
	m.Registry.MustRegister(
		m.TrackedSeconds,
		m.Samples,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observe(outcome Outcome, app string, seconds int64) {
	if m == nil {
		return
	}
	m.Samples.WithLabelValues(string(outcome)).Inc()
	if outcome == OutcomeLogged {
		m.TrackedSeconds.WithLabelValues(app).Add(float64(seconds))
	}
}
