package series

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts generated and failed series per chart.
type Metrics struct {
	Generated *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	Points    prometheus.Histogram
}

// NewMetrics creates the generation metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idle_balance",
			Name:      "charts_generated_total",
			Help:      "Series produced, by chart.",
		}, []string{"chart"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idle_balance",
			Name:      "chart_failures_total",
			Help:      "Series that failed to sample, by chart.",
		}, []string{"chart"}),
		Points: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "idle_balance",
			Name:      "series_points",
			Help:      "Sample points per produced series.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Generated, m.Failures, m.Points)
	}
	return m
}

func (m *Metrics) observe(chart string, s Series) {
	if m == nil {
		return
	}
	m.Generated.WithLabelValues(chart).Inc()
	n := len(s.Points)
	if s.Table != nil {
		n = len(s.Table)
	}
	m.Points.Observe(float64(n))
}

func (m *Metrics) fail(chart string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(chart).Inc()
}
