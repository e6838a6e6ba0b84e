package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics tracks per-tool solve counts and durations, exported through the
// process-wide /metrics endpoint.
type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var sharedMetrics = &metrics{
	calls: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solvr_tool_calls_total",
		Help: "Tool calls by tool name and result status.",
	}, []string{"tool", "status"}),
	duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solvr_tool_duration_seconds",
		Help:    "End-to-end tool execution time, including compilation and solving.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"tool"}),
}

// newMetrics returns the shared collectors; promauto registers them once at
// package init, so multiple servers in one process share the series.
func newMetrics() *metrics {
	return sharedMetrics
}

func (m *metrics) observe(tool, status string, seconds float64) {
	m.calls.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(seconds)
}
