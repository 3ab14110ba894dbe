package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ToolMetrics collects per-tool call metrics on a private registry.
type ToolMetrics struct {
	registry *prometheus.Registry

	Calls    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// New creates and registers the tool collectors.
func New() *ToolMetrics {
	registry := prometheus.NewRegistry()

	m := &ToolMetrics{
		registry: registry,
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trademe_mcp_tool_calls_total",
				Help: "Total number of tool invocations by outcome status",
			},
			[]string{"tool", "status"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trademe_mcp_tool_failures_total",
				Help: "Tool failures by origin",
			},
			[]string{"tool", "kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trademe_mcp_tool_call_duration_seconds",
				Help:    "Tool invocation latency including upstream calls",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"tool"},
		),
	}

	registry.MustRegister(m.Calls, m.Failures, m.Duration)
	return m
}

// Observe records one finished invocation. kind is empty on success.
func (m *ToolMetrics) Observe(tool, status, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(tool, status).Inc()
	if kind != "" {
		m.Failures.WithLabelValues(tool, kind).Inc()
	}
	m.Duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ToolMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
