package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics contains Prometheus metrics for the web server.
type HTTPMetrics struct {
	RequestTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewHTTPMetrics creates a new instance of HTTPMetrics and registers it
// with the provided registry.
func NewHTTPMetrics(registry *prometheus.Registry) (*HTTPMetrics, error) {
	m := &HTTPMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}
	return m, nil
}

func (m *HTTPMetrics) initMetrics() {
	m.RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adike_http_requests_total",
			Help: "Total number of HTTP requests partitioned by method, path and status code.",
		},
		[]string{"method", "path", "code"},
	)
	m.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adike_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path"},
	)
}

// Describe implements the prometheus.Collector interface.
func (m *HTTPMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.RequestTotal.Describe(ch)
	m.RequestDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *HTTPMetrics) Collect(ch chan<- prometheus.Metric) {
	m.RequestTotal.Collect(ch)
	m.RequestDuration.Collect(ch)
}

// RecordRequest records one served request.
func (m *HTTPMetrics) RecordRequest(method, path string, code int, seconds float64) {
	m.RequestTotal.WithLabelValues(method, path, fmt.Sprintf("%d", code)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}
