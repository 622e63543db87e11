package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics contains all Prometheus metrics related to market price
// refreshes.
type PricingMetrics struct {
	RefreshTotal    *prometheus.CounterVec
	ScrapeFallbacks prometheus.Counter
	RefreshDuration prometheus.Histogram
	LatestRedPrice  prometheus.Gauge

	registry *prometheus.Registry
}

// NewPricingMetrics creates a new instance of PricingMetrics and
// registers it with the provided registry.
func NewPricingMetrics(registry *prometheus.Registry) (*PricingMetrics, error) {
	m := &PricingMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register pricing metrics: %w", err)
	}
	return m, nil
}

func (m *PricingMetrics) initMetrics() {
	m.RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adike_price_refresh_total",
			Help: "Total number of market price refreshes partitioned by action.",
		},
		[]string{"action"},
	)
	m.ScrapeFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adike_price_scrape_fallbacks_total",
			Help: "Number of times scraping failed and fallback prices were used.",
		},
	)
	m.RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adike_price_refresh_duration_seconds",
			Help:    "Time taken to refresh market prices",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
	m.LatestRedPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "adike_latest_red_price_rupees",
			Help: "Most recently stored red arecanut price in rupees.",
		},
	)
}

// Describe implements the prometheus.Collector interface.
func (m *PricingMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.RefreshTotal.Describe(ch)
	m.ScrapeFallbacks.Describe(ch)
	m.RefreshDuration.Describe(ch)
	m.LatestRedPrice.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *PricingMetrics) Collect(ch chan<- prometheus.Metric) {
	m.RefreshTotal.Collect(ch)
	m.ScrapeFallbacks.Collect(ch)
	m.RefreshDuration.Collect(ch)
	m.LatestRedPrice.Collect(ch)
}

// RecordRefresh records one completed refresh.
func (m *PricingMetrics) RecordRefresh(action string, seconds, redPrice float64) {
	m.RefreshTotal.WithLabelValues(action).Inc()
	m.RefreshDuration.Observe(seconds)
	m.LatestRedPrice.Set(redPrice)
}

// RecordFallback counts a scrape failure that fell back to the static
// price table.
func (m *PricingMetrics) RecordFallback() {
	m.ScrapeFallbacks.Inc()
}
