// Package observability provides metrics and monitoring capabilities for
// the application.
package observability

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adikemitra/adike-go/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry   *prometheus.Registry
	Classifier *metrics.ClassifierMetrics
	Pricing    *metrics.PricingMetrics
	HTTP       *metrics.HTTPMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric
// collectors. It returns an error if any collector fails to register.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	classifierMetrics, err := metrics.NewClassifierMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier metrics: %w", err)
	}

	pricingMetrics, err := metrics.NewPricingMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing metrics: %w", err)
	}

	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	return &Metrics{
		registry:   registry,
		Classifier: classifierMetrics,
		Pricing:    pricingMetrics,
		HTTP:       httpMetrics,
	}, nil
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      log.New(os.Stderr, "metrics handler: ", log.LstdFlags),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
