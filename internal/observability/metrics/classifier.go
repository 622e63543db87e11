// Package metrics provides custom Prometheus metrics for the application.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ClassifierMetrics contains all Prometheus metrics related to disease
// detection.
type ClassifierMetrics struct {
	DetectionCounter  *prometheus.CounterVec
	PredictionTotal   *prometheus.CounterVec
	PredictionErrors  *prometheus.CounterVec
	InferenceDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewClassifierMetrics creates a new instance of ClassifierMetrics and
// registers it with the provided registry.
func NewClassifierMetrics(registry *prometheus.Registry) (*ClassifierMetrics, error) {
	m := &ClassifierMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register classifier metrics: %w", err)
	}
	return m, nil
}

func (m *ClassifierMetrics) initMetrics() {
	m.DetectionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adike_detections_total",
			Help: "Total number of disease detections partitioned by disease name and status.",
		},
		[]string{"disease", "status"},
	)
	m.PredictionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adike_predictions_total",
			Help: "Total number of model predictions partitioned by model.",
		},
		[]string{"model"},
	)
	m.PredictionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adike_prediction_errors_total",
			Help: "Total number of failed model predictions partitioned by model.",
		},
		[]string{"model"},
	)
	m.InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adike_inference_duration_seconds",
			Help:    "Time taken for model inference",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"model"},
	)
}

// Describe implements the prometheus.Collector interface.
func (m *ClassifierMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.DetectionCounter.Describe(ch)
	m.PredictionTotal.Describe(ch)
	m.PredictionErrors.Describe(ch)
	m.InferenceDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *ClassifierMetrics) Collect(ch chan<- prometheus.Metric) {
	m.DetectionCounter.Collect(ch)
	m.PredictionTotal.Collect(ch)
	m.PredictionErrors.Collect(ch)
	m.InferenceDuration.Collect(ch)
}

// RecordDetection increments the detection counter.
func (m *ClassifierMetrics) RecordDetection(disease, status string) {
	m.DetectionCounter.WithLabelValues(disease, status).Inc()
}

// RecordPrediction records one model invocation with its duration.
func (m *ClassifierMetrics) RecordPrediction(model string, seconds float64, err error) {
	m.PredictionTotal.WithLabelValues(model).Inc()
	if err != nil {
		m.PredictionErrors.WithLabelValues(model).Inc()
		return
	}
	m.InferenceDuration.WithLabelValues(model).Observe(seconds)
}
