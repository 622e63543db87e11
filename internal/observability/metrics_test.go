package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	require.NotNil(t, m.Classifier)
	require.NotNil(t, m.Pricing)
	require.NotNil(t, m.HTTP)
}

func TestMetricsEndpointExposure(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.Classifier.RecordDetection("Yellow Leaf Disease", "Infected")
	m.Pricing.RecordRefresh("created", 0.1, 150)
	m.HTTP.RecordRequest(http.MethodGet, "/dashboard", http.StatusOK, 0.005)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "adike_detections_total")
	assert.Contains(t, body, "adike_price_refresh_total")
	assert.Contains(t, body, "adike_http_requests_total")
	assert.Contains(t, body, "adike_latest_red_price_rupees 150")
}

func TestPredictionErrorCounting(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.Classifier.RecordPrediction("yellow_leaf", 0.01, nil)
	m.Classifier.RecordPrediction("yellow_leaf", 0, assert.AnError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body := rec.Body.String()
	assert.Contains(t, body, `adike_predictions_total{model="yellow_leaf"} 2`)
	assert.Contains(t, body, `adike_prediction_errors_total{model="yellow_leaf"} 1`)
}
