package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors for the recommendation service
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Number of recommendation requests by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_request_duration_seconds",
			Help:    "Time taken to serve recommendation requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	numericAnomalies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrient_numeric_anomalies_total",
			Help: "NaN or infinite values sanitized out of the nutrient pipeline",
		},
		[]string{"stage"},
	)

	catalogEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutrition_catalog_entries",
			Help: "Number of entries in the loaded nutrition catalog",
		},
	)

	wastePredictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "waste_predictions_total",
			Help: "Number of waste predictions served",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestLatency,
		numericAnomalies,
		catalogEntries,
		wastePredictions,
	)
}

// RecordRequest records a completed request with its outcome and duration
func RecordRequest(endpoint, status string, seconds float64) {
	requestsTotal.WithLabelValues(endpoint, status).Inc()
	requestLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordNumericAnomaly counts sanitized NaN/Inf values for a pipeline stage
func RecordNumericAnomaly(stage string, count int) {
	if count > 0 {
		numericAnomalies.WithLabelValues(stage).Add(float64(count))
	}
}

// SetCatalogSize records the entry count of the active catalog
func SetCatalogSize(n int) {
	catalogEntries.Set(float64(n))
}

// RecordWastePrediction counts a served waste prediction
func RecordWastePrediction() {
	wastePredictions.Inc()
}
