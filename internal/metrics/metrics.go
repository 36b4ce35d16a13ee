// Package metrics provides Prometheus metrics collection for SportIQ.
// It defines the fetch, payload and prediction collectors that are exposed
// via the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	// Fetch metrics
	FetchesTotal      *prometheus.CounterVec // Fetch attempts by sport
	FetchFailures     *prometheus.CounterVec // Failed fetches by sport and reason
	FetchDuration     prometheus.Histogram   // Round trip to the sports API
	ItemsSkipped      *prometheus.CounterVec // Malformed payload items dropped
	MatchesFetched    *prometheus.CounterVec // Normalized matches by sport
	PayloadShapes     *prometheus.CounterVec // Envelope shapes seen
	PredictionsTotal  *prometheus.CounterVec // Rendered predictions by label
	RateLimitedTotal  prometheus.Counter     // Dashboard fetches rejected by the limiter
	HistoryWriteFails prometheus.Counter     // Prediction history write failures
}

// New creates and registers all metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_fetches_total",
			Help: "Total number of sports API fetches",
		}, []string{"sport"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_fetch_failures_total",
			Help: "Total number of failed sports API fetches",
		}, []string{"sport", "reason"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportiq_fetch_duration_seconds",
			Help:    "Duration of sports API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ItemsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_items_skipped_total",
			Help: "Total number of malformed payload items skipped",
		}, []string{"sport"}),
		MatchesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_matches_fetched_total",
			Help: "Total number of matches normalized from payloads",
		}, []string{"sport"}),
		PayloadShapes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_payload_shapes_total",
			Help: "Payload envelope shapes observed",
		}, []string{"shape"}),
		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sportiq_predictions_total",
			Help: "Total number of predictions rendered",
		}, []string{"label"}),
		RateLimitedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sportiq_rate_limited_total",
			Help: "Dashboard fetch requests rejected by the rate limiter",
		}),
		HistoryWriteFails: factory.NewCounter(prometheus.CounterOpts{
			Name: "sportiq_history_write_failures_total",
			Help: "Prediction history write failures",
		}),
	}
}
