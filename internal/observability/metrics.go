package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// odds service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec // labels: path={historical,forecast}
	RequestDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={forward,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={forward,reverse}

	// Observation source metrics.
	ObservationFetches      *prometheus.CounterVec // labels: outcome={success,error}
	ObservationFetchSeconds prometheus.Histogram

	ReportsPublished prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "requests_total",
			Help:      "Completed odds requests by analysis path.",
		}, []string{"path"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "request_duration_seconds",
			Help:      "End-to-end duration of one odds request.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "geocode_api_duration_seconds",
			Help:      "Nominatim API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		ObservationFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "observation_fetches_total",
			Help:      "Historical observation fetches by outcome.",
		}, []string{"outcome"}),
		ObservationFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "observation_fetch_duration_seconds",
			Help:      "POWER API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "reports_published_total",
			Help:      "Reports published to the archive topic.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.ObservationFetches,
		m.ObservationFetchSeconds,
		m.ReportsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_odds", Name: "requests_total"}, []string{"path"}),
		RequestDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_odds", Name: "request_duration_seconds"}),
		GeocodeRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_odds", Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_odds", Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_odds", Name: "geocode_api_duration_seconds"}, []string{"method"}),
		ObservationFetches:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_odds", Name: "observation_fetches_total"}, []string{"outcome"}),
		ObservationFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_odds", Name: "observation_fetch_duration_seconds"}),
		ReportsPublished:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_odds", Name: "reports_published_total"}),
	}
}
