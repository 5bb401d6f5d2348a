package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	requestsTotal     *prometheus.CounterVec
	latencySeconds    *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	narrationSessions prometheus.Counter
	reportsGenerated  prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used for API observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		narrationSessions = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "narration_sessions_total",
			Help: "Total number of narration playback sessions started.",
		})

		reportsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of PDF result reports generated.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, narrationSessions, reportsGenerated)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// NarrationSessions exposes the counter for started narration sessions.
func NarrationSessions() prometheus.Counter {
	RegisterMetrics()
	return narrationSessions
}

// ReportsGenerated exposes the counter for generated PDF reports.
func ReportsGenerated() prometheus.Counter {
	RegisterMetrics()
	return reportsGenerated
}
