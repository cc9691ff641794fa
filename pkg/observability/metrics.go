package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the telemetry service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Ingest metrics
	EventsAcceptedTotal prometheus.Counter
	EventsStoredTotal   prometheus.Counter
	EventsDroppedTotal  *prometheus.CounterVec

	// Store metrics
	StoreCommandDuration *prometheus.HistogramVec
	ProbeLatencyMs       prometheus.Gauge

	// Stats query metrics
	StatsQueriesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keccak_model_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keccak_model_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		EventsAcceptedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "keccak_model_events_accepted_total",
				Help: "Events that passed validation",
			},
		),
		EventsStoredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "keccak_model_events_stored_total",
				Help: "Events written to the store",
			},
		),
		EventsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keccak_model_events_dropped_total",
				Help: "Accepted events not written to the store",
			},
			[]string{"reason"},
		),

		StoreCommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keccak_model_store_command_duration_seconds",
				Help:    "Store operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		ProbeLatencyMs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "keccak_model_store_probe_latency_ms",
				Help: "Round-trip latency of the last store probe in milliseconds",
			},
		),

		StatsQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keccak_model_stats_queries_total",
				Help: "Stats aggregation queries by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EventsAcceptedTotal,
		m.EventsStoredTotal,
		m.EventsDroppedTotal,
		m.StoreCommandDuration,
		m.ProbeLatencyMs,
		m.StatsQueriesTotal,
	)

	return m
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			status := strconv.Itoa(rw.statusCode)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
