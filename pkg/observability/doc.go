// Package observability provides structured logging, Prometheus
// metrics, optional OpenTelemetry tracing, and graceful shutdown for
// the telemetry service.
//
// Logging is JSON over stdlib slog. Metrics live on a private
// prometheus.Registry served at /metrics. OTel providers (OTLP over
// gRPC) are disabled unless configured. ShutdownManager drains the
// HTTP server, runs registered shutdown functions in parallel, and
// runs at most once per process.
package observability
