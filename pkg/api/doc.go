// Package api is the HTTP boundary of the telemetry core.
//
// Routes:
//
//	GET  /api/health  store health snapshot with a fresh probe
//	POST /api/events  anonymous event ping (202, never fails on store trouble)
//	GET  /api/stats   admin-gated N-day aggregation
//	GET  /metrics     Prometheus metrics
//
// Validation and auth errors resolve here without touching the store;
// store faults map to stored:false on the write path and to
// 503/500 with explicit error codes on the read path.
package api
