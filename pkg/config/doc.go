// Package config loads service configuration from KM_-prefixed
// environment variables. Two variables carry policy weight:
// KM_REDIS_URL (absent means telemetry is disabled for the process
// lifetime) and KM_ADMIN_TOKEN (absent means the stats endpoint is
// permanently forbidden).
package config
