package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/keccak-model/telemetry/pkg/observability"
	"github.com/keccak-model/telemetry/pkg/telemetry"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Telemetry store configuration
	Telemetry telemetry.Config

	// AdminToken guards the stats endpoint. Empty means the endpoint
	// is permanently forbidden for this deployment.
	AdminToken string

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps inbound request bodies.
	MaxBodyBytes int64
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel observability.LogLevel

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Telemetry:     loadTelemetryConfig(),
		AdminToken:    getEnv("KM_ADMIN_TOKEN", ""),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("KM_HOST", "0.0.0.0"),
		Port:            getEnv("KM_PORT", "8080"),
		ReadTimeout:     getEnvDuration("KM_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("KM_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("KM_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("KM_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    getEnvInt64("KM_MAX_BODY_BYTES", 64*1024),
	}
}

// loadTelemetryConfig loads telemetry store configuration from environment
func loadTelemetryConfig() telemetry.Config {
	cfg := telemetry.DefaultConfig()

	cfg.RedisURL = getEnv("KM_REDIS_URL", "")
	cfg.RedisPassword = getEnv("KM_REDIS_PASSWORD", "")
	if db := getEnvInt("KM_REDIS_DB", -1); db >= 0 {
		cfg.RedisDB = db
	}
	if poolSize := getEnvInt("KM_REDIS_POOL_SIZE", 0); poolSize > 0 {
		cfg.RedisPoolSize = poolSize
	}
	if maxRetries := getEnvInt("KM_REDIS_MAX_RETRIES", 0); maxRetries > 0 {
		cfg.RedisMaxRetries = maxRetries
	}
	if timeout := getEnvDuration("KM_STATS_TIMEOUT", 0); timeout > 0 {
		cfg.StatsTimeout = timeout
	}
	if interval := getEnvDuration("KM_PROBE_INTERVAL", 0); interval > 0 {
		cfg.ProbeInterval = interval
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLogLevel(getEnv("KM_LOG_LEVEL", "info")),
		OTelEnabled:        getEnvBool("KM_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("KM_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("KM_OTEL_SERVICE_NAME", "keccak-model"),
		OTelServiceVersion: getEnv("KM_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("KM_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
