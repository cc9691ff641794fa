package config

import (
	"testing"
	"time"

	"github.com/keccak-model/telemetry/pkg/observability"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 64*1024 {
		t.Errorf("MaxBodyBytes = %d, want 65536", cfg.Server.MaxBodyBytes)
	}
	if cfg.Telemetry.RedisURL != "" {
		t.Errorf("RedisURL = %s, want empty", cfg.Telemetry.RedisURL)
	}
	if cfg.AdminToken != "" {
		t.Errorf("AdminToken = %s, want empty", cfg.AdminToken)
	}
	if cfg.Telemetry.StatsTimeout != 5*time.Second {
		t.Errorf("StatsTimeout = %v, want 5s", cfg.Telemetry.StatsTimeout)
	}
	if cfg.Observability.LogLevel != observability.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.Observability.LogLevel)
	}
	if cfg.Observability.OTelEnabled {
		t.Error("OTel should be disabled by default")
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("KM_PORT", "9999")
	t.Setenv("KM_REDIS_URL", "redis://localhost:6379")
	t.Setenv("KM_REDIS_DB", "3")
	t.Setenv("KM_ADMIN_TOKEN", "hunter2")
	t.Setenv("KM_STATS_TIMEOUT", "2s")
	t.Setenv("KM_PROBE_INTERVAL", "10s")
	t.Setenv("KM_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("Port = %s, want 9999", cfg.Server.Port)
	}
	if cfg.Telemetry.RedisURL != "redis://localhost:6379" {
		t.Errorf("RedisURL = %s", cfg.Telemetry.RedisURL)
	}
	if cfg.Telemetry.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.Telemetry.RedisDB)
	}
	if cfg.AdminToken != "hunter2" {
		t.Errorf("AdminToken = %s, want hunter2", cfg.AdminToken)
	}
	if cfg.Telemetry.StatsTimeout != 2*time.Second {
		t.Errorf("StatsTimeout = %v, want 2s", cfg.Telemetry.StatsTimeout)
	}
	if cfg.Telemetry.ProbeInterval != 10*time.Second {
		t.Errorf("ProbeInterval = %v, want 10s", cfg.Telemetry.ProbeInterval)
	}
	if cfg.Observability.LogLevel != observability.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.Observability.LogLevel)
	}
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("KM_STATS_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Telemetry.StatsTimeout != 5*time.Second {
		t.Errorf("StatsTimeout = %v, want default 5s", cfg.Telemetry.StatsTimeout)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.Server.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty port")
	}

	cfg.Server.Port = "8080"
	cfg.Server.MaxBodyBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero body limit")
	}

	cfg.Server.MaxBodyBytes = 1024
	cfg.Observability.OTelEnabled = true
	cfg.Observability.OTelEndpoint = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for enabled OTel without endpoint")
	}
}
