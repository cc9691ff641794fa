package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/keccak-model/telemetry/pkg/observability"
)

// Config holds Redis connection settings for the telemetry store.
type Config struct {
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisPoolSize   int
	RedisMaxRetries int

	// StatsTimeout bounds a whole Aggregate call.
	StatsTimeout time.Duration
	// ProbeInterval is the period of the background liveness probe.
	ProbeInterval time.Duration
}

// DefaultConfig returns default telemetry store settings.
func DefaultConfig() Config {
	return Config{
		RedisDB:       -1,
		StatsTimeout:  5 * time.Second,
		ProbeInterval: 30 * time.Second,
	}
}

// HealthState is a point-in-time snapshot of store health. Enabled is
// fixed at process start; Connected and LastError track the most
// recent connect attempt or store operation.
type HealthState struct {
	Enabled   bool
	Connected bool
	LastError string
}

// Store owns the Redis connection and its health state. A Store built
// without a Redis URL is permanently disabled; every operation then
// reports the store as unavailable and the rest of the service
// degrades instead of failing.
//
// Health state is advisory: it short-circuits store calls but is never
// relied on for correctness, so readers tolerate staleness. The mutex
// only keeps the struct race-free.
type Store struct {
	client  *redis.Client
	enabled bool
	logger  *observability.Logger

	mu        sync.RWMutex
	connected bool
	lastErr   string
}

const connectTimeout = 5 * time.Second

// NewStore builds a telemetry store from config. An empty RedisURL
// yields a disabled store, not an error; a malformed URL is an error
// because the operator clearly intended telemetry to be on.
func NewStore(cfg Config, logger *observability.Logger) (*Store, error) {
	if cfg.RedisURL == "" {
		logger.Info("no redis URL configured, telemetry disabled")
		return &Store{enabled: false, logger: logger}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB >= 0 {
		opts.DB = cfg.RedisDB
	}
	if cfg.RedisMaxRetries > 0 {
		opts.MaxRetries = cfg.RedisMaxRetries
	}
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}

	// Explicit operation timeouts; the client's defaults are too
	// loose for a shared host.
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	return &Store{
		client:  redis.NewClient(opts),
		enabled: true,
		logger:  logger,
	}, nil
}

// Enabled reports whether a Redis URL was configured at startup.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Available reports whether the store can currently serve operations.
func (s *Store) Available() bool {
	if !s.enabled {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Snapshot returns the current health state without blocking.
func (s *Store) Snapshot() HealthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return HealthState{
		Enabled:   s.enabled,
		Connected: s.connected,
		LastError: s.lastErr,
	}
}

// Connect kicks off a non-blocking connection attempt. The store
// transitions to connected (or errored) when the background ping
// resolves; callers keep serving in the meantime.
func (s *Store) Connect(ctx context.Context) {
	if !s.enabled {
		return
	}

	go func() {
		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()

		if err := s.client.Ping(pingCtx).Err(); err != nil {
			s.markError(err)
			s.logger.WithError(err).Warn("redis connect failed")
			return
		}
		s.markHealthy()
		s.logger.Info("redis connected")
	}()
}

// Probe issues a liveness ping and returns the round-trip latency in
// milliseconds, updating health state as a side effect.
func (s *Store) Probe(ctx context.Context) (int64, error) {
	if !s.enabled {
		return 0, ErrStoreDisabled
	}

	start := time.Now()
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.markError(err)
		return 0, err
	}
	s.markHealthy()
	return time.Since(start).Milliseconds(), nil
}

// Close releases the Redis connection. Safe to call on a disabled store.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// markHealthy records a successful store operation.
func (s *Store) markHealthy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	s.lastErr = ""
}

// markError records a failed store operation.
func (s *Store) markError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.lastErr = err.Error()
}
