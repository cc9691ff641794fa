package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/keccak-model/telemetry/pkg/observability"
)

// ProbeScheduler re-pings the store on a fixed schedule so an errored
// store recovers without waiting for request traffic to touch it.
type ProbeScheduler struct {
	cron    *cron.Cron
	store   *Store
	metrics *observability.Metrics
	logger  *observability.Logger
}

// NewProbeScheduler builds a scheduler probing store every interval.
func NewProbeScheduler(store *Store, interval time.Duration, metrics *observability.Metrics, logger *observability.Logger) (*ProbeScheduler, error) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ps := &ProbeScheduler{
		cron:    cron.New(),
		store:   store,
		metrics: metrics,
		logger:  logger,
	}

	if _, err := ps.cron.AddFunc(fmt.Sprintf("@every %s", interval), ps.probe); err != nil {
		return nil, fmt.Errorf("failed to schedule store probe: %w", err)
	}
	return ps, nil
}

// Start begins probing. No-op for a disabled store.
func (ps *ProbeScheduler) Start() {
	if !ps.store.Enabled() {
		return
	}
	ps.cron.Start()
}

// Stop halts the scheduler and waits for a running probe to finish.
func (ps *ProbeScheduler) Stop(ctx context.Context) error {
	select {
	case <-ps.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ps *ProbeScheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	ms, err := ps.store.Probe(ctx)
	if err != nil {
		ps.logger.WithError(err).Debug("store probe failed")
		return
	}
	ps.metrics.ProbeLatencyMs.Set(float64(ms))
}
