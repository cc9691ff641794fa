package telemetry

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keccak-model/telemetry/pkg/observability"
)

const (
	// DefaultDays is used when the days parameter is absent or unparseable.
	DefaultDays = 7
	// MaxDays bounds a single stats query.
	MaxDays = 30
)

// ClampDays parses a raw days parameter into the [1, MaxDays] range.
// Empty or non-numeric input falls back to DefaultDays.
func ClampDays(raw string) int {
	if raw == "" {
		return DefaultDays
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultDays
	}
	if n < 1 {
		return 1
	}
	if n > MaxDays {
		return MaxDays
	}
	return n
}

// DayStats is one day's aggregated telemetry. Events includes the
// reserved "__total__" counter alongside the named events.
type DayStats struct {
	Date           string           `json:"date"`
	Events         map[string]int64 `json:"events"`
	UniqueSessions int64            `json:"uniqueSessions"`
}

// Aggregator reads back N days of counters and unique-session counts.
type Aggregator struct {
	store   *Store
	timeout time.Duration
	metrics *observability.Metrics
}

// NewAggregator creates a stats aggregator. timeout bounds a whole
// Aggregate call; zero means the default of 5s.
func NewAggregator(store *Store, timeout time.Duration, metrics *observability.Metrics) *Aggregator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Aggregator{
		store:   store,
		timeout: timeout,
		metrics: metrics,
	}
}

// Aggregate returns one entry per requested day, today first, then
// ascending into the past. Days with no recorded activity report an
// empty event map and zero sessions; no days are skipped.
//
// The per-day reads run concurrently but land in offset order: the
// ordering contract is on the output, not the scheduling. Any read
// error fails the whole call with StatsQueryFailedError; partial
// aggregates would be silently wrong totals.
func (a *Aggregator) Aggregate(ctx context.Context, days int) ([]DayStats, error) {
	if !a.store.Available() {
		a.metrics.StatsQueriesTotal.WithLabelValues("unavailable").Inc()
		return nil, &StoreUnavailableError{LastError: a.store.Snapshot().LastError}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	now := time.Now().UTC()
	start := time.Now()
	out := make([]DayStats, days)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < days; i++ {
		i := i
		eg.Go(func() error {
			day := now.AddDate(0, 0, -i)

			fields, err := a.store.client.HGetAll(ctx, eventsKey(day)).Result()
			if err != nil {
				return err
			}
			sessions, err := a.store.client.SCard(ctx, sessionsKey(day)).Result()
			if err != nil {
				return err
			}

			events := make(map[string]int64, len(fields))
			for name, v := range fields {
				n, convErr := strconv.ParseInt(v, 10, 64)
				if convErr != nil {
					continue
				}
				events[name] = n
			}

			out[i] = DayStats{
				Date:           day.Format(dateLayout),
				Events:         events,
				UniqueSessions: sessions,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		a.store.markError(err)
		a.metrics.StatsQueriesTotal.WithLabelValues("error").Inc()
		return nil, &StatsQueryFailedError{Err: err}
	}
	a.store.markHealthy()
	a.metrics.StoreCommandDuration.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())
	a.metrics.StatsQueriesTotal.WithLabelValues("ok").Inc()
	return out, nil
}
