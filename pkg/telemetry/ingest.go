package telemetry

import (
	"context"
	"time"

	"github.com/keccak-model/telemetry/pkg/observability"
)

const (
	// dateLayout is the UTC calendar-day bucket format.
	dateLayout = "2006-01-02"

	// totalField is the reserved counter inside each day's event hash
	// holding the sum of all named counts.
	totalField = "__total__"

	// retentionTTL is the rolling expiry applied to every day bucket on
	// each write. Expiry is the only deletion path.
	retentionTTL = 120 * 24 * time.Hour
)

func eventsKey(day time.Time) string {
	return "events:" + day.UTC().Format(dateLayout)
}

func sessionsKey(day time.Time) string {
	return "sessions:" + day.UTC().Format(dateLayout)
}

// Event is a single validated telemetry ping.
type Event struct {
	// Name must already satisfy ValidEventName; the HTTP boundary
	// rejects invalid names before the ingestor runs.
	Name string
	// SessionID is optional. An id failing ValidSessionID is ignored,
	// not an error.
	SessionID string
}

// Ingestor performs atomic day-bucketed writes against the store.
type Ingestor struct {
	store   *Store
	metrics *observability.Metrics
	logger  *observability.Logger
}

// NewIngestor creates an event ingestor.
func NewIngestor(store *Store, metrics *observability.Metrics, logger *observability.Logger) *Ingestor {
	return &Ingestor{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Ingest records ev against today's buckets and reports whether it was
// stored. Ingestion never fails the caller: an unavailable store or a
// transport error collapses to stored=false, the error is recorded in
// health state, and normal page operation continues without telemetry.
//
// The counter increments, the optional session add, and the TTL
// refreshes are applied as one MULTI/EXEC transaction, so the
// total-equals-sum invariant holds for concurrent readers.
func (i *Ingestor) Ingest(ctx context.Context, ev Event) bool {
	if !i.store.Available() {
		i.metrics.EventsDroppedTotal.WithLabelValues("store_unavailable").Inc()
		return false
	}

	now := time.Now().UTC()
	ek := eventsKey(now)

	start := time.Now()
	pipe := i.store.client.TxPipeline()
	pipe.HIncrBy(ctx, ek, ev.Name, 1)
	pipe.HIncrBy(ctx, ek, totalField, 1)
	pipe.Expire(ctx, ek, retentionTTL)
	if ValidSessionID(ev.SessionID) {
		sk := sessionsKey(now)
		pipe.SAdd(ctx, sk, ev.SessionID)
		pipe.Expire(ctx, sk, retentionTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		i.store.markError(err)
		i.metrics.EventsDroppedTotal.WithLabelValues("store_error").Inc()
		i.logger.WithError(err).WithField("event", ev.Name).Warn("event write failed")
		return false
	}
	i.store.markHealthy()
	i.metrics.StoreCommandDuration.WithLabelValues("ingest").Observe(time.Since(start).Seconds())
	i.metrics.EventsStoredTotal.Inc()
	return true
}
