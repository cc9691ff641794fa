// Package telemetry implements the usage-telemetry core: the Redis
// connection and health tracker, event/session validators, the
// day-bucketed event ingestor, the stats aggregator, and the admin
// gate guarding stats queries.
//
// # Data model
//
// Telemetry lives entirely in Redis, partitioned by UTC calendar day:
//
//	events:<YYYY-MM-DD>   hash  event name -> count, plus "__total__"
//	sessions:<YYYY-MM-DD> set   opaque session identifiers
//
// Both keys carry a rolling 120-day TTL refreshed on every write, so
// the store is eventually self-cleaning; nothing is deleted
// explicitly. Writes always target the current UTC day.
//
// # Degradation
//
// Redis being absent or unreachable never fails the write path: the
// ingestor reports stored=false and the page keeps working without
// telemetry. The read path (stats) is the opposite: it fails loudly
// rather than return partial aggregates.
//
// # Usage Example
//
//	store, _ := telemetry.NewStore(cfg.Redis, logger)
//	store.Connect(ctx)
//
//	ingestor := telemetry.NewIngestor(store, metrics, logger)
//	stored := ingestor.Ingest(ctx, telemetry.Event{Name: "run_permutation"})
//
//	agg := telemetry.NewAggregator(store, cfg.Redis.StatsTimeout, metrics)
//	stats, err := agg.Aggregate(ctx, telemetry.ClampDays(r.URL.Query().Get("days")))
//
// # Related Packages
//
//   - pkg/api: HTTP boundary over this core
//   - pkg/observability: metrics and logging
package telemetry
