package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClampDays(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 7},
		{"abc", 7},
		{"NaN", 7},
		{"0", 1},
		{"-5", 1},
		{"1", 1},
		{"7", 7},
		{"30", 30},
		{"31", 30},
		{"1000", 30},
	}

	for _, tt := range tests {
		if got := ClampDays(tt.input); got != tt.want {
			t.Errorf("ClampDays(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestAggregate_StoreUnavailable(t *testing.T) {
	store, err := NewStore(DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	agg := NewAggregator(store, 0, testMetrics())
	_, err = agg.Aggregate(context.Background(), 7)

	var unavailable *StoreUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected StoreUnavailableError, got %v", err)
	}
}

func TestAggregate_EmptyDaysInOrder(t *testing.T) {
	store, _, cleanup := setupStoreTest(t)
	defer cleanup()

	agg := NewAggregator(store, 0, testMetrics())
	stats, err := agg.Aggregate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(stats) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(stats))
	}

	now := time.Now().UTC()
	for i, day := range stats {
		wantDate := now.AddDate(0, 0, -i).Format(dateLayout)
		if day.Date != wantDate {
			t.Errorf("stats[%d].Date = %s, want %s", i, day.Date, wantDate)
		}
		if day.Events == nil || len(day.Events) != 0 {
			t.Errorf("stats[%d].Events = %v, want empty map", i, day.Events)
		}
		if day.UniqueSessions != 0 {
			t.Errorf("stats[%d].UniqueSessions = %d, want 0", i, day.UniqueSessions)
		}
	}
}

func TestAggregate_ReadsBackIngestedData(t *testing.T) {
	store, _, cleanup := setupStoreTest(t)
	defer cleanup()

	ing := NewIngestor(store, testMetrics(), testLogger())
	ctx := context.Background()

	ing.Ingest(ctx, Event{Name: "page_view", SessionID: "session-abc-123"})
	ing.Ingest(ctx, Event{Name: "page_view", SessionID: "session-def-456"})
	ing.Ingest(ctx, Event{Name: "run_permutation", SessionID: "session-abc-123"})

	agg := NewAggregator(store, 0, testMetrics())
	stats, err := agg.Aggregate(ctx, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	today := stats[0]
	if today.Events["page_view"] != 2 {
		t.Errorf("page_view = %d, want 2", today.Events["page_view"])
	}
	if today.Events["run_permutation"] != 1 {
		t.Errorf("run_permutation = %d, want 1", today.Events["run_permutation"])
	}
	if today.Events[totalField] != 3 {
		t.Errorf("total = %d, want 3", today.Events[totalField])
	}
	if today.UniqueSessions != 2 {
		t.Errorf("uniqueSessions = %d, want 2", today.UniqueSessions)
	}

	yesterday := stats[1]
	if len(yesterday.Events) != 0 || yesterday.UniqueSessions != 0 {
		t.Errorf("Expected empty yesterday, got %+v", yesterday)
	}
}

func TestAggregate_NoPartialResults(t *testing.T) {
	store, mr, cleanup := setupStoreTest(t)
	defer cleanup()

	mr.SetError("forced failure")

	agg := NewAggregator(store, 0, testMetrics())
	stats, err := agg.Aggregate(context.Background(), 5)

	var failed *StatsQueryFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected StatsQueryFailedError, got %v", err)
	}
	if stats != nil {
		t.Errorf("Expected nil stats on failure, got %v", stats)
	}

	if store.Snapshot().Connected {
		t.Error("Expected failure to be recorded in health state")
	}
}
