package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/keccak-model/telemetry/pkg/httputil"
	"github.com/keccak-model/telemetry/pkg/telemetry"
)

type redisHealth struct {
	Enabled   bool    `json:"enabled"`
	Connected bool    `json:"connected"`
	PingMs    *int64  `json:"pingMs"`
	LastError *string `json:"lastError"`
}

type healthResponse struct {
	Status    string      `json:"status"`
	Service   string      `json:"service"`
	Timestamp string      `json:"timestamp"`
	Redis     redisHealth `json:"redis"`
}

// handleHealth serves GET /api/health. The probe runs inline so the
// response carries a fresh round-trip latency; a failed probe still
// answers 200 with connected:false, since the page works without
// telemetry.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var pingMs *int64
	if s.store.Enabled() {
		if ms, err := s.store.Probe(r.Context()); err == nil {
			pingMs = &ms
			s.metrics.ProbeLatencyMs.Set(float64(ms))
		}
	}

	snap := s.store.Snapshot()
	var lastErr *string
	if snap.LastError != "" {
		lastErr = &snap.LastError
	}

	httputil.WriteJSON(w, http.StatusOK, healthResponse{ //nolint:errcheck
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Redis: redisHealth{
			Enabled:   snap.Enabled,
			Connected: snap.Connected,
			PingMs:    pingMs,
			LastError: lastErr,
		},
	})
}

// eventRequest is the POST /api/events body. SessionID is decoded
// loosely: anything but a string is treated as "no session".
type eventRequest struct {
	Event     string      `json:"event"`
	SessionID interface{} `json:"sessionId"`
}

type eventResponse struct {
	OK           bool `json:"ok"`
	Stored       bool `json:"stored"`
	RedisEnabled bool `json:"redisEnabled"`
}

// handleEvents serves POST /api/events. The write path never fails the
// caller on store trouble: a validated event always answers 202, with
// stored reporting whether it actually reached the store.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteErrorCode(w, http.StatusBadRequest, "body_too_large")
			return
		}
		httputil.WriteErrorCode(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if !telemetry.ValidEventName(req.Event) {
		httputil.WriteErrorCode(w, http.StatusBadRequest, "invalid_event_name")
		return
	}
	s.metrics.EventsAcceptedTotal.Inc()

	sessionID, _ := req.SessionID.(string)
	stored := s.ingestor.Ingest(r.Context(), telemetry.Event{
		Name:      req.Event,
		SessionID: sessionID,
	})

	httputil.WriteJSON(w, http.StatusAccepted, eventResponse{ //nolint:errcheck
		OK:           true,
		Stored:       stored,
		RedisEnabled: s.store.Enabled(),
	})
}

type statsResponse struct {
	Days  int                  `json:"days"`
	Stats []telemetry.DayStats `json:"stats"`
}

// handleStats serves GET /api/stats. The admin token may arrive via
// the x-admin-token header or the token query parameter; the header
// wins when both are present.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("x-admin-token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	switch err := telemetry.Authorize(s.adminToken, token); {
	case errors.Is(err, telemetry.ErrAdminNotConfigured):
		httputil.WriteErrorCode(w, http.StatusForbidden, "admin_token_not_configured")
		return
	case errors.Is(err, telemetry.ErrUnauthorized):
		httputil.WriteErrorCode(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	days := telemetry.ClampDays(r.URL.Query().Get("days"))

	stats, err := s.aggregator.Aggregate(r.Context(), days)
	if err != nil {
		var unavailable *telemetry.StoreUnavailableError
		if errors.As(err, &unavailable) {
			httputil.WriteErrorDetail(w, http.StatusServiceUnavailable,
				"redis_unavailable", "lastError", unavailable.LastError)
			return
		}
		var failed *telemetry.StatsQueryFailedError
		if errors.As(err, &failed) {
			httputil.WriteErrorDetail(w, http.StatusInternalServerError,
				"stats_query_failed", "detail", failed.Err.Error())
			return
		}
		httputil.WriteErrorCode(w, http.StatusInternalServerError, "internal_error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, statsResponse{ //nolint:errcheck
		Days:  days,
		Stats: stats,
	})
}
