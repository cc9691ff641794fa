package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/keccak-model/telemetry/pkg/httputil"
	"github.com/keccak-model/telemetry/pkg/observability"
	"github.com/keccak-model/telemetry/pkg/telemetry"
)

// ServiceName appears in health responses.
const ServiceName = "keccak-model"

// Server is the HTTP boundary of the telemetry core.
type Server struct {
	router *mux.Router

	store      *telemetry.Store
	ingestor   *telemetry.Ingestor
	aggregator *telemetry.Aggregator
	adminToken string

	maxBodyBytes int64
	metrics      *observability.Metrics
	logger       *observability.Logger
}

// Options configures a Server.
type Options struct {
	Store      *telemetry.Store
	Ingestor   *telemetry.Ingestor
	Aggregator *telemetry.Aggregator

	// AdminToken guards /api/stats; empty means permanently forbidden.
	AdminToken string

	// MaxBodyBytes caps inbound bodies; zero means 64 KiB.
	MaxBodyBytes int64

	Metrics *observability.Metrics
	Logger  *observability.Logger
}

// NewServer builds the API server and its routes.
func NewServer(opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 64 * 1024
	}

	s := &Server{
		router:       mux.NewRouter(),
		store:        opts.Store,
		ingestor:     opts.Ingestor,
		aggregator:   opts.Aggregator,
		adminToken:   opts.AdminToken,
		maxBodyBytes: opts.MaxBodyBytes,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
	}

	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.RecoveryMiddleware(s.logger))
	s.router.Use(httputil.LoggingMiddleware(s.logger))
	s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/events", s.handleEvents).Methods("POST")
	s.router.HandleFunc("/api/stats", s.handleStats).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
