package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/keccak-model/telemetry/pkg/api"
	"github.com/keccak-model/telemetry/pkg/config"
	"github.com/keccak-model/telemetry/pkg/observability"
	"github.com/keccak-model/telemetry/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "keccak-model: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	ctx := context.Background()

	otelProviders, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return fmt.Errorf("otel init: %w", err)
	}

	store, err := telemetry.NewStore(cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	store.Connect(ctx)

	probes, err := telemetry.NewProbeScheduler(store, cfg.Telemetry.ProbeInterval, metrics, logger)
	if err != nil {
		return err
	}
	probes.Start()

	server := api.NewServer(api.Options{
		Store:        store,
		Ingestor:     telemetry.NewIngestor(store, metrics, logger),
		Aggregator:   telemetry.NewAggregator(store, cfg.Telemetry.StatsTimeout, metrics),
		AdminToken:   cfg.AdminToken,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Metrics:      metrics,
		Logger:       logger,
	})

	var handler http.Handler = server
	if cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "keccak-model")
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Infof("Listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(probes.Stop)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return store.Close()
	})
	if otelProviders != nil {
		shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, otelProviders, logger)
		})
	}

	return shutdown.WaitForShutdown()
}
