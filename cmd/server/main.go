package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/events"
	"github.com/project-tktt/jobs-market/internal/handler"
	"github.com/project-tktt/jobs-market/internal/logger"
	"github.com/project-tktt/jobs-market/internal/service"
	"github.com/project-tktt/jobs-market/internal/telemetry"
)

// @title Jobs Market API
// @version 1.0
// @description Read-only analytics over a CSV dataset of AI job postings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("Starting Jobs Market API", zap.String("addr", cfg.Server.Addr()), zap.String("dataset_dir", cfg.Dataset.Dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorURL, zl)
	if err != nil {
		zl.Warn("Tracing disabled", zap.Error(err))
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	// Dataset events are optional
	var notifier dataset.Notifier
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS, "jobs-market-api")
		if err != nil {
			zl.Warn("NATS unavailable, dataset events disabled", zap.Error(err))
		} else {
			publisher := events.NewPublisher(nc, cfg.NATS.Subject, zl)
			defer publisher.Close()
			notifier = publisher
			zl.Info("NATS connected", zap.String("subject", cfg.NATS.Subject))
		}
	}

	responseCache, err := service.NewResponseCache(ctx, cfg.Cache, cfg.Redis, zl)
	if err != nil {
		zl.Fatal("Failed to create response cache", zap.Error(err))
	}
	defer responseCache.Close()

	loader := dataset.NewLoader(dataset.Config{
		Dir:     cfg.Dataset.Dir,
		Timeout: cfg.Dataset.LoadTimeout,
	}, notifier, zl)
	svc := service.NewJobsService(loader, responseCache, cfg.Cache.TTL, zl)
	h := handler.NewJobsHandler(svc, zl)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(h, zl),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		zl.Info("Shutdown signal received, stopping...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		zl.Error("Server error", zap.Error(err))
	}
	cancel()

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Shutdown timeout, forcing exit", zap.Error(err))
		return
	}
	zl.Info("Graceful shutdown complete")
}
