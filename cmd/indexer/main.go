package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/common/indexer"
	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/events"
	"github.com/project-tktt/jobs-market/internal/logger"
	"github.com/project-tktt/jobs-market/internal/module/worker"
	"github.com/project-tktt/jobs-market/internal/telemetry"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and re-export on every dataset event")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	err = run(cfg, zl, *watch)
	zl.Sync()
	if err != nil {
		zl.Error("Indexer stopped", zap.Error(err))
		os.Exit(1)
	}
}

// run owns every resource so deferred closes happen before the process exits
func run(cfg *config.Config, zl *zap.Logger, watch bool) error {
	zl.Info("Starting Jobs Indexer", zap.Strings("backends", cfg.Indexer.Backends), zap.Bool("watch", watch))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName+"-indexer", cfg.Telemetry.CollectorURL, zl)
	if err != nil {
		zl.Warn("Tracing disabled", zap.Error(err))
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	// Initialize indexers; a backend that cannot connect is skipped
	var indexers []indexer.Indexer
	defer func() {
		for _, idx := range indexers {
			if err := idx.Close(); err != nil {
				zl.Warn("Failed to close indexer", zap.String("backend", idx.Name()), zap.Error(err))
			}
		}
	}()
	for _, backend := range cfg.Indexer.Backends {
		idx, err := indexer.New(ctx, backend, cfg, zl)
		if err != nil {
			zl.Error("Indexer unavailable", zap.String("backend", backend), zap.Error(err))
			continue
		}
		indexers = append(indexers, idx)
		zl.Info("Indexer connected", zap.String("backend", idx.Name()))
	}
	if len(indexers) == 0 {
		return errors.New("no indexer backend available")
	}

	w := worker.NewWorker(indexers, worker.Config{
		Concurrency: cfg.Worker.Concurrency,
		BatchSize:   cfg.Worker.BatchSize,
	}, zl)

	// Exports are serialized; events arriving mid-export wait their turn
	var mu sync.Mutex
	export := func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()

		// A fresh loader picks up whatever is on disk now
		loader := dataset.NewLoader(dataset.Config{
			Dir:     cfg.Dataset.Dir,
			Timeout: cfg.Dataset.LoadTimeout,
		}, nil, zl)

		ds, err := loader.Load(ctx)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		reports, err := w.Run(ctx, runID, ds.Jobs)
		for _, r := range reports {
			zl.Info("Export finished",
				zap.String("run_id", runID),
				zap.String("backend", r.Backend),
				zap.String("source", ds.Source),
				zap.Int("records", r.Records),
				zap.Int("batches", r.Batches),
				zap.Int("failed_batches", r.FailedBatches),
				zap.Duration("elapsed", r.Elapsed))
		}
		return err
	}

	if !watch {
		if err := export(ctx); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}

	if cfg.NATS.URL == "" {
		return errors.New("watch mode needs NATS_URL")
	}
	nc, err := events.Connect(cfg.NATS, "jobs-market-indexer")
	if err != nil {
		return err
	}
	defer nc.Close()

	sub := events.NewSubscriber(nc, cfg.NATS.Subject, "jobs-market-indexer", func(ctx context.Context, ev events.DatasetLoadedEvent) error {
		zl.Info("Dataset event received", zap.String("build_id", ev.BuildID), zap.String("source", ev.Source), zap.Int("records", ev.Records))
		return export(ctx)
	}, zl)
	if err := sub.Start(); err != nil {
		return err
	}

	if err := export(ctx); err != nil {
		zl.Error("Initial export failed", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zl.Info("Shutdown signal received, stopping...")
	cancel()

	if err := sub.Stop(); err != nil {
		zl.Warn("Unsubscribe failed", zap.Error(err))
	}

	// Wait for an in-flight export before closing the backends
	done := make(chan struct{})
	go func() {
		mu.Lock()
		mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		zl.Info("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		zl.Warn("Shutdown timeout, forcing exit")
	}
	return nil
}
