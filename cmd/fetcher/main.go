package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/common/dedup"
	"github.com/project-tktt/jobs-market/internal/common/extractor"
	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/logger"
	"github.com/project-tktt/jobs-market/internal/module/fetcher"
)

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

	if len(cfg.Fetcher.IndexURLs) == 0 {
		zl.Fatal("No index pages configured, set FETCH_INDEX_URLS")
	}
	zl.Info("Starting Dataset Fetcher",
		zap.Strings("index_urls", cfg.Fetcher.IndexURLs),
		zap.String("dataset_dir", cfg.Dataset.Dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fingerprints are optional; without Redis every file is downloaded
	var fingerprints fetcher.Fingerprints
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			zl.Warn("Redis connection failed, fingerprints disabled", zap.Error(err))
		} else {
			fingerprints = dedup.NewDeduplicator(rdb, cfg.Fetcher.DedupPrefix, cfg.Fetcher.DedupTTL)
			zl.Info("Redis connected")
		}
	}

	ext := extractor.NewCollyExtractor(extractor.ExtractorConfig{
		UserAgent:    cfg.Fetcher.UserAgent,
		RequestDelay: cfg.Fetcher.RequestDelay,
		MaxBodyBytes: cfg.Fetcher.MaxBodyBytes,
	})
	f := fetcher.NewFetcher(ext, fingerprints, cfg.Dataset.Dir, zl)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		zl.Info("Shutdown signal received, stopping...")
		cancel()
	}()

	start := time.Now()
	res, err := f.Run(ctx, cfg.Fetcher.IndexURLs)
	zl.Info("Fetch finished",
		zap.Int("pages", res.Pages),
		zap.Int("links", res.Links),
		zap.Int("downloaded", res.Downloaded),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		zl.Fatal("Fetch interrupted", zap.Error(err))
	}
}
