package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/agent"
	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/logger"
	"github.com/project-tktt/jobs-market/internal/service"
)

// Logs go to stderr; stdout carries the protocol.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()

	responseCache, err := service.NewResponseCache(context.Background(), cfg.Cache, cfg.Redis, zl)
	if err != nil {
		zl.Fatal("Failed to create response cache", zap.Error(err))
	}
	defer responseCache.Close()

	loader := dataset.NewLoader(dataset.Config{
		Dir:     cfg.Dataset.Dir,
		Timeout: cfg.Dataset.LoadTimeout,
	}, nil, zl)
	svc := service.NewJobsService(loader, responseCache, cfg.Cache.TTL, zl)

	s := server.NewMCPServer("jobs-market", "1.0.0")
	agent.NewTools(svc, zl).Register(s)

	zl.Info("Serving MCP tools on stdio", zap.String("dataset_dir", cfg.Dataset.Dir))
	if err := server.ServeStdio(s); err != nil {
		zl.Error("Server error", zap.Error(err))
		os.Exit(1)
	}
}
