package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/common/indexer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// Worker exports a record set into every configured backend
type Worker struct {
	indexers []indexer.Indexer
	logger   *zap.Logger

	// one run at a time, so two exports never interleave rows
	runMu sync.Mutex

	batchSize   int
	concurrency int
}

// Config holds worker configuration
type Config struct {
	Concurrency int
	BatchSize   int
}

// Report summarizes one backend's export
type Report struct {
	Backend       string
	Batches       int
	FailedBatches int
	Records       int
	Elapsed       time.Duration
}

// NewWorker creates a new worker
func NewWorker(indexers []indexer.Indexer, cfg Config, logger *zap.Logger) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Worker{
		indexers:    indexers,
		logger:      logger,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
}

// Run exports jobs to all backends in parallel. Batch failures are logged and
// counted, never fatal; only cancellation stops the run early. Concurrent
// calls wait for the running export to finish.
func (w *Worker) Run(ctx context.Context, runID string, jobs []domain.Job) ([]Report, error) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	batches := split(jobs, w.batchSize)
	w.logger.Info("Starting export",
		zap.String("run_id", runID),
		zap.Int("records", len(jobs)),
		zap.Int("batches", len(batches)),
		zap.Int("backends", len(w.indexers)),
		zap.Int("concurrency", w.concurrency))

	reports := make([]Report, len(w.indexers))
	var wg sync.WaitGroup
	for i, idx := range w.indexers {
		wg.Add(1)
		go func(i int, idx indexer.Indexer) {
			defer wg.Done()
			reports[i] = w.runBackend(ctx, runID, idx, batches)
		}(i, idx)
	}
	wg.Wait()

	return reports, ctx.Err()
}

func (w *Worker) runBackend(ctx context.Context, runID string, idx indexer.Indexer, batches [][]domain.Job) Report {
	start := time.Now()
	queue := make(chan []domain.Job)
	var failed, records atomic.Int64

	var wg sync.WaitGroup
	for workerID := 0; workerID < w.concurrency; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for batch := range queue {
				if err := idx.BulkIndex(ctx, runID, batch); err != nil {
					failed.Add(1)
					w.logger.Warn("Batch index error",
						zap.String("backend", idx.Name()),
						zap.Int("worker", workerID),
						zap.Int("size", len(batch)),
						zap.Error(err))
					continue
				}
				records.Add(int64(len(batch)))
			}
		}(workerID)
	}

feed:
	for _, batch := range batches {
		select {
		case <-ctx.Done():
			break feed
		case queue <- batch:
		}
	}
	close(queue)
	wg.Wait()

	report := Report{
		Backend:       idx.Name(),
		Batches:       len(batches),
		FailedBatches: int(failed.Load()),
		Records:       int(records.Load()),
		Elapsed:       time.Since(start),
	}
	w.logger.Info("Backend export finished",
		zap.String("backend", report.Backend),
		zap.Int("records", report.Records),
		zap.Int("failed_batches", report.FailedBatches),
		zap.Duration("elapsed", report.Elapsed))
	return report
}

func split(jobs []domain.Job, size int) [][]domain.Job {
	batches := make([][]domain.Job, 0, (len(jobs)+size-1)/size)
	for start := 0; start < len(jobs); start += size {
		end := min(start+size, len(jobs))
		batches = append(batches, jobs[start:end])
	}
	return batches
}
