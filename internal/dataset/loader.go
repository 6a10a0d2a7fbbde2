package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// RequiredColumns must all be present in a CSV header for the file to be used
var RequiredColumns = []string{
	"job_title",
	"salary_usd",
	"experience_level",
	"job_category",
	"company_location",
	"remote_ratio",
	"required_skills",
	"education_required",
}

const (
	utf8BOM        = "\ufeff"
	maxHeaderBytes = 64 << 10
)

// Dataset is the canonical record set built once per process. Never mutated.
type Dataset struct {
	Jobs     []domain.Job
	Source   string
	LoadedAt time.Time
	BuildID  string
}

// Notifier is told about every freshly built dataset
type Notifier interface {
	DatasetLoaded(ctx context.Context, ds *Dataset) error
}

// Config holds loader configuration
type Config struct {
	Dir     string
	Timeout time.Duration
}

// Loader finds, parses and memoizes the jobs dataset
type Loader struct {
	config     Config
	normalizer *normalizer.Normalizer
	notifier   Notifier
	logger     *zap.Logger

	mu      sync.RWMutex
	current *Dataset
	group   singleflight.Group
	builds  atomic.Int64

	build func(ctx context.Context) (*Dataset, error)
}

// NewLoader creates a loader; notifier may be nil
func NewLoader(cfg Config, notifier Notifier, logger *zap.Logger) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Loader{
		config:     cfg,
		normalizer: normalizer.NewNormalizer(),
		notifier:   notifier,
		logger:     logger,
	}
	l.build = l.buildDataset
	return l
}

// Load returns the dataset, building it on first use.
// Concurrent callers share a single in-flight build. A failed build is not
// remembered, so the next call retries. Cancelling ctx only stops the wait.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if ds := l.loaded(); ds != nil {
		return ds, nil
	}

	ch := l.group.DoChan("dataset", func() (any, error) {
		if ds := l.loaded(); ds != nil {
			return ds, nil
		}

		l.builds.Add(1)
		ds, err := l.build(context.Background())
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.current = ds
		l.mu.Unlock()

		l.notify(ds)
		return ds, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Builds reports how many dataset builds have started
func (l *Loader) Builds() int64 {
	return l.builds.Load()
}

func (l *Loader) loaded() *Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *Loader) notify(ds *Dataset) {
	if l.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.notifier.DatasetLoaded(ctx, ds); err != nil {
		l.logger.Warn("Failed to publish dataset event", zap.String("build_id", ds.BuildID), zap.Error(err))
	}
}

func (l *Loader) buildDataset(parent context.Context) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(parent, l.config.Timeout)
	defer cancel()

	start := time.Now()
	path, err := l.findDataset(ctx)
	if err != nil {
		return nil, err
	}

	if path != "" {
		jobs, err := l.parseFile(ctx, path)
		switch {
		case err != nil:
			l.logger.Error("Failed to parse jobs dataset, using fallback sample",
				zap.String("file", path), zap.Error(err))
		case len(jobs) == 0:
			l.logger.Warn("Jobs dataset has no usable rows, using fallback sample", zap.String("file", path))
		default:
			ds := newDataset(jobs, domain.SourceCSVPrefix+filepath.Base(path))
			l.logger.Info("Loaded jobs dataset",
				zap.String("source", ds.Source),
				zap.Int("records", len(jobs)),
				zap.Duration("elapsed", time.Since(start)))
			return ds, nil
		}
	}

	ds := newDataset(l.fallbackJobs(), domain.SourceFallback)
	l.logger.Info("Loaded jobs dataset", zap.String("source", ds.Source), zap.Int("records", len(ds.Jobs)))
	return ds, nil
}

// findDataset returns the first CSV in lexical order whose header carries
// every required column, or "" when none does
func (l *Loader) findDataset(ctx context.Context) (string, error) {
	entries, err := os.ReadDir(l.config.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read dataset dir: %w", err)
	}

	// os.ReadDir sorts by filename
	for _, entry := range entries {
		if ctx.Err() != nil {
			l.logger.Warn("Dataset discovery timed out", zap.String("dir", l.config.Dir), zap.Error(ctx.Err()))
			return "", nil
		}
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		path := filepath.Join(l.config.Dir, entry.Name())
		ok, err := hasRequiredColumns(path)
		if err != nil {
			l.logger.Debug("Skipping unreadable dataset file", zap.String("file", path), zap.Error(err))
			continue
		}
		if ok {
			return path, nil
		}
	}
	return "", nil
}

func hasRequiredColumns(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return headerHasRequiredColumns(f)
}

// headerHasRequiredColumns reads at most maxHeaderBytes, so an unterminated
// quote in the first record cannot pull in the whole file
func headerHasRequiredColumns(r io.Reader) (bool, error) {
	header, err := readHeader(newCSVReader(io.LimitReader(r, maxHeaderBytes)))
	if err != nil {
		return false, err
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return false, nil
		}
	}
	return true, nil
}

func (l *Loader) parseFile(ctx context.Context, path string) ([]domain.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := newCSVReader(f)
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var jobs []domain.Job
	rowID := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowID+1, err)
		}

		rowID++
		row := make(domain.RawRow, len(header))
		for i, key := range header {
			if key != "" && i < len(record) {
				row[key] = record[i]
			}
		}

		if job, ok := l.normalizer.Normalize(row, rowID); ok {
			jobs = append(jobs, *job)
		}
	}

	return jobs, nil
}

func (l *Loader) fallbackJobs() []domain.Job {
	jobs := make([]domain.Job, 0, len(fallbackRows))
	for i, row := range fallbackRows {
		if job, ok := l.normalizer.Normalize(row, i+1); ok {
			jobs = append(jobs, *job)
		}
	}
	return jobs
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// readHeader reads the first record and returns normalized column keys
func readHeader(r *csv.Reader) ([]string, error) {
	record, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("empty dataset file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make([]string, len(record))
	for i, cell := range record {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		header[i] = normalizer.NormalizeHeader(cell)
	}
	return header, nil
}

func newDataset(jobs []domain.Job, source string) *Dataset {
	return &Dataset{
		Jobs:     jobs,
		Source:   source,
		LoadedAt: time.Now().UTC(),
		BuildID:  uuid.NewString(),
	}
}
