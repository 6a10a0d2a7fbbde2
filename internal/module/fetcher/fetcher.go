package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/common/dedup"
	"github.com/project-tktt/jobs-market/internal/common/extractor"
)

// Fingerprints remembers what was last fetched under each file name
type Fingerprints interface {
	Check(ctx context.Context, name, fingerprint string) (dedup.CheckResult, error)
	MarkSeen(ctx context.Context, name, fingerprint string) error
}

// Result summarizes a fetch run
type Result struct {
	Pages      int
	Links      int
	Downloaded int
	Skipped    int
	Failed     int
}

// Fetcher mirrors CSV datasets linked from index pages into a directory
type Fetcher struct {
	extractor    extractor.Extractor
	fingerprints Fingerprints
	dir          string
	logger       *zap.Logger
}

// NewFetcher creates a fetcher; fingerprints may be nil to always download
func NewFetcher(ext extractor.Extractor, fingerprints Fingerprints, dir string, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		extractor:    ext,
		fingerprints: fingerprints,
		dir:          dir,
		logger:       logger,
	}
}

// Run visits every index page and stores each CSV it links to. Failures of a
// single page or file are logged and counted.
func (f *Fetcher) Run(ctx context.Context, indexURLs []string) (Result, error) {
	var res Result

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return res, fmt.Errorf("create dataset dir: %w", err)
	}

	for _, indexURL := range indexURLs {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		links, err := f.extractor.ExtractLinks(ctx, indexURL)
		if err != nil {
			f.logger.Error("Failed to extract dataset links", zap.String("url", indexURL), zap.Error(err))
			res.Failed++
			continue
		}
		res.Pages++
		res.Links += len(links)

		f.logger.Info("Found dataset links", zap.String("url", indexURL), zap.Int("links", len(links)))

		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return res, err
			}

			stored, err := f.fetch(ctx, link)
			switch {
			case err != nil:
				f.logger.Error("Failed to fetch dataset", zap.String("url", link.URL), zap.Error(err))
				res.Failed++
			case stored:
				res.Downloaded++
			default:
				res.Skipped++
			}
		}
	}

	return res, nil
}

// fetch downloads link and writes it unless its content is unchanged
func (f *Fetcher) fetch(ctx context.Context, link extractor.Link) (bool, error) {
	start := time.Now()
	body, err := f.extractor.Download(ctx, link.URL)
	if err != nil {
		return false, err
	}

	fingerprint := dedup.Fingerprint(body)
	target := filepath.Join(f.dir, filepath.Base(link.Name))

	if f.fingerprints != nil {
		result, err := f.fingerprints.Check(ctx, link.Name, fingerprint)
		if err != nil {
			f.logger.Warn("Fingerprint check failed, downloading anyway", zap.String("file", link.Name), zap.Error(err))
		} else if result == dedup.ResultUnchanged && fileExists(target) {
			f.logger.Debug("Dataset unchanged", zap.String("file", link.Name))
			return false, nil
		}
	}

	if err := writeAtomic(target, body); err != nil {
		return false, err
	}

	if f.fingerprints != nil {
		if err := f.fingerprints.MarkSeen(ctx, link.Name, fingerprint); err != nil {
			f.logger.Warn("Failed to record fingerprint", zap.String("file", link.Name), zap.Error(err))
		}
	}

	f.logger.Info("Stored dataset",
		zap.String("file", target),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return true, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeAtomic writes through a temp file so readers never see a partial CSV
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename dataset: %w", err)
	}
	return nil
}
