package extractor

import (
	"context"
	"time"
)

// Link is a downloadable dataset discovered on an index page
type Link struct {
	URL  string
	Name string // base file name, used as the local file name
}

// Extractor discovers and downloads CSV datasets
type Extractor interface {
	// ExtractLinks visits an HTML index page and returns its CSV links
	ExtractLinks(ctx context.Context, indexURL string) ([]Link, error)

	// Download fetches a single dataset body
	Download(ctx context.Context, rawURL string) ([]byte, error)

	// Name returns the name of this extractor
	Name() string
}

// ExtractorConfig holds common configuration for extractors
type ExtractorConfig struct {
	UserAgent    string
	RequestDelay time.Duration
	// Bodies larger than this are rejected; 0 means unlimited
	MaxBodyBytes int
}
