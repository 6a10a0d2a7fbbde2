package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("key not found in cache")
	ErrClosed   = errors.New("cache is closed")
)

// Cache stores encoded response payloads with a time to live
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	// Used when Set is called with a zero ttl
	DefaultTTL time.Duration

	// Upper bound on in-process entries; zero means unbounded
	MaxEntries int

	// Namespace for shared backends
	Prefix string

	RedisAddr string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL: 10 * time.Minute,
		Prefix:     "jobs:cache",
	}
}

// Noop never stores anything; every Get misses
type Noop struct{}

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Clear(context.Context) error { return nil }

func (Noop) Close() error { return nil }
