package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/project-tktt/jobs-market/internal/cache"
)

// Cache is an in-process TTL cache. A background loop evicts expired entries
// and, once MaxEntries is reached, the least recently used ones.
type Cache struct {
	items  *ttlcache.Cache[string, []byte]
	closed atomic.Bool
}

func New(opts cache.Options) *Cache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = cache.DefaultOptions().DefaultTTL
	}

	ttlOpts := []ttlcache.Option[string, []byte]{
		ttlcache.WithTTL[string, []byte](opts.DefaultTTL),
		// A hit must not extend the entry's lifetime
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	}
	if opts.MaxEntries > 0 {
		ttlOpts = append(ttlOpts, ttlcache.WithCapacity[string, []byte](uint64(opts.MaxEntries)))
	}

	c := &Cache{items: ttlcache.New[string, []byte](ttlOpts...)}
	go c.items.Start()
	return c
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return cache.ErrClosed
	}
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	c.items.Set(key, value, ttl)
	return nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, cache.ErrClosed
	}
	item := c.items.Get(key)
	if item == nil {
		return nil, cache.ErrNotFound
	}
	return item.Value(), nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.items.DeleteAll()
	return nil
}

// Len counts stored entries, including expired ones the eviction loop has
// not reached yet
func (c *Cache) Len() int {
	return c.items.Len()
}

// Close stops the eviction loop and drops every entry
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.items.Stop()
	c.items.DeleteAll()
	return nil
}
