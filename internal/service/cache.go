package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/cache"
	"github.com/project-tktt/jobs-market/internal/cache/memory"
	rediscache "github.com/project-tktt/jobs-market/internal/cache/redis"
	"github.com/project-tktt/jobs-market/internal/config"
)

// NewResponseCache builds the configured cache backend. An unreachable Redis
// degrades to the in-process cache.
func NewResponseCache(ctx context.Context, cfg config.CacheConfig, rc config.RedisConfig, logger *zap.Logger) (cache.Cache, error) {
	opts := cache.Options{
		DefaultTTL:    cfg.TTL,
		Prefix:        cfg.Prefix,
		MaxEntries:    cfg.MaxEntries,
		RedisAddr:     rc.Addr,
		RedisPassword: rc.Password,
		RedisDB:       rc.DB,
	}

	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return memory.New(opts), nil
	case "none", "off":
		return cache.Noop{}, nil
	case "redis":
		c := rediscache.New(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			logger.Warn("Redis cache unavailable, using in-memory cache",
				zap.String("addr", rc.Addr), zap.Error(err))
			c.Close()
			return memory.New(opts), nil
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
