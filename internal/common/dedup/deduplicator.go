package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator remembers the fingerprint of every dataset file fetched
type Deduplicator struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewDeduplicator creates a new Redis-based deduplicator
func NewDeduplicator(client *redis.Client, prefix string, defaultTTL time.Duration) *Deduplicator {
	if prefix == "" {
		prefix = "jobs:dataset:seen"
	}
	if defaultTTL == 0 {
		defaultTTL = 24 * time.Hour * 30 // 30 days default
	}
	return &Deduplicator{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// CheckResult represents the result of checking a dataset
type CheckResult int

const (
	// ResultNew - file has never been fetched
	ResultNew CheckResult = iota
	// ResultUpdated - file was fetched before with different content
	ResultUpdated
	// ResultUnchanged - file was fetched before with the same content
	ResultUnchanged
)

func (r CheckResult) String() string {
	switch r {
	case ResultNew:
		return "new"
	case ResultUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Check compares fingerprint against the one stored for name
func (d *Deduplicator) Check(ctx context.Context, name, fingerprint string) (CheckResult, error) {
	stored, err := d.client.Get(ctx, d.makeKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return ResultNew, nil
	}
	if err != nil {
		return ResultNew, fmt.Errorf("redis get: %w", err)
	}

	if stored != fingerprint {
		return ResultUpdated, nil
	}
	return ResultUnchanged, nil
}

// MarkSeen stores fingerprint for name with the default TTL
func (d *Deduplicator) MarkSeen(ctx context.Context, name, fingerprint string) error {
	if err := d.client.Set(ctx, d.makeKey(name), fingerprint, d.defaultTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Forget drops the stored fingerprint so the next fetch is treated as new
func (d *Deduplicator) Forget(ctx context.Context, name string) error {
	if err := d.client.Del(ctx, d.makeKey(name)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (d *Deduplicator) makeKey(name string) string {
	return fmt.Sprintf("%s:%s", d.prefix, name)
}

// Fingerprint returns the hex SHA-256 of content
func Fingerprint(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
