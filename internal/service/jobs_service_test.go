package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/cache"
	"github.com/project-tktt/jobs-market/internal/cache/memory"
	rediscache "github.com/project-tktt/jobs-market/internal/cache/redis"
	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/dataset"
)

type countingLoader struct {
	inner *dataset.Loader
	calls atomic.Int32
	err   error
}

func (l *countingLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.inner.Load(ctx)
}

func newFallbackLoader(t *testing.T) *countingLoader {
	t.Helper()
	inner := dataset.NewLoader(dataset.Config{Dir: t.TempDir()}, nil, zap.NewNop())
	return &countingLoader{inner: inner}
}

type brokenCache struct{}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}
func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}
func (brokenCache) Delete(context.Context, string) error { return nil }
func (brokenCache) Clear(context.Context) error          { return nil }
func (brokenCache) Close() error                         { return nil }

func TestMetaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewJobsService(newFallbackLoader(t), cache.Noop{}, time.Minute, nil)

	first, err := svc.Meta(ctx)
	require.NoError(t, err)
	second, err := svc.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var meta struct {
		TotalPostings int    `json:"totalPostings"`
		DataSource    string `json:"dataSource"`
	}
	require.NoError(t, json.Unmarshal(first, &meta))
	assert.Equal(t, 15, meta.TotalPostings)
	assert.Equal(t, "sample:fallback", meta.DataSource)
}

func TestCacheHitSkipsLoader(t *testing.T) {
	ctx := context.Background()
	loader := newFallbackLoader(t)
	svc := NewJobsService(loader, memory.New(cache.DefaultOptions()), time.Minute, nil)

	q := url.Values{"experienceLevel": {"Senior"}}
	first, err := svc.Insights(ctx, q)
	require.NoError(t, err)
	second, err := svc.Insights(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	ctx := context.Background()
	c := memory.New(cache.DefaultOptions())
	svc := NewJobsService(newFallbackLoader(t), c, time.Minute, nil)

	_, err := svc.Listings(ctx, url.Values{"page": {"2"}, "limit": {"10"}})
	require.NoError(t, err)

	_, err = c.Get(ctx, "listings:limit=10&page=2")
	assert.NoError(t, err)
}

func TestEmptySuggestionQueryDoesNotLoad(t *testing.T) {
	loader := newFallbackLoader(t)
	svc := NewJobsService(loader, cache.Noop{}, time.Minute, nil)

	body, err := svc.Suggestions(context.Background(), url.Values{"q": {"   "}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"","suggestions":[]}`, string(body))
	assert.Equal(t, int32(0), loader.calls.Load())
}

func TestSuggestionsCarryDataSource(t *testing.T) {
	svc := NewJobsService(newFallbackLoader(t), cache.Noop{}, time.Minute, nil)

	body, err := svc.Suggestions(context.Background(), url.Values{"q": {"eng"}, "limit": {"3"}})
	require.NoError(t, err)

	var resp struct {
		Query       string `json:"query"`
		Suggestions []struct {
			Label string `json:"label"`
			Type  string `json:"type"`
		} `json:"suggestions"`
		DataSource string `json:"dataSource"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "eng", resp.Query)
	assert.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "sample:fallback", resp.DataSource)
}

func TestSuggestionsEchoTheCallersQuery(t *testing.T) {
	ctx := context.Background()
	c := memory.New(cache.DefaultOptions())
	t.Cleanup(func() { c.Close() })
	svc := NewJobsService(newFallbackLoader(t), c, time.Minute, nil)

	for _, q := range []string{"AI", "ai", "AI"} {
		body, err := svc.Suggestions(ctx, url.Values{"q": {q}})
		require.NoError(t, err)

		var resp struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, q, resp.Query)
	}
}

func TestCacheFailureIsAMiss(t *testing.T) {
	loader := newFallbackLoader(t)
	svc := NewJobsService(loader, brokenCache{}, time.Minute, nil)

	body, err := svc.RemoteTrends(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"trends"`)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestLoaderFailureIsInternal(t *testing.T) {
	loader := &countingLoader{err: errors.New("disk gone")}
	svc := NewJobsService(loader, cache.Noop{}, time.Minute, nil)

	_, err := svc.MarketEvolution(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeInternal, apperrors.TypeOf(err))
	assert.ErrorIs(t, err, loader.err)
}

func TestNewResponseCacheBackends(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	c, err := NewResponseCache(ctx, config.CacheConfig{Backend: "memory"}, config.RedisConfig{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &memory.Cache{}, c)

	c, err = NewResponseCache(ctx, config.CacheConfig{Backend: "none"}, config.RedisConfig{}, logger)
	require.NoError(t, err)
	assert.IsType(t, cache.Noop{}, c)

	mr := miniredis.RunT(t)
	c, err = NewResponseCache(ctx, config.CacheConfig{Backend: "redis", Prefix: "t"}, config.RedisConfig{Addr: mr.Addr()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &rediscache.Cache{}, c)
	c.Close()

	_, err = NewResponseCache(ctx, config.CacheConfig{Backend: "memcached"}, config.RedisConfig{}, logger)
	assert.Error(t, err)
}
