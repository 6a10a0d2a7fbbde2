package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDedup(t *testing.T) (*Deduplicator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDeduplicator(client, "", time.Hour), mr
}

func TestCheckLifecycle(t *testing.T) {
	ctx := context.Background()
	d, mr := newTestDedup(t)

	v1 := Fingerprint([]byte("job_title,salary_usd\nA,1\n"))
	v2 := Fingerprint([]byte("job_title,salary_usd\nA,2\n"))

	res, err := d.Check(ctx, "jobs.csv", v1)
	require.NoError(t, err)
	assert.Equal(t, ResultNew, res)

	require.NoError(t, d.MarkSeen(ctx, "jobs.csv", v1))
	assert.True(t, mr.Exists("jobs:dataset:seen:jobs.csv"))
	assert.Equal(t, time.Hour, mr.TTL("jobs:dataset:seen:jobs.csv"))

	res, err = d.Check(ctx, "jobs.csv", v1)
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, res)

	res, err = d.Check(ctx, "jobs.csv", v2)
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)
	assert.Equal(t, "updated", res.String())

	require.NoError(t, d.Forget(ctx, "jobs.csv"))
	res, err = d.Check(ctx, "jobs.csv", v1)
	require.NoError(t, err)
	assert.Equal(t, ResultNew, res)
}

func TestFingerprintIsFullSHA256(t *testing.T) {
	assert.Len(t, Fingerprint(nil), 64)
	assert.Equal(t, Fingerprint([]byte("a")), Fingerprint([]byte("a")))
	assert.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
}

func TestCheckBackendError(t *testing.T) {
	ctx := context.Background()
	d, mr := newTestDedup(t)
	require.NoError(t, d.client.Ping(ctx).Err())

	mr.SetError("ERR server unavailable")
	_, err := d.Check(ctx, "jobs.csv", "x")
	assert.Error(t, err)
}
