package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/dataset"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	mu     sync.Mutex
	msgs   []published
	err    error
	closed bool

	handler nats.MsgHandler
	queue   string
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, published{subject: subject, data: data})
	return nil
}

func (c *fakeConn) Close() { c.closed = true }

func (c *fakeConn) QueueSubscribe(subject, queue string, cb nats.MsgHandler) (*nats.Subscription, error) {
	c.queue = queue
	c.handler = cb
	return nil, nil
}

func TestLoaderPublishesDatasetLoaded(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "", zap.NewNop())
	loader := dataset.NewLoader(dataset.Config{Dir: t.TempDir()}, pub, zap.NewNop())

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	_, err = loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, conn.msgs, 1)
	assert.Equal(t, DefaultSubject, conn.msgs[0].subject)

	var event DatasetLoadedEvent
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &event))
	assert.Equal(t, ds.BuildID, event.BuildID)
	assert.Equal(t, "sample:fallback", event.Source)
	assert.Equal(t, 15, event.Records)
	assert.True(t, ds.LoadedAt.Equal(event.LoadedAt))

	require.NoError(t, pub.Close())
	assert.True(t, conn.closed)
}

func TestPublishFailureIsUnavailable(t *testing.T) {
	conn := &fakeConn{err: nats.ErrConnectionClosed}
	pub := NewPublisher(conn, "custom.subject", nil)

	err := pub.DatasetLoaded(context.Background(), &dataset.Dataset{BuildID: "b1", Source: "csv:jobs.csv"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeUnavailable, apperrors.TypeOf(err))
	assert.ErrorIs(t, err, nats.ErrConnectionClosed)
}

func TestSubscriberDecodesEvents(t *testing.T) {
	conn := &fakeConn{}
	var got []DatasetLoadedEvent
	sub := NewSubscriber(conn, "", "indexer", func(_ context.Context, e DatasetLoadedEvent) error {
		got = append(got, e)
		return nil
	}, zap.NewNop())
	require.NoError(t, sub.Start())
	assert.Equal(t, "indexer", conn.queue)

	data, err := json.Marshal(DatasetLoadedEvent{BuildID: "b2", Source: "csv:jobs.csv", Records: 42, LoadedAt: time.Now().UTC()})
	require.NoError(t, err)

	conn.handler(&nats.Msg{Subject: DefaultSubject, Data: []byte("not json")})
	conn.handler(&nats.Msg{Subject: DefaultSubject, Data: data})

	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].BuildID)
	assert.Equal(t, 42, got[0].Records)
	assert.NoError(t, sub.Stop())
}

func TestSubscriberSurvivesHandlerError(t *testing.T) {
	conn := &fakeConn{}
	calls := 0
	sub := NewSubscriber(conn, "s", "q", func(context.Context, DatasetLoadedEvent) error {
		calls++
		return errors.New("index unavailable")
	}, nil)
	require.NoError(t, sub.Start())

	conn.handler(&nats.Msg{Data: []byte(`{"build_id":"x"}`)})
	conn.handler(&nats.Msg{Data: []byte(`{"build_id":"y"}`)})
	assert.Equal(t, 2, calls)
}
