package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// SubscribeConn is the part of *nats.Conn the subscriber needs
type SubscribeConn interface {
	QueueSubscribe(subject, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// HandlerFunc reacts to a dataset build
type HandlerFunc func(ctx context.Context, event DatasetLoadedEvent) error

// Subscriber delivers dataset events to a handler
type Subscriber struct {
	conn    SubscribeConn
	subject string
	queue   string
	handle  HandlerFunc
	logger  *zap.Logger
	sub     *nats.Subscription
}

func NewSubscriber(conn SubscribeConn, subject, queue string, handle HandlerFunc, logger *zap.Logger) *Subscriber {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{
		conn:    conn,
		subject: subject,
		queue:   queue,
		handle:  handle,
		logger:  logger,
	}
}

// Start registers the queue subscription
func (s *Subscriber) Start() error {
	sub, err := s.conn.QueueSubscribe(s.subject, s.queue, s.handleMsg)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.subject, err)
	}
	s.sub = sub
	s.logger.Info("Registered NATS subscription",
		zap.String("subject", s.subject),
		zap.String("queue", s.queue))
	return nil
}

func (s *Subscriber) Stop() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Unsubscribe()
}

func (s *Subscriber) handleMsg(msg *nats.Msg) {
	ctx, span := tracer.Start(context.Background(), "HandleDatasetLoaded")
	defer span.End()

	var event DatasetLoadedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Warn("Malformed dataset event", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}

	if err := s.handle(ctx, event); err != nil {
		span.RecordError(err)
		s.logger.Error("Failed to handle dataset event",
			zap.String("build_id", event.BuildID),
			zap.Error(err))
		return
	}

	s.logger.Info("Handled dataset event",
		zap.String("build_id", event.BuildID),
		zap.Int("records", event.Records))
}
