package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/telemetry"
)

const DefaultSubject = "jobs.dataset.loaded"

// DatasetLoadedEvent is published once per dataset build
type DatasetLoadedEvent struct {
	BuildID  string    `json:"build_id"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
	Close()
}

var tracer = telemetry.GetTracer("jobs-market/events")

// Publisher announces dataset builds on NATS
type Publisher struct {
	conn    Conn
	subject string
	logger  *zap.Logger
}

// Connect dials NATS with reconnects enabled
func Connect(cfg config.NATSConfig, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(cfg.ConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// NewPublisher creates a publisher on an open connection
func NewPublisher(conn Conn, subject string, logger *zap.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}
}

// DatasetLoaded publishes ds as a DatasetLoadedEvent
func (p *Publisher) DatasetLoaded(ctx context.Context, ds *dataset.Dataset) error {
	_, span := tracer.Start(ctx, "PublishDatasetLoaded")
	defer span.End()

	event := DatasetLoadedEvent{
		BuildID:  ds.BuildID,
		Source:   ds.Source,
		Records:  len(ds.Jobs),
		LoadedAt: ds.LoadedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("marshal dataset event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", p.subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("Failed to publish dataset event",
			zap.String("build_id", event.BuildID),
			zap.Error(err))
		return apperrors.Unavailable("publish dataset event", err)
	}

	p.logger.Debug("Published dataset event",
		zap.String("build_id", event.BuildID),
		zap.String("source", event.Source),
		zap.Int("records", event.Records))
	return nil
}

func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
