package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/config"
	"github.com/project-tktt/jobs-market/internal/domain"
)

const clickhouseTable = `
	CREATE TABLE IF NOT EXISTS %s (
		id Int64,
		job_title String,
		salary_usd Nullable(Float64),
		salary_currency LowCardinality(String),
		experience_level LowCardinality(String),
		job_category LowCardinality(String),
		company_location LowCardinality(String),
		company_size LowCardinality(String),
		remote_ratio String,
		remote_type LowCardinality(String),
		required_skills Array(String),
		education_required LowCardinality(String),
		posted_date Nullable(DateTime64(3, 'UTC')),
		run_id String,
		indexed_at DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree(indexed_at)
	ORDER BY id
`

// ClickHouseIndexer appends jobs to a ReplacingMergeTree table; the newest
// indexed_at wins per id once parts merge
type ClickHouseIndexer struct {
	conn   clickhouse.Conn
	table  string
	logger *zap.Logger
}

func NewClickHouseIndexer(ctx context.Context, cfg config.ClickHouseConfig, logger *zap.Logger) (*ClickHouseIndexer, error) {
	if err := validIdentifier(cfg.Table); err != nil {
		return nil, fmt.Errorf("table name: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{cfg.Addr},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	idx := &ClickHouseIndexer{conn: conn, table: cfg.Table, logger: logger}
	if err := conn.Exec(ctx, idx.createTableQuery()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return idx, nil
}

func (i *ClickHouseIndexer) Name() string {
	return "clickhouse"
}

func (i *ClickHouseIndexer) createTableQuery() string {
	return fmt.Sprintf(clickhouseTable, i.table)
}

func (i *ClickHouseIndexer) insertQuery() string {
	return fmt.Sprintf("INSERT INTO %s", i.table)
}

// clickhouseRow orders doc's values as the table's columns
func clickhouseRow(doc Document) []any {
	return []any{
		int64(doc.ID),
		doc.JobTitle,
		doc.SalaryUSD,
		doc.SalaryCurrency,
		doc.ExperienceLevel,
		doc.JobCategory,
		doc.CompanyLocation,
		doc.CompanySize,
		doc.RemoteRatio,
		doc.RemoteType,
		doc.RequiredSkills,
		doc.EducationRequired,
		doc.PostedDate,
		doc.RunID,
		doc.IndexedAt,
	}
}

func (i *ClickHouseIndexer) BulkIndex(ctx context.Context, runID string, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	batch, err := i.conn.PrepareBatch(ctx, i.insertQuery())
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	now := time.Now()
	for n := range jobs {
		doc := NewDocument(&jobs[n], runID, now)
		if err := batch.Append(clickhouseRow(doc)...); err != nil {
			batch.Abort()
			return fmt.Errorf("append job %d: %w", doc.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	i.logger.Debug("Sent ClickHouse batch", zap.String("table", i.table), zap.Int("records", len(jobs)))
	return nil
}

func (i *ClickHouseIndexer) Close() error {
	return i.conn.Close()
}
