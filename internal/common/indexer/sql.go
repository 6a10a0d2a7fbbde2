package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/project-tktt/jobs-market/internal/domain"
)

// Supported SQL dialects
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

var columns = []string{
	"id", "job_title", "salary_usd", "salary_currency", "experience_level",
	"job_category", "company_location", "company_size", "remote_ratio", "remote_type",
	"required_skills", "education_required", "posted_date", "run_id", "indexed_at",
}

type dialect struct {
	driver      string
	createTable string
	placeholder func(n int) string
	onConflict  func(cols []string) string
	skills      func(skills []string) any
	timestamp   func(t *time.Time) any
}

var dialects = map[string]dialect{
	DialectPostgres: {
		driver: "postgres",
		createTable: `
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY,
				job_title TEXT NOT NULL,
				salary_usd DOUBLE PRECISION,
				salary_currency TEXT,
				experience_level TEXT,
				job_category TEXT,
				company_location TEXT,
				company_size TEXT,
				remote_ratio TEXT,
				remote_type TEXT,
				required_skills TEXT[],
				education_required TEXT,
				posted_date TIMESTAMPTZ,
				run_id TEXT,
				indexed_at TIMESTAMPTZ
			)`,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		onConflict:  excludedUpsert,
		skills:      func(s []string) any { return pq.Array(s) },
		timestamp:   nullableTime,
	},
	DialectMySQL: {
		driver: "mysql",
		createTable: `
			CREATE TABLE IF NOT EXISTS %s (
				id INT PRIMARY KEY,
				job_title VARCHAR(512) NOT NULL,
				salary_usd DOUBLE NULL,
				salary_currency VARCHAR(16),
				experience_level VARCHAR(64),
				job_category VARCHAR(255),
				company_location VARCHAR(255),
				company_size VARCHAR(64),
				remote_ratio VARCHAR(64),
				remote_type VARCHAR(16),
				required_skills TEXT,
				education_required VARCHAR(128),
				posted_date DATETIME NULL,
				run_id VARCHAR(64),
				indexed_at DATETIME
			)`,
		placeholder: func(int) string { return "?" },
		onConflict: func(cols []string) string {
			sets := make([]string, 0, len(cols))
			for _, c := range cols[1:] {
				sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
			}
			return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
		},
		skills:    joinSkills,
		timestamp: nullableTime,
	},
	DialectSQLite: {
		driver: "sqlite",
		createTable: `
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY,
				job_title TEXT NOT NULL,
				salary_usd REAL,
				salary_currency TEXT,
				experience_level TEXT,
				job_category TEXT,
				company_location TEXT,
				company_size TEXT,
				remote_ratio TEXT,
				remote_type TEXT,
				required_skills TEXT,
				education_required TEXT,
				posted_date TEXT,
				run_id TEXT,
				indexed_at TEXT
			)`,
		placeholder: func(int) string { return "?" },
		onConflict:  excludedUpsert,
		skills:      joinSkills,
		timestamp: func(t *time.Time) any {
			if t == nil {
				return nil
			}
			return t.UTC().Format(domain.ISOTimestamp)
		},
	},
}

func excludedUpsert(cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func joinSkills(s []string) any {
	return strings.Join(s, ",")
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// SQLIndexer upserts jobs into a relational table
type SQLIndexer struct {
	db        *sql.DB
	dialect   dialect
	name      string
	tableName string
	logger    *zap.Logger
}

// NewSQLIndexer opens and pings the database, then ensures the table exists
func NewSQLIndexer(ctx context.Context, dialectName, dsn, tableName string, logger *zap.Logger) (*SQLIndexer, error) {
	d, ok := dialects[dialectName]
	if !ok {
		return nil, fmt.Errorf("unknown sql dialect %q", dialectName)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", dialectName, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialectName, err)
	}

	idx, err := NewSQLIndexerWithDB(ctx, db, dialectName, tableName, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// NewSQLIndexerWithDB wraps an open handle; Close closes it
func NewSQLIndexerWithDB(ctx context.Context, db *sql.DB, dialectName, tableName string, logger *zap.Logger) (*SQLIndexer, error) {
	d, ok := dialects[dialectName]
	if !ok {
		return nil, fmt.Errorf("unknown sql dialect %q", dialectName)
	}
	if err := validIdentifier(tableName); err != nil {
		return nil, fmt.Errorf("table name: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	idx := &SQLIndexer{
		db:        db,
		dialect:   d,
		name:      dialectName,
		tableName: tableName,
		logger:    logger,
	}

	if err := idx.ensureTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return idx, nil
}

func (i *SQLIndexer) Name() string {
	return i.name
}

func (i *SQLIndexer) ensureTable(ctx context.Context) error {
	_, err := i.db.ExecContext(ctx, fmt.Sprintf(i.dialect.createTable, i.tableName))
	return err
}

func (i *SQLIndexer) upsertQuery() string {
	placeholders := make([]string, len(columns))
	for n := range columns {
		placeholders[n] = i.dialect.placeholder(n + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s",
		i.tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		i.dialect.onConflict(columns),
	)
}

// BulkIndex upserts jobs in one transaction. Rows that fail are logged and
// skipped; the batch reports how many were lost.
func (i *SQLIndexer) BulkIndex(ctx context.Context, runID string, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, i.upsertQuery())
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	failed := 0
	for n := range jobs {
		doc := NewDocument(&jobs[n], runID, now)
		_, err := stmt.ExecContext(ctx,
			doc.ID, doc.JobTitle, nullableFloat(doc.SalaryUSD), doc.SalaryCurrency, doc.ExperienceLevel,
			doc.JobCategory, doc.CompanyLocation, doc.CompanySize, doc.RemoteRatio, doc.RemoteType,
			i.dialect.skills(doc.RequiredSkills), doc.EducationRequired, i.dialect.timestamp(doc.PostedDate),
			doc.RunID, i.dialect.timestamp(&doc.IndexedAt),
		)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			i.logger.Warn("Error indexing job", zap.String("backend", i.name), zap.Int("id", doc.ID), zap.Error(err))
			failed++
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed to index", failed, len(jobs))
	}
	return nil
}

// Close closes the database connection
func (i *SQLIndexer) Close() error {
	return i.db.Close()
}
