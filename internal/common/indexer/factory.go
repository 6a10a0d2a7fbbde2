package indexer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/config"
)

// New opens the named backend from cfg
func New(ctx context.Context, backend string, cfg *config.Config, logger *zap.Logger) (Indexer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case DialectPostgres:
		return NewSQLIndexer(ctx, DialectPostgres, cfg.Postgres.ConnectionString, cfg.Postgres.TableName, logger)
	case DialectMySQL:
		return NewSQLIndexer(ctx, DialectMySQL, cfg.MySQL.DSN, cfg.MySQL.TableName, logger)
	case DialectSQLite:
		return NewSQLIndexer(ctx, DialectSQLite, cfg.SQLite.Path, cfg.SQLite.TableName, logger)
	case "elasticsearch", "es":
		es, err := NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index, logger)
		if err != nil {
			return nil, err
		}
		if err := es.EnsureIndex(ctx); err != nil {
			return nil, fmt.Errorf("ensure index: %w", err)
		}
		return es, nil
	case "clickhouse":
		return NewClickHouseIndexer(ctx, cfg.ClickHouse, logger)
	default:
		return nil, fmt.Errorf("unknown indexer backend %q", backend)
	}
}
