package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-tktt/jobs-market/internal/config"
)

func TestClickHouseQueries(t *testing.T) {
	idx := &ClickHouseIndexer{table: "job_postings"}

	assert.Contains(t, idx.createTableQuery(), "CREATE TABLE IF NOT EXISTS job_postings")
	assert.Contains(t, idx.createTableQuery(), "ReplacingMergeTree(indexed_at)")
	assert.Equal(t, "INSERT INTO job_postings", idx.insertQuery())
}

func TestClickHouseRowMatchesColumns(t *testing.T) {
	jobs := sampleJobs()
	doc := NewDocument(&jobs[0], "run-1", time.Now())

	row := clickhouseRow(doc)
	require.Len(t, row, len(columns))
	assert.Equal(t, int64(1), row[0])
	assert.Equal(t, []string{"Python", "SQL"}, row[10])
	assert.Equal(t, "run-1", row[13])
}

func TestClickHouseRejectsBadTable(t *testing.T) {
	_, err := NewClickHouseIndexer(context.Background(), config.ClickHouseConfig{Table: "drop table"}, nil)
	assert.Error(t, err)
}
