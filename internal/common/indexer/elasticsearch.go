package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/domain"
)

const jobsMapping = `{
	"settings": {
		"analysis": {
			"analyzer": {
				"folding_analyzer": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "integer"},
			"job_title": {
				"type": "text",
				"analyzer": "folding_analyzer",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"salary_usd": {"type": "double"},
			"salary_currency": {"type": "keyword"},
			"experience_level": {"type": "keyword"},
			"job_category": {"type": "keyword"},
			"company_location": {"type": "keyword"},
			"company_size": {"type": "keyword"},
			"remote_ratio": {"type": "keyword"},
			"remote_type": {"type": "keyword"},
			"required_skills": {"type": "keyword"},
			"education_required": {"type": "keyword"},
			"posted_date": {"type": "date"},
			"run_id": {"type": "keyword"},
			"indexed_at": {"type": "date"}
		}
	}
}`

// ElasticsearchIndexer indexes jobs to Elasticsearch
type ElasticsearchIndexer struct {
	client    *elasticsearch.Client
	indexName string
	logger    *zap.Logger
}

// NewElasticsearchIndexer creates a new Elasticsearch indexer
func NewElasticsearchIndexer(addresses []string, indexName string, logger *zap.Logger) (*ElasticsearchIndexer, error) {
	if err := validIdentifier(strings.ReplaceAll(indexName, "-", "_")); err != nil {
		return nil, fmt.Errorf("index name: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	// Check connection
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ElasticsearchIndexer{
		client:    client,
		indexName: strings.ToLower(indexName),
		logger:    logger,
	}, nil
}

func (i *ElasticsearchIndexer) Name() string {
	return "elasticsearch"
}

// EnsureIndex creates the index with its mapping if it doesn't exist
func (i *ElasticsearchIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(strings.NewReader(jobsMapping)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}

	i.logger.Info("Created Elasticsearch index", zap.String("index", i.indexName))
	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// BulkIndex indexes jobs with their ID as document ID, so reruns overwrite
func (i *ElasticsearchIndexer) BulkIndex(ctx context.Context, runID string, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	now := time.Now()

	for n := range jobs {
		doc := NewDocument(&jobs[n], runID, now)

		meta := map[string]any{
			"index": map[string]any{
				"_index": i.indexName,
				"_id":    strconv.Itoa(doc.ID),
			},
		}
		metaBytes, _ := json.Marshal(meta)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			i.logger.Warn("Marshal job failed", zap.Int("id", doc.ID), zap.Error(err))
			continue
		}

		buf.Write(metaBytes)
		buf.WriteByte('\n')
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := i.client.Bulk(bytes.NewReader(buf.Bytes()), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}

	if !bulkRes.Errors {
		return nil
	}

	failed := 0
	for _, item := range bulkRes.Items {
		if item.Index.Status >= 400 {
			failed++
			i.logger.Warn("Bulk index error",
				zap.String("id", item.Index.ID),
				zap.String("type", item.Index.Error.Type),
				zap.String("reason", item.Index.Error.Reason))
		}
	}
	return fmt.Errorf("%d of %d jobs failed to index", failed, len(jobs))
}

// Close is a no-op; the client holds no persistent resources
func (i *ElasticsearchIndexer) Close() error {
	return nil
}
