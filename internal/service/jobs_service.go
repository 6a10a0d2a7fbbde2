package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/cache"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/market"
	"github.com/project-tktt/jobs-market/internal/telemetry"
)

// Loader provides the canonical dataset
type Loader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// JobsService owns the dataset loader and the response cache and answers
// every jobs-market query as encoded JSON
type JobsService struct {
	loader Loader
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
	tracer trace.Tracer
}

// NewJobsService wires a service; a nil cache disables caching
func NewJobsService(loader Loader, c cache.Cache, ttl time.Duration, logger *zap.Logger) *JobsService {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobsService{
		loader: loader,
		cache:  c,
		ttl:    ttl,
		logger: logger,
		tracer: telemetry.GetTracer("jobs-market/service"),
	}
}

func (s *JobsService) Meta(ctx context.Context) ([]byte, error) {
	return s.respond(ctx, "meta", "", func(ds *dataset.Dataset) any {
		return market.Meta(ds.Jobs, ds.Source)
	})
}

// Suggestions answers an autocomplete query. An empty query is answered
// without touching the dataset.
func (s *JobsService) Suggestions(ctx context.Context, q url.Values) ([]byte, error) {
	sq := market.SuggestionQueryFromQuery(q)
	if sq.Q == "" {
		return encode(market.SuggestionsResponse{Query: "", Suggestions: []market.Suggestion{}})
	}

	key := url.Values{"q": {sq.Q}, "limit": {strconv.Itoa(sq.Limit)}}.Encode()
	return s.respond(ctx, "suggestions", key, func(ds *dataset.Dataset) any {
		return market.SuggestionsResponse{
			Query:       sq.Q,
			Suggestions: market.Suggest(ds.Jobs, sq.Q, sq.Limit),
			DataSource:  ds.Source,
		}
	})
}

func (s *JobsService) Insights(ctx context.Context, q url.Values) ([]byte, error) {
	f := market.FilterFromQuery(q)
	return s.respond(ctx, "insights", q.Encode(), func(ds *dataset.Dataset) any {
		return market.Insights(ds.Jobs, f, ds.Source)
	})
}

func (s *JobsService) Listings(ctx context.Context, q url.Values) ([]byte, error) {
	f, page := market.FilterFromQuery(q), market.PageFromQuery(q)
	return s.respond(ctx, "listings", q.Encode(), func(ds *dataset.Dataset) any {
		return market.Listings(ds.Jobs, f, page, ds.Source)
	})
}

func (s *JobsService) SalaryByCategory(ctx context.Context, q url.Values) ([]byte, error) {
	f := market.FilterFromQuery(q)
	return s.respond(ctx, "salary-by-category", q.Encode(), func(ds *dataset.Dataset) any {
		return market.SalaryByCategory(ds.Jobs, f, ds.Source)
	})
}

func (s *JobsService) RemoteTrends(ctx context.Context, q url.Values) ([]byte, error) {
	f := market.FilterFromQuery(q)
	return s.respond(ctx, "remote-trends", q.Encode(), func(ds *dataset.Dataset) any {
		return market.RemoteTrends(ds.Jobs, f, ds.Source)
	})
}

func (s *JobsService) CommonSkills(ctx context.Context, q url.Values) ([]byte, error) {
	f, limit := market.FilterFromQuery(q), market.SkillsLimitFromQuery(q)
	return s.respond(ctx, "common-skills", q.Encode(), func(ds *dataset.Dataset) any {
		return market.CommonSkills(ds.Jobs, f, limit, ds.Source)
	})
}

func (s *JobsService) CompanySizeImpact(ctx context.Context, q url.Values) ([]byte, error) {
	f := market.FilterFromQuery(q)
	return s.respond(ctx, "company-size-impact", q.Encode(), func(ds *dataset.Dataset) any {
		return market.CompanySizeImpactOf(ds.Jobs, f, ds.Source)
	})
}

func (s *JobsService) GeographicSalary(ctx context.Context, q url.Values) ([]byte, error) {
	f, limit := market.FilterFromQuery(q), market.GeoLimitFromQuery(q)
	return s.respond(ctx, "geographic-salary", q.Encode(), func(ds *dataset.Dataset) any {
		return market.GeographicSalary(ds.Jobs, f, limit, ds.Source)
	})
}

func (s *JobsService) MarketEvolution(ctx context.Context, q url.Values) ([]byte, error) {
	f := market.FilterFromQuery(q)
	return s.respond(ctx, "market-evolution", q.Encode(), func(ds *dataset.Dataset) any {
		return market.MarketEvolution(ds.Jobs, f, ds.Source)
	})
}

// respond serves endpoint from the cache or computes, encodes and stores it.
// Cache failures are logged and treated as a miss.
func (s *JobsService) respond(ctx context.Context, endpoint, query string, compute func(ds *dataset.Dataset) any) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "JobsService."+endpoint)
	defer span.End()

	key := endpoint + ":" + query
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		span.SetAttributes(telemetry.String("cache", "hit"))
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("Response cache read failed", zap.String("key", key), zap.Error(err))
	}
	span.SetAttributes(telemetry.String("cache", "miss"))

	ds, err := s.loader.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load dataset")
		return nil, apperrors.Internal("load jobs dataset", err)
	}
	span.SetAttributes(telemetry.String("source", ds.Source), telemetry.Int("records", len(ds.Jobs)))

	payload, err := encode(compute(ds))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.logger.Warn("Response cache write failed", zap.String("key", key), zap.Error(err))
	}
	return payload, nil
}

func encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Internal("encode response", err)
	}
	return b, nil
}
