package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/service"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// JobsHandler adapts JobsService to HTTP
type JobsHandler struct {
	svc     *service.JobsService
	logger  *zap.Logger
	started time.Time
}

func NewJobsHandler(svc *service.JobsService, logger *zap.Logger) *JobsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobsHandler{svc: svc, logger: logger, started: time.Now()}
}

type queryFunc func(ctx context.Context, q url.Values) ([]byte, error)

func (h *JobsHandler) serve(name string, fn queryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := fn(r.Context(), r.URL.Query())
		if err != nil {
			h.writeError(w, name, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func (h *JobsHandler) writeError(w http.ResponseWriter, endpoint string, err error) {
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("type", string(apperrors.TypeOf(err))),
		zap.Error(err),
	}
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		fields = append(fields, zap.ByteString("stack", de.StackTrace()))
	}
	h.logger.Error("Request failed", fields...)

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *JobsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.started).Seconds(),
	})
}

// Meta godoc
// @Summary Dataset facets
// @Description Totals and the distinct experience levels, countries and company sizes
// @Tags jobs
// @Produce json
// @Success 200 {object} market.MetaResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/meta [get]
func (h *JobsHandler) Meta(w http.ResponseWriter, r *http.Request) {
	h.serve("meta", func(ctx context.Context, _ url.Values) ([]byte, error) {
		return h.svc.Meta(ctx)
	})(w, r)
}

// Suggestions godoc
// @Summary Autocomplete job titles and countries
// @Tags jobs
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Result count (3-15)" default(8)
// @Success 200 {object} market.SuggestionsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/suggestions [get]
func (h *JobsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	h.serve("suggestions", h.svc.Suggestions)(w, r)
}

// Insights godoc
// @Summary Salary, skills and education for a filter
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Success 200 {object} market.InsightsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/insights [get]
func (h *JobsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	h.serve("insights", h.svc.Insights)(w, r)
}

// Listings godoc
// @Summary Paged postings, newest first
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (10-250)" default(30)
// @Success 200 {object} market.ListingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/listings [get]
func (h *JobsHandler) Listings(w http.ResponseWriter, r *http.Request) {
	h.serve("listings", h.svc.Listings)(w, r)
}

// SalaryByCategory godoc
// @Summary Average salary per job category
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Success 200 {object} market.SalaryByCategoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/salary-by-category [get]
func (h *JobsHandler) SalaryByCategory(w http.ResponseWriter, r *http.Request) {
	h.serve("salary-by-category", h.svc.SalaryByCategory)(w, r)
}

// RemoteTrends godoc
// @Summary Remote, hybrid and on-site split
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Success 200 {object} market.RemoteTrendsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/remote-trends [get]
func (h *JobsHandler) RemoteTrends(w http.ResponseWriter, r *http.Request) {
	h.serve("remote-trends", h.svc.RemoteTrends)(w, r)
}

// CommonSkills godoc
// @Summary Most requested skills
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Param limit query int false "Skill count (3-30)" default(12)
// @Success 200 {object} market.CommonSkillsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/common-skills [get]
func (h *JobsHandler) CommonSkills(w http.ResponseWriter, r *http.Request) {
	h.serve("common-skills", h.svc.CommonSkills)(w, r)
}

// CompanySizeImpact godoc
// @Summary Salary by company size
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Success 200 {object} market.CompanySizeImpactResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/company-size-impact [get]
func (h *JobsHandler) CompanySizeImpact(w http.ResponseWriter, r *http.Request) {
	h.serve("company-size-impact", h.svc.CompanySizeImpact)(w, r)
}

// GeographicSalary godoc
// @Summary Average salary per country
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Param limit query int false "Country count (5-80)" default(20)
// @Success 200 {object} market.GeographicSalaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/geographic-salary [get]
func (h *JobsHandler) GeographicSalary(w http.ResponseWriter, r *http.Request) {
	h.serve("geographic-salary", h.svc.GeographicSalary)(w, r)
}

// MarketEvolution godoc
// @Summary Monthly postings and salary
// @Tags jobs
// @Produce json
// @Param job_title query string false "Title substring"
// @Param experience_level query string false "Experience level or All"
// @Param country query string false "Country or All"
// @Success 200 {object} market.MarketEvolutionResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/jobs/market-evolution [get]
func (h *JobsHandler) MarketEvolution(w http.ResponseWriter, r *http.Request) {
	h.serve("market-evolution", h.svc.MarketEvolution)(w, r)
}
