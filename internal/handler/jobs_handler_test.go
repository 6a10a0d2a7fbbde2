package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/cache"
	"github.com/project-tktt/jobs-market/internal/cache/memory"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/service"
)

type failingLoader struct{}

func (failingLoader) Load(context.Context) (*dataset.Dataset, error) {
	return nil, errors.New("dataset directory unreadable")
}

func newTestServer(t *testing.T, loader service.Loader) *httptest.Server {
	t.Helper()
	svc := service.NewJobsService(loader, memory.New(cache.DefaultOptions()), time.Minute, zap.NewNop())
	srv := httptest.NewServer(NewRouter(NewJobsHandler(svc, zap.NewNop()), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func fallbackServer(t *testing.T) *httptest.Server {
	return newTestServer(t, dataset.NewLoader(dataset.Config{Dir: t.TempDir()}, nil, zap.NewNop()))
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := fallbackServer(t)

	var body HealthResponse
	resp := getJSON(t, srv.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body.Status)
	assert.GreaterOrEqual(t, body.Uptime, 0.0)
}

func TestMetaEndpoint(t *testing.T) {
	srv := fallbackServer(t)

	var body struct {
		TotalPostings    int      `json:"totalPostings"`
		ExperienceLevels []string `json:"experienceLevels"`
		DataSource       string   `json:"dataSource"`
	}
	resp := getJSON(t, srv.URL+"/api/jobs/meta", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, 15, body.TotalPostings)
	assert.Equal(t, "sample:fallback", body.DataSource)
	assert.NotEmpty(t, body.ExperienceLevels)
}

func TestSalaryByCategoryEndpoint(t *testing.T) {
	srv := fallbackServer(t)

	var body struct {
		Categories []struct {
			JobCategory string `json:"job_category"`
			Average     int    `json:"average_salary_usd"`
			Postings    int    `json:"postings"`
		} `json:"categories"`
	}
	getJSON(t, srv.URL+"/api/jobs/salary-by-category", &body)

	var found bool
	for _, c := range body.Categories {
		if c.JobCategory == "Research" {
			found = true
			assert.Equal(t, 158667, c.Average)
			assert.Equal(t, 3, c.Postings)
		}
	}
	assert.True(t, found)
}

func TestListingsClampsLimit(t *testing.T) {
	srv := fallbackServer(t)

	var body struct {
		Listings    []json.RawMessage `json:"listings"`
		ChunkSize   int               `json:"chunkSize"`
		CurrentPage int               `json:"currentPage"`
		TotalPages  int               `json:"totalPages"`
		HasNext     bool              `json:"hasNext"`
	}
	getJSON(t, srv.URL+"/api/jobs/listings?limit=1000&page=9", &body)

	assert.Equal(t, 250, body.ChunkSize)
	assert.Equal(t, 1, body.CurrentPage)
	assert.Equal(t, 1, body.TotalPages)
	assert.False(t, body.HasNext)
	assert.Len(t, body.Listings, 15)
}

func TestSuggestionsEmptyQuery(t *testing.T) {
	srv := newTestServer(t, failingLoader{})

	resp, err := http.Get(srv.URL + "/api/jobs/suggestions?q=")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["query"])
	assert.Equal(t, []any{}, body["suggestions"])
}

func TestLoaderFailureReturns500(t *testing.T) {
	srv := newTestServer(t, failingLoader{})

	var body ErrorResponse
	resp := getJSON(t, srv.URL+"/api/jobs/insights?country=Germany", &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body.Message, "load jobs dataset")
}

func TestCORSHeaders(t *testing.T) {
	srv := fallbackServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDocRegistered(t *testing.T) {
	srv := fallbackServer(t)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	resp := getJSON(t, srv.URL+"/swagger/doc.json", &doc)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, doc.Paths, "/api/jobs/listings")
}
