package agent

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/cache"
	"github.com/project-tktt/jobs-market/internal/dataset"
	"github.com/project-tktt/jobs-market/internal/service"
)

func newTools(t *testing.T) *Tools {
	t.Helper()
	loader := dataset.NewLoader(dataset.Config{Dir: t.TempDir()}, nil, zap.NewNop())
	svc := service.NewJobsService(loader, cache.Noop{}, time.Minute, zap.NewNop())
	return NewTools(svc, zap.NewNop())
}

func call(t *testing.T, tools *Tools, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	var fn queryFunc
	switch name {
	case "jobs_meta":
		fn = func(ctx context.Context, _ url.Values) ([]byte, error) { return tools.svc.Meta(ctx) }
	case "jobs_listings":
		fn = tools.svc.Listings
	case "jobs_insights":
		fn = tools.svc.Insights
	case "jobs_suggestions":
		fn = tools.svc.Suggestions
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := tools.handle(name, fn)(context.Background(), req)
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestMetaTool(t *testing.T) {
	res := call(t, newTools(t), "jobs_meta", nil)
	assert.False(t, res.IsError)

	var body struct {
		TotalPostings int `json:"totalPostings"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &body))
	assert.Equal(t, 15, body.TotalPostings)
}

func TestListingsToolMapsArguments(t *testing.T) {
	res := call(t, newTools(t), "jobs_listings", map[string]interface{}{
		"experience_level": "Senior",
		"limit":            float64(10),
		"page":             float64(1),
		"unknown":          "ignored",
	})
	assert.False(t, res.IsError)

	var body struct {
		ChunkSize    int `json:"chunkSize"`
		TotalMatches int `json:"totalMatches"`
		Listings     []struct {
			ExperienceLevel string `json:"experience_level"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &body))
	assert.Equal(t, 10, body.ChunkSize)
	require.NotEmpty(t, body.Listings)
	for _, l := range body.Listings {
		assert.Equal(t, "Senior", l.ExperienceLevel)
	}
}

func TestSuggestionsToolEmptyQuery(t *testing.T) {
	res := call(t, newTools(t), "jobs_suggestions", map[string]interface{}{"q": "  "})
	assert.JSONEq(t, `{"query":"","suggestions":[]}`, text(t, res))
}

func TestBadArgumentsAreToolErrors(t *testing.T) {
	res := call(t, newTools(t), "jobs_insights", map[string]interface{}{"country": []interface{}{"x"}})
	assert.True(t, res.IsError)
}

func TestToQuery(t *testing.T) {
	q, err := toQuery(map[string]interface{}{"job_title": "data", "limit": float64(12), "country": nil})
	require.NoError(t, err)
	assert.Equal(t, "job_title=data&limit=12", q.Encode())

	_, err = toQuery("not a map")
	assert.Equal(t, apperrors.ErrTypeInvalidInput, apperrors.TypeOf(err))

	_, err = toQuery(map[string]interface{}{"page": true})
	assert.Equal(t, apperrors.ErrTypeInvalidInput, apperrors.TypeOf(err))
	assert.ErrorContains(t, err, "argument page has unsupported type bool")

	q, err = toQuery(nil)
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestRegisterListsTools(t *testing.T) {
	s := server.NewMCPServer("jobs-market", "1.0.0")
	newTools(t).Register(s)

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"jobs_meta", "jobs_suggestions", "jobs_insights", "jobs_listings"} {
		assert.Contains(t, string(raw), `"`+name+`"`)
	}
}
