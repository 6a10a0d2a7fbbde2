package agent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/project-tktt/jobs-market/internal/apperrors"
	"github.com/project-tktt/jobs-market/internal/service"
)

type queryFunc func(ctx context.Context, q url.Values) ([]byte, error)

// Tools exposes JobsService queries as MCP tools returning the HTTP payloads
type Tools struct {
	svc    *service.JobsService
	logger *zap.Logger
}

func NewTools(svc *service.JobsService, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{svc: svc, logger: logger}
}

var filterProperties = map[string]interface{}{
	"job_title":        map[string]interface{}{"type": "string", "description": "Case-insensitive substring of the job title"},
	"experience_level": map[string]interface{}{"type": "string", "description": "Experience level such as Senior, or All"},
	"country":          map[string]interface{}{"type": "string", "description": "Company country, or All"},
}

// arguments forwarded as query parameters; anything else is ignored
var queryArgs = map[string]bool{
	"q":                true,
	"limit":            true,
	"page":             true,
	"job_title":        true,
	"experience_level": true,
	"country":          true,
}

// Register adds every tool to s
func (t *Tools) Register(s *server.MCPServer) {
	meta := mcp.NewTool("jobs_meta",
		mcp.WithDescription("Dataset totals plus the distinct experience levels, countries and company sizes"),
	)
	s.AddTool(meta, t.handle("jobs_meta", func(ctx context.Context, _ url.Values) ([]byte, error) {
		return t.svc.Meta(ctx)
	}))

	suggestions := mcp.NewTool("jobs_suggestions",
		mcp.WithDescription("Ranked autocomplete suggestions over job titles and countries"),
	)
	suggestions.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"q":     map[string]interface{}{"type": "string", "description": "Search text"},
			"limit": map[string]interface{}{"type": "integer", "description": "Number of suggestions, 3 to 15 (default: 8)"},
		},
		Required: []string{"q"},
	}
	s.AddTool(suggestions, t.handle("jobs_suggestions", t.svc.Suggestions))

	insights := mcp.NewTool("jobs_insights",
		mcp.WithDescription("Average salary, top skills and minimum education for the filtered postings"),
	)
	insights.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: filterProperties}
	s.AddTool(insights, t.handle("jobs_insights", t.svc.Insights))

	listingProps := map[string]interface{}{
		"page":  map[string]interface{}{"type": "integer", "description": "Page number (default: 1)"},
		"limit": map[string]interface{}{"type": "integer", "description": "Page size, 10 to 250 (default: 30)"},
	}
	for k, v := range filterProperties {
		listingProps[k] = v
	}
	listings := mcp.NewTool("jobs_listings",
		mcp.WithDescription("Filtered postings, newest first, one page at a time"),
	)
	listings.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: listingProps}
	s.AddTool(listings, t.handle("jobs_listings", t.svc.Listings))
}

func (t *Tools) handle(name string, fn queryFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := toQuery(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, err := fn(ctx, q)
		if err != nil {
			t.logger.Error("Tool call failed", zap.String("tool", name), zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, err)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

// toQuery maps tool arguments onto the HTTP query parameters
func toQuery(arguments any) (url.Values, error) {
	q := url.Values{}
	if arguments == nil {
		return q, nil
	}

	args, ok := arguments.(map[string]interface{})
	if !ok {
		return nil, apperrors.InvalidInput("invalid arguments format", nil)
	}

	for name, raw := range args {
		if !queryArgs[name] {
			continue
		}
		switch v := raw.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				q.Set(name, v)
			}
		case float64:
			q.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
		case int:
			q.Set(name, strconv.Itoa(v))
		case nil:
		default:
			return nil, apperrors.InvalidInput(fmt.Sprintf("argument %s has unsupported type %T", name, raw), nil)
		}
	}
	return q, nil
}
