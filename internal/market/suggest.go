package market

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/project-tktt/jobs-market/internal/domain"
)

// Suggestion types
const (
	SuggestJob     = "job"
	SuggestCountry = "country"
)

const (
	defaultSuggestions = 8
	minSuggestions     = 3
	maxSuggestions     = 15
)

// Suggestion is one ranked autocomplete entry
type Suggestion struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SuggestionsResponse is the payload of /suggestions
type SuggestionsResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
	DataSource  string       `json:"dataSource,omitempty"`
}

// SuggestionQuery is a trimmed autocomplete query and its clamped limit
type SuggestionQuery struct {
	Q     string
	Limit int
}

// SuggestionQueryFromQuery reads q and limit (3 to 15, default 8)
func SuggestionQueryFromQuery(q url.Values) SuggestionQuery {
	return SuggestionQuery{
		Q:     strings.TrimSpace(q.Get("q")),
		Limit: clamp(ParseInt(q.Get("limit"), defaultSuggestions), minSuggestions, maxSuggestions),
	}
}

var tokenSplit = regexp.MustCompile(`[\s\-_/(),.]+`)

func tokenize(s string) []string {
	var out []string
	for _, t := range tokenSplit.Split(s, -1) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ScoreSuggestion ranks a lowercased candidate against a lowercased query.
// Tiers are checked in order and the first hit wins; 0 means no match.
func ScoreSuggestion(candidate, query string) int {
	if candidate == query {
		return 100
	}
	if strings.HasPrefix(candidate, query) {
		return 90
	}

	tokens := tokenize(candidate)
	for _, t := range tokens {
		if strings.HasPrefix(t, query) {
			return 75
		}
	}
	if strings.Contains(candidate, query) {
		return 60
	}

	queryTokens := tokenize(query)
	prefixHits := 0
	for _, q := range queryTokens {
		if len(q) < 2 {
			continue
		}
		if slices.ContainsFunc(tokens, func(t string) bool { return strings.HasPrefix(t, q) }) {
			prefixHits++
		}
	}
	switch {
	case prefixHits >= 2:
		return 58
	case prefixHits == 1:
		return 52
	}

	for _, q := range queryTokens {
		if len(q) < 3 {
			continue
		}
		if slices.ContainsFunc(tokens, func(t string) bool { return strings.Contains(t, q) }) {
			return 46
		}
	}

	return 0
}

type scoredSuggestion struct {
	Suggestion
	score int
}

// Suggest ranks job titles and countries for autocomplete.
// Labels are bucketed case-insensitively and keep the casing seen first.
func Suggest(jobs []domain.Job, query string, limit int) []Suggestion {
	queryLower := strings.ToLower(query)

	var buckets []*scoredSuggestion
	index := map[string]*scoredSuggestion{}
	add := func(kind, label string) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		key := kind + ":" + strings.ToLower(label)
		b, ok := index[key]
		if !ok {
			b = &scoredSuggestion{Suggestion: Suggestion{Label: label, Type: kind}}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.Count++
	}
	for i := range jobs {
		add(SuggestJob, jobs[i].JobTitle)
		add(SuggestCountry, jobs[i].CompanyLocation)
	}

	var ranked []scoredSuggestion
	for _, b := range buckets {
		b.score = ScoreSuggestion(strings.ToLower(b.Label), queryLower)
		if b.score > 0 {
			ranked = append(ranked, *b)
		}
	}

	col := newCollator()
	slices.SortStableFunc(ranked, func(a, b scoredSuggestion) int {
		if a.score != b.score {
			return b.score - a.score
		}
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Type != b.Type {
			return col.CompareString(a.Type, b.Type)
		}
		return col.CompareString(a.Label, b.Label)
	})

	out := make([]Suggestion, 0, min(limit, len(ranked)))
	for i := 0; i < len(ranked) && i < limit; i++ {
		out = append(out, ranked[i].Suggestion)
	}
	return out
}
