package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Cleaner strips markup from CSV cell text using Bluemonday
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewStrictCleaner creates a cleaner that strips ALL HTML
func NewStrictCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanText decodes entities in a cell and strips markup when the cell holds
// a real HTML element. Angle brackets around anything else ("C<C++",
// "<Senior>") are kept as text. A cell is never cleaned down to nothing.
func (c *Cleaner) CleanText(text string) string {
	text = strings.TrimSpace(text)
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	if containsElement(text) {
		cleaned := strings.Join(strings.Fields(html.UnescapeString(c.policy.Sanitize(text))), " ")
		if cleaned != "" {
			return cleaned
		}
	}
	return html.UnescapeString(text)
}

// containsElement reports whether text has a tag naming a known HTML element
func containsElement(text string) bool {
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				return true
			}
		}
	}
}
