package market

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// MetaResponse describes the filter facets of the loaded dataset
type MetaResponse struct {
	TotalPostings    int      `json:"totalPostings"`
	TotalCountries   int      `json:"totalCountries"`
	ExperienceLevels []string `json:"experienceLevels"`
	Countries        []string `json:"countries"`
	CompanySizes     []string `json:"companySizes"`
	DataSource       string   `json:"dataSource"`
}

// newCollator returns an English collator. Collators are not safe for
// concurrent use, so every call site gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// Meta lists distinct countries, company sizes and experience levels
func Meta(jobs []domain.Job, source string) MetaResponse {
	var levels, countries, sizes []string
	for i := range jobs {
		levels = append(levels, jobs[i].ExperienceLevel)
		countries = append(countries, jobs[i].CompanyLocation)
		sizes = append(sizes, jobs[i].CompanySize)
	}

	countries = distinctSorted(countries)
	return MetaResponse{
		TotalPostings:    len(jobs),
		TotalCountries:   len(countries),
		ExperienceLevels: SortExperienceLevels(levels),
		Countries:        countries,
		CompanySizes:     distinctSorted(sizes),
		DataSource:       source,
	}
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func distinctSorted(values []string) []string {
	out := distinct(values)
	newCollator().SortStrings(out)
	return out
}

// SortExperienceLevels dedupes levels, puts the canonical ones first in
// seniority order and appends the rest alphabetically
func SortExperienceLevels(levels []string) []string {
	out := distinct(levels)
	rank := func(level string) int {
		if i := slices.Index(normalizer.ExperienceOrder, level); i >= 0 {
			return i
		}
		return len(normalizer.ExperienceOrder)
	}

	col := newCollator()
	slices.SortStableFunc(out, func(a, b string) int {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra - rb
		}
		return col.CompareString(a, b)
	})
	return out
}
