package market

import (
	"slices"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

const topSkillCount = 3

// InsightsFilters echoes the filter values of the request
type InsightsFilters struct {
	JobTitle        string `json:"job_title"`
	ExperienceLevel string `json:"experience_level"`
	Country         string `json:"country"`
}

// SkillCount is a skill and the number of postings requiring it
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// InsightsResponse is the payload of /insights
type InsightsResponse struct {
	Filters                  InsightsFilters `json:"filters"`
	TotalMatches             int             `json:"totalMatches"`
	AverageSalaryUSD         *int            `json:"averageSalaryUsd"`
	TopSkills                []SkillCount    `json:"topSkills"`
	MinimumEducationRequired string          `json:"minimumEducationRequired"`
	DataSource               string          `json:"dataSource"`
}

// Insights summarises the jobs matching f
func Insights(jobs []domain.Job, f Filter, source string) InsightsResponse {
	filtered := f.Apply(jobs)

	echo := InsightsFilters{JobTitle: f.JobTitle, ExperienceLevel: f.ExperienceLevel, Country: f.Country}
	if echo.ExperienceLevel == "" {
		echo.ExperienceLevel = "All"
	}
	if echo.Country == "" {
		echo.Country = "All"
	}

	return InsightsResponse{
		Filters:                  echo,
		TotalMatches:             len(filtered),
		AverageSalaryUSD:         AverageSalary(filtered),
		TopSkills:                TopSkills(filtered, topSkillCount),
		MinimumEducationRequired: MinimumEducation(filtered),
		DataSource:               source,
	}
}

// TopSkills counts skill mentions and returns the n most frequent.
// Equal counts keep first-seen order.
func TopSkills(jobs []domain.Job, n int) []SkillCount {
	counts := map[string]int{}
	var order []string
	for i := range jobs {
		for _, skill := range jobs[i].RequiredSkills {
			if _, ok := counts[skill]; !ok {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}

	out := make([]SkillCount, 0, len(order))
	for _, skill := range order {
		out = append(out, SkillCount{Skill: skill, Count: counts[skill]})
	}
	slices.SortStableFunc(out, func(a, b SkillCount) int {
		return b.Count - a.Count
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MinimumEducation returns the lowest ranked education label among jobs.
// When several share the lowest rank the first one in record order wins.
func MinimumEducation(jobs []domain.Job) string {
	if len(jobs) == 0 {
		return normalizer.NotSpecified
	}

	best := normalizer.NormalizeEducation(jobs[0].EducationRequired)
	for i := 1; i < len(jobs); i++ {
		if e := normalizer.NormalizeEducation(jobs[i].EducationRequired); e.Rank < best.Rank {
			best = e
		}
	}
	return best.Label
}
