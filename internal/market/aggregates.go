package market

import (
	"math"
	"net/url"
	"slices"
	"strings"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// CategorySalary is the average salary of one job category
type CategorySalary struct {
	JobCategory      string `json:"job_category"`
	AverageSalaryUSD int    `json:"average_salary_usd"`
	Postings         int    `json:"postings"`
}

// SalaryByCategoryResponse is the payload of /salary-by-category
type SalaryByCategoryResponse struct {
	Categories []CategorySalary `json:"categories"`
	DataSource string           `json:"dataSource"`
}

// RemoteTrend is the share of postings in one remote bucket
type RemoteTrend struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RemoteTrendsResponse is the payload of /remote-trends
type RemoteTrendsResponse struct {
	Trends        []RemoteTrend `json:"trends"`
	TotalPostings int           `json:"totalPostings"`
	DataSource    string        `json:"dataSource"`
}

// CommonSkillsResponse is the payload of /common-skills
type CommonSkillsResponse struct {
	Skills        []SkillCount `json:"skills"`
	TotalPostings int          `json:"totalPostings"`
	DataSource    string       `json:"dataSource"`
}

// CompanySizeImpact holds posting count and average salary for one company size
type CompanySizeImpact struct {
	CompanySize      string `json:"company_size"`
	Postings         int    `json:"postings"`
	AverageSalaryUSD *int   `json:"average_salary_usd"`
}

// CompanySizeImpactResponse is the payload of /company-size-impact
type CompanySizeImpactResponse struct {
	Impact     []CompanySizeImpact `json:"impact"`
	DataSource string              `json:"dataSource"`
}

// CountrySalary is the average salary of one company location
type CountrySalary struct {
	Country          string `json:"country"`
	Postings         int    `json:"postings"`
	AverageSalaryUSD int    `json:"average_salary_usd"`
}

// GeographicSalaryResponse is the payload of /geographic-salary
type GeographicSalaryResponse struct {
	Countries  []CountrySalary `json:"countries"`
	DataSource string          `json:"dataSource"`
}

// MonthPoint aggregates the postings of one calendar month
type MonthPoint struct {
	Month            string `json:"month"`
	Postings         int    `json:"postings"`
	AverageSalaryUSD *int   `json:"average_salary_usd"`
}

// MarketEvolutionResponse is the payload of /market-evolution
type MarketEvolutionResponse struct {
	Timeline      []MonthPoint `json:"timeline"`
	HasTimeSeries bool         `json:"hasTimeSeries"`
	DataSource    string       `json:"dataSource"`
}

// group accumulates postings and salary stats per key, remembering first-seen order
type group struct {
	keys  []string
	stats map[string]*groupStats
}

type groupStats struct {
	postings int
	salary   salaryStats
}

func newGroup() *group {
	return &group{stats: map[string]*groupStats{}}
}

func (g *group) add(key string, job *domain.Job) {
	s, ok := g.stats[key]
	if !ok {
		s = &groupStats{}
		g.stats[key] = s
		g.keys = append(g.keys, key)
	}
	s.postings++
	s.salary.add(job)
}

// SalaryByCategory averages salaries per job category, best paid first.
// Categories without any salaried posting are left out.
func SalaryByCategory(jobs []domain.Job, f Filter, source string) SalaryByCategoryResponse {
	g := newGroup()
	for _, job := range f.Apply(jobs) {
		if job.HasSalary() {
			g.add(job.JobCategory, &job)
		}
	}

	categories := make([]CategorySalary, 0, len(g.keys))
	for _, key := range g.keys {
		s := g.stats[key]
		categories = append(categories, CategorySalary{
			JobCategory:      key,
			AverageSalaryUSD: *s.salary.average(),
			Postings:         s.salary.count,
		})
	}
	slices.SortStableFunc(categories, func(a, b CategorySalary) int {
		return b.AverageSalaryUSD - a.AverageSalaryUSD
	})

	return SalaryByCategoryResponse{Categories: categories, DataSource: source}
}

// RemoteTrends buckets postings into Remote, Hybrid and On-site.
// All three buckets are always reported.
func RemoteTrends(jobs []domain.Job, f Filter, source string) RemoteTrendsResponse {
	counts := make(map[string]int, len(normalizer.RemoteBuckets))
	total := 0
	for _, job := range f.Apply(jobs) {
		counts[normalizer.NormalizeRemoteBucket(job.RemoteRatio)]++
		total++
	}

	trends := make([]RemoteTrend, 0, len(normalizer.RemoteBuckets))
	for _, bucket := range normalizer.RemoteBuckets {
		trend := RemoteTrend{Type: bucket, Count: counts[bucket]}
		if total > 0 {
			trend.Percentage = math.Round(float64(trend.Count)/float64(total)*1000) / 10
		}
		trends = append(trends, trend)
	}

	return RemoteTrendsResponse{Trends: trends, TotalPostings: total, DataSource: source}
}

// SkillsLimitFromQuery reads limit for common-skills: 3 to 30, default 12
func SkillsLimitFromQuery(q url.Values) int {
	return clamp(ParseInt(q.Get("limit"), 12), 3, 30)
}

// CommonSkills returns the most requested skills
func CommonSkills(jobs []domain.Job, f Filter, limit int, source string) CommonSkillsResponse {
	filtered := f.Apply(jobs)
	return CommonSkillsResponse{
		Skills:        TopSkills(filtered, limit),
		TotalPostings: len(filtered),
		DataSource:    source,
	}
}

// CompanySizeImpactOf reports postings and average salary per company size,
// busiest size first
func CompanySizeImpactOf(jobs []domain.Job, f Filter, source string) CompanySizeImpactResponse {
	g := newGroup()
	for _, job := range f.Apply(jobs) {
		size := job.CompanySize
		if size == "" {
			size = normalizer.Unknown
		}
		g.add(size, &job)
	}

	impact := make([]CompanySizeImpact, 0, len(g.keys))
	for _, key := range g.keys {
		s := g.stats[key]
		impact = append(impact, CompanySizeImpact{
			CompanySize:      key,
			Postings:         s.postings,
			AverageSalaryUSD: s.salary.average(),
		})
	}
	slices.SortStableFunc(impact, func(a, b CompanySizeImpact) int {
		return b.Postings - a.Postings
	})

	return CompanySizeImpactResponse{Impact: impact, DataSource: source}
}

// GeoLimitFromQuery reads limit for geographic-salary: 5 to 80, default 20
func GeoLimitFromQuery(q url.Values) int {
	return clamp(ParseInt(q.Get("limit"), 20), 5, 80)
}

// GeographicSalary ranks countries by average salary.
// Countries with no salaried posting never appear.
func GeographicSalary(jobs []domain.Job, f Filter, limit int, source string) GeographicSalaryResponse {
	g := newGroup()
	for _, job := range f.Apply(jobs) {
		country := job.CompanyLocation
		if country == "" {
			country = normalizer.Unknown
		}
		g.add(country, &job)
	}

	countries := make([]CountrySalary, 0, len(g.keys))
	for _, key := range g.keys {
		s := g.stats[key]
		avg := s.salary.average()
		if avg == nil {
			continue
		}
		countries = append(countries, CountrySalary{Country: key, Postings: s.postings, AverageSalaryUSD: *avg})
	}
	slices.SortStableFunc(countries, func(a, b CountrySalary) int {
		return b.AverageSalaryUSD - a.AverageSalaryUSD
	})
	if len(countries) > limit {
		countries = countries[:limit]
	}

	return GeographicSalaryResponse{Countries: countries, DataSource: source}
}

// MarketEvolution groups dated postings by UTC calendar month, oldest first
func MarketEvolution(jobs []domain.Job, f Filter, source string) MarketEvolutionResponse {
	g := newGroup()
	for _, job := range f.Apply(jobs) {
		if job.PostedDate == nil {
			continue
		}
		g.add(job.PostedDate.UTC().Format("2006-01"), &job)
	}

	timeline := make([]MonthPoint, 0, len(g.keys))
	for _, key := range g.keys {
		s := g.stats[key]
		timeline = append(timeline, MonthPoint{Month: key, Postings: s.postings, AverageSalaryUSD: s.salary.average()})
	}
	slices.SortFunc(timeline, func(a, b MonthPoint) int {
		return strings.Compare(a.Month, b.Month)
	})

	return MarketEvolutionResponse{Timeline: timeline, HasTimeSeries: len(timeline) > 0, DataSource: source}
}
