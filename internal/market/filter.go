package market

import (
	"math"
	"net/url"
	"strings"

	"github.com/project-tktt/jobs-market/internal/domain"
)

// Filter narrows the record set. Values are kept as received so they can be echoed.
type Filter struct {
	JobTitle        string
	ExperienceLevel string
	Country         string
}

// FilterFromQuery reads job_title, experience_level and country
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		JobTitle:        q.Get("job_title"),
		ExperienceLevel: q.Get("experience_level"),
		Country:         q.Get("country"),
	}
}

// Match reports whether job passes every clause.
// job_title is a substring of title or location; the others are exact,
// case-insensitive, with "all" meaning no constraint.
func (f Filter) Match(job *domain.Job) bool {
	title := strings.ToLower(strings.TrimSpace(f.JobTitle))
	if title != "" &&
		!strings.Contains(strings.ToLower(job.JobTitle), title) &&
		!strings.Contains(strings.ToLower(job.CompanyLocation), title) {
		return false
	}
	if !matchExact(f.ExperienceLevel, job.ExperienceLevel) {
		return false
	}
	return matchExact(f.Country, job.CompanyLocation)
}

func matchExact(want, have string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" || want == "all" {
		return true
	}
	return strings.ToLower(have) == want
}

// Apply returns the matching jobs in their original order
func (f Filter) Apply(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for i := range jobs {
		if f.Match(&jobs[i]) {
			out = append(out, jobs[i])
		}
	}
	return out
}

// ParseInt reads a leading integer the lenient way query strings are usually
// read: surrounding junk after the digits is ignored, and a missing, invalid
// or zero value yields def.
func ParseInt(value string, def int) int {
	s := strings.TrimLeft(value, " \t\n\r\v\f")
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n < math.MaxInt32 {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 || n == 0 {
		return def
	}
	return sign * n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// round half up, the way averages have always been reported
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

type salaryStats struct {
	total float64
	count int
}

func (s *salaryStats) add(job *domain.Job) {
	if job.SalaryUSD != nil {
		s.total += *job.SalaryUSD
		s.count++
	}
}

func (s salaryStats) average() *int {
	if s.count == 0 {
		return nil
	}
	avg := roundHalfUp(s.total / float64(s.count))
	return &avg
}

// AverageSalary is the rounded mean over jobs with a salary, nil when none has one
func AverageSalary(jobs []domain.Job) *int {
	var s salaryStats
	for i := range jobs {
		s.add(&jobs[i])
	}
	return s.average()
}
