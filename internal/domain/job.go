package domain

import (
	"encoding/json"
	"time"
)

// RawRow is one CSV data row keyed by normalized header name
type RawRow map[string]string

// Job represents a normalized job posting from any dataset vintage
type Job struct {
	ID                int        `json:"id"`
	JobTitle          string     `json:"job_title"`
	SalaryUSD         *float64   `json:"salary_usd"`
	SalaryCurrency    string     `json:"salary_currency"`
	ExperienceLevel   string     `json:"experience_level"`
	JobCategory       string     `json:"job_category"`
	CompanyLocation   string     `json:"company_location"`
	CompanySize       string     `json:"company_size"`
	RemoteRatio       string     `json:"remote_ratio"` // Raw value, bucketed at read time
	RequiredSkills    []string   `json:"required_skills"`
	EducationRequired string     `json:"education_required"`
	PostedDate        *time.Time `json:"posted_date"`
}

// HasSalary reports whether the posting carries a usable salary
func (j *Job) HasSalary() bool {
	return j.SalaryUSD != nil
}

// ISOTimestamp renders t the way the API has always emitted dates
const ISOTimestamp = "2006-01-02T15:04:05.000Z"

// FormatDate returns an ISO timestamp pointer suitable for JSON, nil when absent
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(ISOTimestamp)
	return &s
}

// MarshalJSON keeps posted_date in millisecond ISO form
func (j Job) MarshalJSON() ([]byte, error) {
	type alias Job
	return json.Marshal(struct {
		alias
		PostedDate *string `json:"posted_date"`
	}{
		alias:      alias(j),
		PostedDate: FormatDate(j.PostedDate),
	})
}

// Dataset source labels
const (
	SourceFallback  = "sample:fallback"
	SourceCSVPrefix = "csv:"
)
