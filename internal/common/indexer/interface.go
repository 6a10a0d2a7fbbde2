package indexer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// Indexer defines the interface for job export backends
type Indexer interface {
	// Name identifies the backend in logs
	Name() string
	// BulkIndex upserts jobs keyed by ID, tagging every row with runID
	BulkIndex(ctx context.Context, runID string, jobs []domain.Job) error
	Close() error
}

// Document is the flat shape every backend stores
type Document struct {
	ID                int        `json:"id"`
	JobTitle          string     `json:"job_title"`
	SalaryUSD         *float64   `json:"salary_usd"`
	SalaryCurrency    string     `json:"salary_currency"`
	ExperienceLevel   string     `json:"experience_level"`
	JobCategory       string     `json:"job_category"`
	CompanyLocation   string     `json:"company_location"`
	CompanySize       string     `json:"company_size"`
	RemoteRatio       string     `json:"remote_ratio"`
	RemoteType        string     `json:"remote_type"`
	RequiredSkills    []string   `json:"required_skills"`
	EducationRequired string     `json:"education_required"`
	PostedDate        *time.Time `json:"posted_date,omitempty"`
	RunID             string     `json:"run_id"`
	IndexedAt         time.Time  `json:"indexed_at"`
}

// NewDocument flattens job for storage
func NewDocument(job *domain.Job, runID string, indexedAt time.Time) Document {
	skills := job.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return Document{
		ID:                job.ID,
		JobTitle:          job.JobTitle,
		SalaryUSD:         job.SalaryUSD,
		SalaryCurrency:    job.SalaryCurrency,
		ExperienceLevel:   job.ExperienceLevel,
		JobCategory:       job.JobCategory,
		CompanyLocation:   job.CompanyLocation,
		CompanySize:       job.CompanySize,
		RemoteRatio:       job.RemoteRatio,
		RemoteType:        normalizer.NormalizeRemoteBucket(job.RemoteRatio),
		RequiredSkills:    skills,
		EducationRequired: job.EducationRequired,
		PostedDate:        job.PostedDate,
		RunID:             runID,
		IndexedAt:         indexedAt.UTC(),
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// validIdentifier rejects table and index names that would need quoting
func validIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}
