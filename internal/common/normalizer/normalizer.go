package normalizer

import (
	"strings"

	"github.com/project-tktt/jobs-market/internal/common/cleaner"
	"github.com/project-tktt/jobs-market/internal/domain"
)

// Column aliases, checked in order
var (
	TitleKeys       = []string{"job_title", "title", "role"}
	CurrencyKeys    = []string{"salary_currency", "currency", "pay_currency"}
	CompanySizeKeys = []string{"company_size", "company_size_bucket", "company_employees", "org_size"}
	ExperienceKeys  = []string{"experience_level", "experience", "seniority"}
	CategoryKeys    = []string{"job_category", "category", "job_family"}
	LocationKeys    = []string{"company_location", "location", "country"}
	RemoteKeys      = []string{"remote_ratio", "remote_type"}
	SkillsKeys      = []string{"required_skills", "skills", "skill_set"}
	EducationKeys   = []string{"education_required", "education", "min_education"}
)

// Normalizer converts a RawRow from any dataset vintage to a canonical Job
type Normalizer struct {
	cleaner *cleaner.Cleaner
}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{cleaner: cleaner.NewStrictCleaner()}
}

// Normalize maps row to a Job with the given ID.
// It returns false when the row has no usable job title.
func (n *Normalizer) Normalize(row domain.RawRow, rowID int) (*domain.Job, bool) {
	title := n.text(GetField(row, TitleKeys, ""))
	if title == "" {
		return nil, false
	}

	job := &domain.Job{
		ID:                rowID,
		JobTitle:          title,
		SalaryUSD:         ParseSalary(row),
		SalaryCurrency:    strings.ToUpper(GetField(row, CurrencyKeys, "USD")),
		ExperienceLevel:   NormalizeExperienceLevel(GetField(row, ExperienceKeys, "")),
		JobCategory:       n.textOr(GetField(row, CategoryKeys, ""), "Other"),
		CompanyLocation:   n.textOr(GetField(row, LocationKeys, ""), Unknown),
		CompanySize:       NormalizeCompanySize(GetField(row, CompanySizeKeys, "")),
		RemoteRatio:       GetField(row, RemoteKeys, ""),
		RequiredSkills:    ParseSkills(n.text(GetField(row, SkillsKeys, ""))),
		EducationRequired: n.textOr(GetField(row, EducationKeys, ""), NotSpecified),
		PostedDate:        ParsePostedDate(row),
	}

	return job, true
}

func (n *Normalizer) text(value string) string {
	return n.cleaner.CleanText(value)
}

func (n *Normalizer) textOr(value, fallback string) string {
	if v := n.text(value); v != "" {
		return v
	}
	return fallback
}
