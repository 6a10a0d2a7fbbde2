package market

import (
	"net/url"
	"slices"
	"time"

	"github.com/project-tktt/jobs-market/internal/common/normalizer"
	"github.com/project-tktt/jobs-market/internal/domain"
)

const (
	defaultPageSize = 30
	minPageSize     = 10
	maxPageSize     = 250
)

// Listing is one row of the paginated listings view
type Listing struct {
	ID                int      `json:"id"`
	JobTitle          string   `json:"job_title"`
	SalaryUSD         *float64 `json:"salary_usd"`
	SalaryCurrency    string   `json:"salary_currency"`
	ExperienceLevel   string   `json:"experience_level"`
	JobCategory       string   `json:"job_category"`
	CompanyLocation   string   `json:"company_location"`
	CompanySize       string   `json:"company_size"`
	RemoteType        string   `json:"remote_type"`
	RequiredSkills    []string `json:"required_skills"`
	EducationRequired string   `json:"education_required"`
	PostedDate        *string  `json:"posted_date"`
}

// ListingsResponse is one page of /listings
type ListingsResponse struct {
	Listings     []Listing `json:"listings"`
	CurrentPage  int       `json:"currentPage"`
	ChunkSize    int       `json:"chunkSize"`
	TotalPages   int       `json:"totalPages"`
	TotalMatches int       `json:"totalMatches"`
	HasNext      bool      `json:"hasNext"`
	DataSource   string    `json:"dataSource"`
}

// Page is a requested page number and size after clamping
type Page struct {
	Number int
	Size   int
}

// PageFromQuery reads page (at least 1) and limit (10 to 250, default 30)
func PageFromQuery(q url.Values) Page {
	return Page{
		Number: max(ParseInt(q.Get("page"), 1), 1),
		Size:   clamp(ParseInt(q.Get("limit"), defaultPageSize), minPageSize, maxPageSize),
	}
}

// Listings sorts newest first, then best paid, and returns one page.
// A page past the end is clamped to the last page.
func Listings(jobs []domain.Job, f Filter, p Page, source string) ListingsResponse {
	filtered := f.Apply(jobs)
	slices.SortStableFunc(filtered, func(a, b domain.Job) int {
		if da, db := dateMillis(a.PostedDate), dateMillis(b.PostedDate); da != db {
			return cmpDesc(da, db)
		}
		return cmpDesc(salaryOrZero(a.SalaryUSD), salaryOrZero(b.SalaryUSD))
	})

	total := len(filtered)
	totalPages := max((total+p.Size-1)/p.Size, 1)
	page := min(p.Number, totalPages)
	start := min((page-1)*p.Size, total)
	end := min(start+p.Size, total)

	listings := make([]Listing, 0, end-start)
	for i := start; i < end; i++ {
		listings = append(listings, toListing(&filtered[i]))
	}

	return ListingsResponse{
		Listings:     listings,
		CurrentPage:  page,
		ChunkSize:    p.Size,
		TotalPages:   totalPages,
		TotalMatches: total,
		HasNext:      page < totalPages,
		DataSource:   source,
	}
}

func toListing(job *domain.Job) Listing {
	return Listing{
		ID:                job.ID,
		JobTitle:          job.JobTitle,
		SalaryUSD:         job.SalaryUSD,
		SalaryCurrency:    job.SalaryCurrency,
		ExperienceLevel:   job.ExperienceLevel,
		JobCategory:       job.JobCategory,
		CompanyLocation:   job.CompanyLocation,
		CompanySize:       job.CompanySize,
		RemoteType:        normalizer.NormalizeRemoteBucket(job.RemoteRatio),
		RequiredSkills:    job.RequiredSkills,
		EducationRequired: job.EducationRequired,
		PostedDate:        domain.FormatDate(job.PostedDate),
	}
}

func dateMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func salaryOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func cmpDesc[T int64 | float64 | int](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
