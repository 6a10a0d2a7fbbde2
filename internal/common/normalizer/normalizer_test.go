package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-tktt/jobs-market/internal/domain"
)

func TestNormalizeRemoteBucket(t *testing.T) {
	tests := map[string]string{
		"100":          RemoteFull,
		"0":            RemoteOnSite,
		"55":           RemoteHybrid,
		"50%":          RemoteHybrid,
		"100%":         RemoteFull,
		"remote":       RemoteFull,
		"Fully Remote": RemoteFull,
		"On-site":      RemoteOnSite,
		"office based": RemoteOnSite,
		"hybrid":       RemoteHybrid,
		"flexible":     RemoteHybrid,
		"":             RemoteHybrid,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeRemoteBucket(in), "input %q", in)
	}
}

func TestNormalizeExperienceLevel(t *testing.T) {
	tests := map[string]string{
		"Jr.":             LevelEntry,
		"EN":              LevelEntry,
		"Junior Analyst":  LevelEntry,
		"mi":              LevelMid,
		"Mid-level":       LevelMid,
		"Staff":           LevelSenior,
		"SE":              LevelSenior,
		"Tech Lead":       LevelSenior,
		"VP":              LevelExecutive,
		"Head of Data":    LevelExecutive,
		"":                NotSpecified,
		"   ":             NotSpecified,
		"expert  advisor": "Expert Advisor",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeExperienceLevel(in), "input %q", in)
	}
}

func TestNormalizeCompanySize(t *testing.T) {
	tests := map[string]string{
		"75":         SizeMedium,
		"L":          SizeLarge,
		"s":          SizeSmall,
		"m":          SizeMedium,
		"40":         SizeSmall,
		"1,000":      SizeLarge,
		"5000":       SizeEnterprise,
		"Startup":    SizeSmall,
		"Global org": SizeEnterprise,
		"mid-market": "Mid-market",
		"":           Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCompanySize(in), "input %q", in)
	}
}

func TestNormalizeEducation(t *testing.T) {
	assert.Equal(t, Education{"Bachelor's Degree", 3}, NormalizeEducation("Bachelor's Degree"))
	assert.Equal(t, Education{"Master's Degree", 4}, NormalizeEducation("Master of Science"))
	assert.Equal(t, Education{"Bachelor's Degree", 3}, NormalizeEducation("MBA"), "bachelor patterns are checked first")
	assert.Equal(t, Education{"PhD", 5}, NormalizeEducation("PhD"))
	assert.Equal(t, Education{"High School", 1}, NormalizeEducation("high school diploma"))
	assert.Equal(t, Education{"Associate's Degree", 2}, NormalizeEducation("Associate"))
	assert.Equal(t, Education{"Certificate", 900}, NormalizeEducation("Certificate"))
	assert.Equal(t, Education{NotSpecified, 999}, NormalizeEducation(""))
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Python", "AWS", "ML"}, ParseSkills("Python, AWS, ml"))
	assert.Equal(t, []string{"PyTorch", "SQL", "Docker"}, ParseSkills("pytorch; sql|Docker"))
	assert.Equal(t, []string{"Deep Learning", "R", "C++", "scikit-Learn"}, ParseSkills(`["deep learning", 'r', "C++", "scikit-Learn"]`))
	assert.Equal(t, []string{"GCP", "Golang", "GO"}, ParseSkills("gcp / golang / go"))
	assert.Empty(t, ParseSkills(""))
	assert.NotNil(t, ParseSkills(""))
}

func TestParseNumber(t *testing.T) {
	n, ok := ParseNumber("$120,000")
	require.True(t, ok)
	assert.Equal(t, 120000.0, n)

	_, ok = ParseNumber("n/a")
	assert.False(t, ok)

	_, ok = ParseNumber("1-50")
	assert.False(t, ok)
}

func TestParseSalaryAliases(t *testing.T) {
	salary := ParseSalary(domain.RawRow{"salary_usd": "unknown", "salary_in_usd": "98000"})
	require.NotNil(t, salary)
	assert.Equal(t, 98000.0, *salary)

	assert.Nil(t, ParseSalary(domain.RawRow{"salary": "100"}))
}

func TestParsePostedDate(t *testing.T) {
	d := ParsePostedDate(domain.RawRow{"work_year": "2024"})
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *d)

	d = ParsePostedDate(domain.RawRow{"posted_date": "garbage", "date_posted": "2025-03-20"})
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), *d)

	d = ParsePostedDate(domain.RawRow{"posted_at": "2025-06-11T10:30:00+02:00"})
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC), *d)

	assert.Nil(t, ParsePostedDate(domain.RawRow{"date": "soon"}))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "salary_in_usd", NormalizeHeader(` "Salary (in USD)" `))
	assert.Equal(t, "job_title", NormalizeHeader("Job Title"))
	assert.Equal(t, "remote_ratio", NormalizeHeader("__remote--ratio__"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Feature Engineering", TitleCase("feature  ENGINEERING"))
	assert.Equal(t, "Mid-level", TitleCase("MID-LEVEL"))
	assert.Equal(t, "", TitleCase(""))
}

func TestNormalizeRow(t *testing.T) {
	n := NewNormalizer()

	job, ok := n.Normalize(domain.RawRow{
		"title":            "<b>NLP Engineer</b>",
		"salary_in_usd":    "151000",
		"currency":         "eur",
		"seniority":        "senior",
		"location":         "France",
		"remote_type":      "remote",
		"skills":           "nlp, pytorch",
		"company_size":     "L",
		"date_posted":      "2025-06-11",
		"unrelated_column": "ignored",
	}, 7)
	require.True(t, ok)

	assert.Equal(t, 7, job.ID)
	assert.Equal(t, "NLP Engineer", job.JobTitle)
	require.NotNil(t, job.SalaryUSD)
	assert.Equal(t, 151000.0, *job.SalaryUSD)
	assert.Equal(t, "EUR", job.SalaryCurrency)
	assert.Equal(t, LevelSenior, job.ExperienceLevel)
	assert.Equal(t, "Other", job.JobCategory)
	assert.Equal(t, "France", job.CompanyLocation)
	assert.Equal(t, SizeLarge, job.CompanySize)
	assert.Equal(t, "remote", job.RemoteRatio)
	assert.Equal(t, []string{"NLP", "PyTorch"}, job.RequiredSkills)
	assert.Equal(t, NotSpecified, job.EducationRequired)
	require.NotNil(t, job.PostedDate)
}

func TestNormalizeRowDefaults(t *testing.T) {
	job, ok := NewNormalizer().Normalize(domain.RawRow{"role": "Analyst"}, 1)
	require.True(t, ok)

	assert.Nil(t, job.SalaryUSD)
	assert.Equal(t, "USD", job.SalaryCurrency)
	assert.Equal(t, NotSpecified, job.ExperienceLevel)
	assert.Equal(t, Unknown, job.CompanyLocation)
	assert.Equal(t, Unknown, job.CompanySize)
	assert.Equal(t, "", job.RemoteRatio)
	assert.Equal(t, RemoteHybrid, NormalizeRemoteBucket(job.RemoteRatio))
	assert.Nil(t, job.PostedDate)
}

func TestNormalizeRowDropsMissingTitle(t *testing.T) {
	n := NewNormalizer()
	rows := []domain.RawRow{
		{"job_title": "AI Engineer"},
		{"job_title": "   ", "title": "", "role": ""},
		{"salary_usd": "100000"},
		{"role": "Prompt Engineer"},
		{"title": "Engineer <Senior>"},
	}

	var kept []*domain.Job
	for i, row := range rows {
		if job, ok := n.Normalize(row, i+1); ok {
			kept = append(kept, job)
		}
	}

	require.Len(t, kept, 3, "only rows without a title are dropped")
	for _, job := range kept {
		assert.NotEmpty(t, job.JobTitle)
	}
	assert.Equal(t, 4, kept[1].ID)
	assert.Equal(t, "Engineer <Senior>", kept[2].JobTitle)
}

func TestNormalizeRowKeepsAngleBracketText(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"C<C++ Developer", "C<C++ Developer"},
		{"AT&amp;T Analyst", "AT&T Analyst"},
		{"<p>Data Engineer</p>", "Data Engineer"},
		{"<br/>", "<br/>"},
	}

	for _, tt := range tests {
		job, ok := n.Normalize(domain.RawRow{"job_title": tt.in}, 1)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, job.JobTitle)
	}
}
