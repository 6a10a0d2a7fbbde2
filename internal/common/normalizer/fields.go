package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/project-tktt/jobs-market/internal/domain"
)

// Canonical labels
const (
	NotSpecified = "Not specified"
	Unknown      = "Unknown"

	LevelEntry     = "Entry"
	LevelMid       = "Mid"
	LevelSenior    = "Senior"
	LevelExecutive = "Executive"

	SizeSmall      = "Small"
	SizeMedium     = "Medium"
	SizeLarge      = "Large"
	SizeEnterprise = "Enterprise"

	RemoteFull   = "Remote"
	RemoteHybrid = "Hybrid"
	RemoteOnSite = "On-site"
)

// ExperienceOrder is the canonical ordering of recognised levels
var ExperienceOrder = []string{LevelEntry, LevelMid, LevelSenior, LevelExecutive}

// RemoteBuckets lists every remote-work bucket in reporting order
var RemoteBuckets = []string{RemoteFull, RemoteHybrid, RemoteOnSite}

type levelRule struct {
	level    string
	codes    []string
	keywords []string
}

var experienceRules = []levelRule{
	{LevelEntry, []string{"en", "entry", "junior", "jr", "intern", "new grad", "entry-level"}, []string{"entry", "junior", "intern"}},
	{LevelMid, []string{"mi", "mid", "intermediate", "associate", "mid-level"}, []string{"mid", "intermediate", "associate"}},
	{LevelSenior, []string{"se", "senior", "lead", "principal", "staff"}, []string{"senior", "lead", "principal", "staff"}},
	{LevelExecutive, []string{"ex", "executive", "director", "vp", "cxo", "chief", "head"}, []string{"executive", "director", "vp", "chief", "head"}},
}

// NormalizeExperienceLevel maps seniority codes and free text to a canonical level.
// Exact codes are checked for every level before any substring keyword.
func NormalizeExperienceLevel(value string) string {
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "" {
		return NotSpecified
	}

	code := strings.TrimRight(text, ".")
	for _, rule := range experienceRules {
		for _, c := range rule.codes {
			if code == c {
				return rule.level
			}
		}
	}
	for _, rule := range experienceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.level
			}
		}
	}

	return TitleCase(text)
}

// NormalizeCompanySize maps letter codes, head counts and keywords to a size tier
func NormalizeCompanySize(value string) string {
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "" {
		return Unknown
	}

	switch text {
	case "s":
		return SizeSmall
	case "m":
		return SizeMedium
	case "l":
		return SizeLarge
	}

	if n, ok := ParseNumber(text); ok {
		switch {
		case n <= 50:
			return SizeSmall
		case n <= 250:
			return SizeMedium
		case n <= 1000:
			return SizeLarge
		default:
			return SizeEnterprise
		}
	}

	switch {
	case strings.Contains(text, "startup"), strings.Contains(text, "small"):
		return SizeSmall
	case strings.Contains(text, "medium"):
		return SizeMedium
	case strings.Contains(text, "large"):
		return SizeLarge
	case strings.Contains(text, "enterprise"), strings.Contains(text, "global"):
		return SizeEnterprise
	}

	return TitleCase(text)
}

// NormalizeRemoteBucket classifies a remote ratio or label as Remote, Hybrid or On-site
func NormalizeRemoteBucket(value string) string {
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "" {
		return RemoteHybrid
	}

	if n, err := strconv.ParseFloat(strings.Replace(text, "%", "", 1), 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		switch n {
		case 100:
			return RemoteFull
		case 0:
			return RemoteOnSite
		default:
			return RemoteHybrid
		}
	}

	switch {
	case strings.Contains(text, "remote"):
		return RemoteFull
	case strings.Contains(text, "on-site"), strings.Contains(text, "onsite"), strings.Contains(text, "office"):
		return RemoteOnSite
	default:
		return RemoteHybrid
	}
}

// Education is a canonical education label with its rank (lower is less)
type Education struct {
	Label string
	Rank  int
}

const (
	rankUnmatched   = 900
	rankUnspecified = 999
)

var educationOrder = []struct {
	label   string
	pattern *regexp.Regexp
	rank    int
}{
	{"High School", regexp.MustCompile(`(?i)(high school|secondary|diploma)`), 1},
	{"Associate's Degree", regexp.MustCompile(`(?i)associate`), 2},
	{"Bachelor's Degree", regexp.MustCompile(`(?i)(bachelor|undergrad|bs|ba)`), 3},
	{"Master's Degree", regexp.MustCompile(`(?i)(master|ms|ma|mba)`), 4},
	{"PhD", regexp.MustCompile(`(?i)(phd|doctorate)`), 5},
}

// NormalizeEducation ranks free-text education requirements; first matching tier wins
func NormalizeEducation(value string) Education {
	text := strings.TrimSpace(value)
	if text == "" {
		return Education{Label: NotSpecified, Rank: rankUnspecified}
	}
	for _, e := range educationOrder {
		if e.pattern.MatchString(text) {
			return Education{Label: e.label, Rank: e.rank}
		}
	}
	return Education{Label: text, Rank: rankUnmatched}
}

var nonNumeric = regexp.MustCompile(`[^\d.\-]`)

// ParseNumber strips everything but digits, dots and minus signs and parses the rest.
// Text without any digit is not a number.
func ParseNumber(value string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(value, "")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// SalaryKeys are the salary columns tried in order
var SalaryKeys = []string{"salary_usd", "salary_in_usd", "normalized_salary_usd", "salary_usd_normalized"}

// ParseSalary returns the first salary column holding a finite number
func ParseSalary(row domain.RawRow) *float64 {
	for _, key := range SalaryKeys {
		if n, ok := ParseNumber(row[key]); ok {
			return &n
		}
	}
	return nil
}

// DateKeys are the posting date columns tried in order
var DateKeys = []string{"posted_date", "date_posted", "job_posted_date", "posting_date", "posted_at", "date", "work_year"}

var yearOnly = regexp.MustCompile(`^\d{4}$`)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2006-01",
	time.RFC1123,
	time.RFC1123Z,
}

// ParsePostedDate returns the first date column that parses, in UTC.
// A bare four digit year is read as January 1 of that year.
func ParsePostedDate(row domain.RawRow) *time.Time {
	for _, key := range DateKeys {
		text := strings.TrimSpace(row[key])
		if text == "" {
			continue
		}
		if t, ok := parseDate(text); ok {
			return &t
		}
	}
	return nil
}

func parseDate(text string) (time.Time, bool) {
	if yearOnly.MatchString(text) {
		year, _ := strconv.Atoi(text)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

var skillCaseMap = map[string]string{
	"ai":         "AI",
	"api":        "API",
	"apis":       "APIs",
	"aws":        "AWS",
	"ci/cd":      "CI/CD",
	"gcp":        "GCP",
	"llm":        "LLM",
	"llms":       "LLMs",
	"langchain":  "LangChain",
	"ml":         "ML",
	"mlops":      "MLOps",
	"nlp":        "NLP",
	"opencv":     "OpenCV",
	"pytorch":    "PyTorch",
	"sql":        "SQL",
	"tensorflow": "TensorFlow",
}

var (
	skillStrip     = strings.NewReplacer("[", "", "]", "", `"`, "")
	skillSeparator = regexp.MustCompile(`[,;|/]`)
	mixedCase      = regexp.MustCompile(`[A-Z].*[a-z]|[a-z].*[A-Z]`)
	upperToken     = regexp.MustCompile(`^[A-Z0-9+\-#]+$`)
)

// ParseSkills splits a delimited skill list and canonicalises the casing of each entry
func ParseSkills(value string) []string {
	skills := []string{}
	if strings.TrimSpace(value) == "" {
		return skills
	}

	for _, part := range skillSeparator.Split(skillStrip.Replace(value), -1) {
		skill := strings.Trim(strings.TrimSpace(part), "'")
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		skills = append(skills, canonicalSkill(skill))
	}
	return skills
}

func canonicalSkill(skill string) string {
	if known, ok := skillCaseMap[strings.ToLower(skill)]; ok {
		return known
	}
	if mixedCase.MatchString(skill) || upperToken.MatchString(skill) {
		return skill
	}
	if utf8.RuneCountInString(skill) <= 3 {
		return strings.ToUpper(skill)
	}
	return TitleCase(skill)
}

// TitleCase lowercases text and capitalises the first letter of each space separated word
func TitleCase(value string) string {
	words := strings.Split(strings.ToLower(value), " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		out = append(out, strings.ToUpper(string(r))+w[size:])
	}
	return strings.Join(out, " ")
}

var (
	headerNonWord     = regexp.MustCompile(`[^\w]+`)
	headerUnderscores = regexp.MustCompile(`_+`)
)

// NormalizeHeader turns a CSV header cell into a snake_case column key
func NormalizeHeader(value string) string {
	h := strings.TrimSpace(strings.ToLower(value))
	h = strings.Trim(h, `"`)
	h = headerNonWord.ReplaceAllString(h, "_")
	h = headerUnderscores.ReplaceAllString(h, "_")
	return strings.Trim(h, "_")
}

// GetField returns the first non-blank value among keys, trimmed, else fallback
func GetField(row domain.RawRow, keys []string, fallback string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return fallback
}
