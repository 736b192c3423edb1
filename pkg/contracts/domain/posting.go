package domain

import (
	"time"
)

// UnknownValue is the placeholder for missing categorical values
const UnknownValue = "Unknown"

// OthersCategory is the main category of postings without parseable categories
const OthersCategory = "Others"

// ExperienceLevel is a discretized minimum-years-of-experience requirement
type ExperienceLevel string

const (
	ExperienceEntry   ExperienceLevel = "Entry Level"
	ExperienceJunior  ExperienceLevel = "Junior (0-2y)"
	ExperienceMid     ExperienceLevel = "Mid (2-5y)"
	ExperienceSenior  ExperienceLevel = "Senior (5-10y)"
	ExperienceExpert  ExperienceLevel = "Expert (10y+)"
	ExperienceUnknown ExperienceLevel = "" // missing or out-of-range experience
)

// ExperienceLevels lists the experience buckets in ascending order
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{
		ExperienceEntry,
		ExperienceJunior,
		ExperienceMid,
		ExperienceSenior,
		ExperienceExpert,
	}
}

// IsValid reports whether the level is one of the known buckets
func (l ExperienceLevel) IsValid() bool {
	for _, known := range ExperienceLevels() {
		if l == known {
			return true
		}
	}
	return false
}

// Posting represents a single job advertisement after cleaning.
// Optional numeric fields are nil when the source value was missing or malformed.
type Posting struct {
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	SalaryMinimum  *float64   `json:"salary_minimum"`
	SalaryMaximum  *float64   `json:"salary_maximum"`
	AverageSalary  *float64   `json:"average_salary"`
	PositionLevel  string     `json:"position_level"`
	EmploymentType string     `json:"employment_type"`
	CategoriesRaw  string     `json:"-"`
	PostingDate    *time.Time `json:"posting_date,omitempty"`
	Applications   float64    `json:"applications"`
	Views          float64    `json:"views"`
	Vacancies      float64    `json:"vacancies"`

	MinYearsExperience *float64 `json:"min_years_experience"`

	// Derived at load time
	MainCategory    string          `json:"main_category"`
	EngagementScore float64         `json:"engagement_score"`
	ExpCategory     ExperienceLevel `json:"exp_category"`
}

// RawPosting is an uncleaned row keyed by source column name
type RawPosting map[string]string

// Source column names of the job postings dataset
const (
	ColumnTitle          = "title"
	ColumnCompany        = "postedCompany_name"
	ColumnSalaryMinimum  = "salary_minimum"
	ColumnSalaryMaximum  = "salary_maximum"
	ColumnAverageSalary  = "average_salary"
	ColumnPositionLevels = "positionLevels"
	ColumnEmployment     = "employmentTypes"
	ColumnCategories     = "categories"
	ColumnPostingDate    = "metadata_newPostingDate"
	ColumnApplications   = "metadata_totalNumberJobApplication"
	ColumnViews          = "metadata_totalNumberOfView"
	ColumnVacancies      = "numberOfVacancies"
	ColumnMinExperience  = "minimumYearsExperience"
)

// Columns returns every source column consumed by the loader
func Columns() []string {
	return []string{
		ColumnTitle,
		ColumnCompany,
		ColumnSalaryMinimum,
		ColumnSalaryMaximum,
		ColumnAverageSalary,
		ColumnPositionLevels,
		ColumnEmployment,
		ColumnCategories,
		ColumnPostingDate,
		ColumnApplications,
		ColumnViews,
		ColumnVacancies,
		ColumnMinExperience,
	}
}
