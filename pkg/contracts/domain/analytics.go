package domain

// RoleStats represents aggregate statistics for a single job title
type RoleStats struct {
	Role        string   `json:"role"`
	SalaryMin   *float64 `json:"salary_min"`
	Count       int      `json:"count"`
	SalaryMax   *float64 `json:"salary_max"`
	Apps        float64  `json:"apps"`
	Views       float64  `json:"views"`
	Competition *float64 `json:"competition"`
	MinExp      *float64 `json:"min_exp"`
}

// IndustryStats represents aggregate statistics for a main category
type IndustryStats struct {
	Industry    string   `json:"industry"`
	JobsCount   int      `json:"jobs_count"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Vacancies   float64  `json:"vacancies"`
	Competition *float64 `json:"competition"`
	MinExp      *float64 `json:"min_exp"`
}

// PositionSalaryStats represents salary benchmarks for a position level
type PositionSalaryStats struct {
	Position        string   `json:"position"`
	SalaryMinAvg    *float64 `json:"salary_min_avg"`
	SalaryMinMedian *float64 `json:"salary_min_median"`
	Count           int      `json:"count"`
	SalaryMaxAvg    *float64 `json:"salary_max_avg"`
	SalaryMaxMedian *float64 `json:"salary_max_median"`
	AvgSalary       *float64 `json:"avg_salary"`
}

// KeywordCount represents how many posting titles mention a skill keyword
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// MarketOverview represents headline statistics for a set of postings
type MarketOverview struct {
	TotalJobs       int      `json:"total_jobs"`
	MedianSalary    *float64 `json:"median_salary"`
	AvgSalary       *float64 `json:"avg_salary"`
	TopCompany      string   `json:"top_company"`
	AvgApplications *float64 `json:"avg_applications"`
	AvgViews        *float64 `json:"avg_views"`
	TotalVacancies  float64  `json:"total_vacancies"`
}

// ExperienceSalaryStats summarizes average salary within one experience bucket
type ExperienceSalaryStats struct {
	Level  ExperienceLevel `json:"level"`
	Mean   *float64        `json:"mean"`
	Median *float64        `json:"median"`
	Min    *float64        `json:"min"`
	Max    *float64        `json:"max"`
	Count  int             `json:"count"`
}

// IndustrySalary is the salary range of one main category
type IndustrySalary struct {
	Industry      string   `json:"industry"`
	AverageSalary *float64 `json:"average_salary"`
	SalaryMin     *float64 `json:"salary_min"`
	SalaryMax     *float64 `json:"salary_max"`
}

// SkillSalary is the average salary of postings whose title mentions a keyword
type SkillSalary struct {
	Skill     string   `json:"skill"`
	AvgSalary *float64 `json:"avg_salary"`
	Count     int      `json:"count"`
}

// ValueCount is a single entry of a value-frequency table
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// HistogramBin is one equal-width bucket of a salary distribution
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// FilterOptions lists the values a dashboard can offer as filter choices
type FilterOptions struct {
	Industries       []string          `json:"industries"`
	PositionLevels   []string          `json:"position_levels"`
	EmploymentTypes  []string          `json:"employment_types"`
	ExperienceLevels []ExperienceLevel `json:"experience_levels"`
	SalaryMaximum    *float64          `json:"salary_maximum"`
	SalaryMaximumP90 *float64          `json:"salary_maximum_p90"`
}

// SalaryRange is an inclusive range on average salary
type SalaryRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// FilterCriteria selects a subset of postings.
// Empty dimensions are not applied; dimensions combine with AND.
type FilterCriteria struct {
	Titles           []string          `json:"titles,omitempty"`
	Industries       []string          `json:"industries,omitempty"`
	SalaryRange      *SalaryRange      `json:"salary_range,omitempty" validate:"omitempty"`
	ExperienceLevels []ExperienceLevel `json:"experience_levels,omitempty" validate:"dive,experience_level"`
	PositionLevels   []string          `json:"position_levels,omitempty"`
	EmploymentTypes  []string          `json:"employment_types,omitempty"`
}

// IsEmpty returns true if no criteria are set
func (c FilterCriteria) IsEmpty() bool {
	return len(c.Titles) == 0 &&
		len(c.Industries) == 0 &&
		c.SalaryRange == nil &&
		len(c.ExperienceLevels) == 0 &&
		len(c.PositionLevels) == 0 &&
		len(c.EmploymentTypes) == 0
}
