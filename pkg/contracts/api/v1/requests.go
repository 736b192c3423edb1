// Package api contains the HTTP contract of the job market API.
// Version v1 represents the current stable API version.
package api

import (
	"math"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// FilterQuery carries filter criteria decoded from query parameters.
// Repeatable parameters map to slices.
type FilterQuery struct {
	Titles          []string `json:"title" query:"title" validate:"dive,max=200"`
	Industries      []string `json:"industry" query:"industry" validate:"dive,max=200"`
	SalaryMin       *float64 `json:"salary_min" query:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax       *float64 `json:"salary_max" query:"salary_max" validate:"omitempty,gte=0"`
	Experience      []string `json:"experience" query:"experience" validate:"dive,experience_level"`
	Positions       []string `json:"position" query:"position" validate:"dive,max=200"`
	EmploymentTypes []string `json:"employment_type" query:"employment_type" validate:"dive,max=200"`
}

// Criteria converts the query into domain filter criteria. A salary range is
// set when either bound is given; a missing bound is open.
func (q FilterQuery) Criteria() domain.FilterCriteria {
	criteria := domain.FilterCriteria{
		Titles:          q.Titles,
		Industries:      q.Industries,
		PositionLevels:  q.Positions,
		EmploymentTypes: q.EmploymentTypes,
	}

	if len(q.Experience) > 0 {
		criteria.ExperienceLevels = make([]domain.ExperienceLevel, len(q.Experience))
		for i, e := range q.Experience {
			criteria.ExperienceLevels[i] = domain.ExperienceLevel(e)
		}
	}

	if q.SalaryMin != nil || q.SalaryMax != nil {
		salaryRange := &domain.SalaryRange{Min: 0, Max: math.MaxFloat64}
		if q.SalaryMin != nil {
			salaryRange.Min = *q.SalaryMin
		}
		if q.SalaryMax != nil {
			salaryRange.Max = *q.SalaryMax
		}
		criteria.SalaryRange = salaryRange
	}

	return criteria
}

// TopNRequest limits a ranked result
type TopNRequest struct {
	N int `json:"n" query:"n" validate:"min=1,max=1000"`
}

// HistogramRequest selects the number of salary histogram bins
type HistogramRequest struct {
	Bins int `json:"bins" query:"bins" validate:"min=1,max=200"`
}

// PageRequest represents offset pagination over postings
type PageRequest struct {
	Limit  int `json:"limit" query:"limit" validate:"min=1,max=1000"`
	Offset int `json:"offset" query:"offset" validate:"min=0"`
}

// ExportRequest selects an aggregation table and a file format
type ExportRequest struct {
	Table  string `json:"table" param:"table" validate:"required,oneof=roles industries positions skills companies"`
	Format string `json:"format" param:"format" validate:"required,oneof=csv xlsx"`
}
