package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

func filterFixture() *Dataset {
	return NewDataset([]domain.Posting{
		job("Data Analyst", withCategories(`[{"category":"Information Technology"}]`), withSalary(3000, 5000),
			withExperience(1), withPosition("Executive"), withEmployment("Permanent")),
		job("Data Analyst", withCategories(`[{"category":"Banking and Finance"}]`), withSalary(5000, 7000),
			withExperience(4), withPosition("Senior Executive"), withEmployment("Full Time")),
		job("Accountant", withCategories(`[{"category":"Accounting / Auditing / Taxation"}]`), withSalary(4000, 4000),
			withExperience(8), withPosition("Professional"), withEmployment("Permanent")),
		job("Software Engineer", withCategories(`[{"category":"Information Technology"},{"category":"Engineering"}]`),
			withSalary(8000, 12000), withExperience(12), withPosition("Professional"), withEmployment("Contract")),
		job("Cook", withCategories("bad"), withPosition("Non-executive")),
	})
}

func titlesOf(d *Dataset) []string {
	titles := []string{}
	for _, p := range d.Postings() {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestDataset_Filter(t *testing.T) {
	dataset := filterFixture()

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{
			name:     "titles",
			criteria: domain.FilterCriteria{Titles: []string{"Data Analyst", "Cook"}},
			want:     []string{"Data Analyst", "Data Analyst", "Cook"},
		},
		{
			name:     "industry substring is case-insensitive",
			criteria: domain.FilterCriteria{Industries: []string{"information technology"}},
			want:     []string{"Data Analyst", "Software Engineer"},
		},
		{
			name:     "industries combine with OR",
			criteria: domain.FilterCriteria{Industries: []string{"finance", "AUDITING"}},
			want:     []string{"Data Analyst", "Accountant"},
		},
		{
			name:     "salary range is inclusive",
			criteria: domain.FilterCriteria{SalaryRange: &domain.SalaryRange{Min: 4000, Max: 6000}},
			want:     []string{"Data Analyst", "Data Analyst", "Accountant"},
		},
		{
			name:     "salary range excludes missing salaries",
			criteria: domain.FilterCriteria{SalaryRange: &domain.SalaryRange{Min: 0, Max: 1000000}},
			want:     []string{"Data Analyst", "Data Analyst", "Accountant", "Software Engineer"},
		},
		{
			name:     "zero salary range",
			criteria: domain.FilterCriteria{SalaryRange: &domain.SalaryRange{Min: 0, Max: 0}},
			want:     []string{},
		},
		{
			name:     "experience levels",
			criteria: domain.FilterCriteria{ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceJunior, domain.ExperienceExpert}},
			want:     []string{"Data Analyst", "Software Engineer"},
		},
		{
			name:     "position levels",
			criteria: domain.FilterCriteria{PositionLevels: []string{"Professional"}},
			want:     []string{"Accountant", "Software Engineer"},
		},
		{
			name:     "employment types",
			criteria: domain.FilterCriteria{EmploymentTypes: []string{"Permanent"}},
			want:     []string{"Data Analyst", "Accountant"},
		},
		{
			name: "dimensions combine with AND",
			criteria: domain.FilterCriteria{
				Titles:          []string{"Data Analyst", "Accountant"},
				PositionLevels:  []string{"Executive", "Professional"},
				EmploymentTypes: []string{"Permanent"},
				SalaryRange:     &domain.SalaryRange{Min: 3500, Max: 4500},
			},
			want: []string{"Data Analyst", "Accountant"},
		},
		{
			name: "no match",
			criteria: domain.FilterCriteria{
				Titles:     []string{"Cook"},
				Industries: []string{"Information Technology"},
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titlesOf(dataset.Filter(tt.criteria)))
		})
	}
}

func TestDataset_Filter_EmptyCriteriaRoundTrip(t *testing.T) {
	dataset := filterFixture()

	for _, criteria := range []domain.FilterCriteria{
		{},
		{Titles: []string{}, Industries: []string{}, ExperienceLevels: []domain.ExperienceLevel{}},
	} {
		filtered := dataset.Filter(criteria)
		require.Equal(t, dataset.Len(), filtered.Len())
		assert.Equal(t, dataset.Postings(), filtered.Postings())
	}
}

func TestDataset_Filter_DoesNotModifyBase(t *testing.T) {
	dataset := filterFixture()
	before := dataset.Postings()

	filtered := dataset.Filter(domain.FilterCriteria{Titles: []string{"Cook"}})
	require.Equal(t, 1, filtered.Len())

	assert.Equal(t, before, dataset.Postings())

	// Aggregations over a filtered view see only its rows
	assert.Equal(t, 1, filtered.MarketOverview().TotalJobs)
	assert.Equal(t, 5, dataset.MarketOverview().TotalJobs)
}
