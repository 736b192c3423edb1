package dataprocessing

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

func TestCleanRecord(t *testing.T) {
	tests := []struct {
		name  string
		raw   domain.RawPosting
		check func(t *testing.T, p domain.Posting, stats ProcessingStats)
	}{
		{
			name: "average salary filled from min and max",
			raw: domain.RawPosting{
				domain.ColumnSalaryMinimum: "3000",
				domain.ColumnSalaryMaximum: "5000",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				require.NotNil(t, p.AverageSalary)
				assert.Equal(t, 4000.0, *p.AverageSalary)
				assert.Equal(t, 1, stats.FilledAverages)
			},
		},
		{
			name: "existing average salary kept",
			raw: domain.RawPosting{
				domain.ColumnSalaryMinimum: "3000",
				domain.ColumnSalaryMaximum: "5000",
				domain.ColumnAverageSalary: "4500",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				require.NotNil(t, p.AverageSalary)
				assert.Equal(t, 4500.0, *p.AverageSalary)
				assert.Zero(t, stats.FilledAverages)
			},
		},
		{
			name: "average salary stays missing without both bounds",
			raw: domain.RawPosting{
				domain.ColumnSalaryMinimum: "3000",
			},
			check: func(t *testing.T, p domain.Posting, _ ProcessingStats) {
				assert.Nil(t, p.AverageSalary)
			},
		},
		{
			name: "non-numeric values become missing",
			raw: domain.RawPosting{
				domain.ColumnSalaryMinimum: "abc",
				domain.ColumnSalaryMaximum: "3,000",
				domain.ColumnMinExperience: "two",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				assert.Nil(t, p.SalaryMinimum)
				assert.Nil(t, p.SalaryMaximum)
				assert.Nil(t, p.MinYearsExperience)
				assert.Equal(t, 3, stats.CoercedValues)
			},
		},
		{
			name: "missing markers are not coercion failures",
			raw: domain.RawPosting{
				domain.ColumnSalaryMinimum: "NaN",
				domain.ColumnSalaryMaximum: "",
				domain.ColumnMinExperience: "null",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				assert.Nil(t, p.SalaryMinimum)
				assert.Nil(t, p.SalaryMaximum)
				assert.Nil(t, p.MinYearsExperience)
				assert.Zero(t, stats.CoercedValues)
			},
		},
		{
			name: "blank categoricals become Unknown",
			raw: domain.RawPosting{
				domain.ColumnPositionLevels: "   ",
				domain.ColumnEmployment:     "NA",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				assert.Equal(t, domain.UnknownValue, p.PositionLevel)
				assert.Equal(t, domain.UnknownValue, p.EmploymentType)
				assert.Equal(t, 2, stats.DefaultedCategoricals)
			},
		},
		{
			name: "categoricals kept as given",
			raw: domain.RawPosting{
				domain.ColumnPositionLevels: "Senior Executive",
				domain.ColumnEmployment:     "Permanent",
			},
			check: func(t *testing.T, p domain.Posting, _ ProcessingStats) {
				assert.Equal(t, "Senior Executive", p.PositionLevel)
				assert.Equal(t, "Permanent", p.EmploymentType)
			},
		},
		{
			name: "counters default when missing",
			raw:  domain.RawPosting{},
			check: func(t *testing.T, p domain.Posting, _ ProcessingStats) {
				assert.Equal(t, 0.0, p.Applications)
				assert.Equal(t, 0.0, p.Views)
				assert.Equal(t, 1.0, p.Vacancies)
			},
		},
		{
			name: "zero vacancies kept",
			raw: domain.RawPosting{
				domain.ColumnVacancies: "0",
			},
			check: func(t *testing.T, p domain.Posting, _ ProcessingStats) {
				assert.Equal(t, 0.0, p.Vacancies)
			},
		},
		{
			name: "posting date parsed",
			raw: domain.RawPosting{
				domain.ColumnPostingDate: "2023-05-01",
			},
			check: func(t *testing.T, p domain.Posting, _ ProcessingStats) {
				require.NotNil(t, p.PostingDate)
				assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *p.PostingDate)
			},
		},
		{
			name: "unparseable posting date becomes missing",
			raw: domain.RawPosting{
				domain.ColumnPostingDate: "last tuesday",
			},
			check: func(t *testing.T, p domain.Posting, stats ProcessingStats) {
				assert.Nil(t, p.PostingDate)
				assert.Equal(t, 1, stats.UnparsedDates)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats ProcessingStats
			p := cleanRecord(tt.raw, &stats)
			normalize(&p, &stats)
			tt.check(t, p, stats)
		})
	}
}

func TestParsePostingDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2023-05-01T08:30:00Z", time.Date(2023, 5, 1, 8, 30, 0, 0, time.UTC), true},
		{"2023-05-01T16:30:00+08:00", time.Date(2023, 5, 1, 8, 30, 0, 0, time.UTC), true},
		{"2023-05-01 08:30:00", time.Date(2023, 5, 1, 8, 30, 0, 0, time.UTC), true},
		{" 2023-05-01 ", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"05/01/2023", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"2023-13-45", time.Time{}, false},
		{"soon", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parsePostingDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestProcessor_Process_Invariants(t *testing.T) {
	loader := NewLoader(slog.Default())
	dataset, err := loader.Load(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, dataset.Len())

	for i, p := range dataset.Postings() {
		if p.SalaryMinimum != nil && p.SalaryMaximum != nil {
			require.NotNil(t, p.AverageSalary, "row %d", i)
			if i != 2 {
				assert.Equal(t, (*p.SalaryMinimum+*p.SalaryMaximum)/2, *p.AverageSalary, "row %d", i)
			}
		}
		assert.NotEmpty(t, strings.TrimSpace(p.PositionLevel), "row %d", i)
		assert.NotEmpty(t, strings.TrimSpace(p.EmploymentType), "row %d", i)
		assert.Equal(t, EngagementScore(p.Applications, p.Views, p.Vacancies), p.EngagementScore, "row %d", i)
		assert.Equal(t, ClassifyExperience(p.MinYearsExperience), p.ExpCategory, "row %d", i)
	}
}

func TestProcessor_ProcessPostings_Idempotent(t *testing.T) {
	ctx := context.Background()
	processor := NewProcessor(nil)

	first, _ := processor.Process(ctx, []domain.RawPosting{{
		domain.ColumnTitle:         "Data Analyst",
		domain.ColumnSalaryMinimum: "3000",
		domain.ColumnSalaryMaximum: "5000",
		domain.ColumnCategories:    `[{"category":"IT"}]`,
		domain.ColumnVacancies:     "2",
	}})
	second, stats := processor.ProcessPostings(ctx, first.Postings())

	assert.Equal(t, first.Postings(), second.Postings())
	assert.Zero(t, stats.FilledAverages)
	assert.Zero(t, stats.DefaultedCategoricals)
}

func TestNewDataset_DerivesFields(t *testing.T) {
	input := []domain.Posting{job("Data Analyst", withSalary(3000, 5000), withPosition(""))}
	dataset := NewDataset(input)

	postings := dataset.Postings()
	require.Len(t, postings, 1)
	got := postings[0]
	require.NotNil(t, got.AverageSalary)
	assert.Equal(t, 4000.0, *got.AverageSalary)
	assert.Equal(t, domain.UnknownValue, got.PositionLevel)
	assert.Equal(t, "Information Technology", got.MainCategory)

	assert.Empty(t, input[0].MainCategory, "input must not be modified")
	assert.Equal(t, "", input[0].PositionLevel)
}

func TestDataset_Page(t *testing.T) {
	dataset := NewDataset([]domain.Posting{job("a"), job("b"), job("c")})

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{"first page", 0, 2, []string{"a", "b"}},
		{"last partial page", 2, 2, []string{"c"}},
		{"past the end", 5, 2, []string{}},
		{"negative offset", -1, 1, []string{"a"}},
		{"zero limit", 0, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles := []string{}
			for _, p := range dataset.Page(tt.offset, tt.limit) {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}
