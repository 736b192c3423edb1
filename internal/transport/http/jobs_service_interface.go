package http

import (
	"context"

	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// JobsService defines the job market queries served over HTTP
type JobsService interface {
	// Full dataset
	TopRoles(ctx context.Context, n int) ([]domain.RoleStats, error)
	IndustryStats(ctx context.Context) ([]domain.IndustryStats, error)
	SalaryByPosition(ctx context.Context) ([]domain.PositionSalaryStats, error)
	SkillKeywords(ctx context.Context, n int) ([]domain.KeywordCount, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	Table(ctx context.Context, name string) (exporter.Table, error)

	// Filtered view
	Overview(ctx context.Context, criteria domain.FilterCriteria) (domain.MarketOverview, error)
	EmploymentDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error)
	TopCompanies(ctx context.Context, criteria domain.FilterCriteria, n int) ([]domain.ValueCount, error)
	SalaryHistogram(ctx context.Context, criteria domain.FilterCriteria, bins int) ([]domain.HistogramBin, error)
	SalaryByExperience(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ExperienceSalaryStats, error)
	IndustrySalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.IndustrySalary, error)
	SkillSalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.SkillSalary, error)
	ExperienceDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error)
	Postings(ctx context.Context, criteria domain.FilterCriteria, offset, limit int) (api.PostingsPage, error)
}
