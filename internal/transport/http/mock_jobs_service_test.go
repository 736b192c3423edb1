package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// MockJobsService is a mock implementation of JobsService
type MockJobsService struct {
	mock.Mock
}

func (m *MockJobsService) TopRoles(ctx context.Context, n int) ([]domain.RoleStats, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleStats), args.Error(1)
}

func (m *MockJobsService) IndustryStats(ctx context.Context) ([]domain.IndustryStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IndustryStats), args.Error(1)
}

func (m *MockJobsService) SalaryByPosition(ctx context.Context) ([]domain.PositionSalaryStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PositionSalaryStats), args.Error(1)
}

func (m *MockJobsService) SkillKeywords(ctx context.Context, n int) ([]domain.KeywordCount, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordCount), args.Error(1)
}

func (m *MockJobsService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	args := m.Called()
	return args.Get(0).(domain.FilterOptions), args.Error(1)
}

func (m *MockJobsService) Table(ctx context.Context, name string) (exporter.Table, error) {
	args := m.Called(name)
	return args.Get(0).(exporter.Table), args.Error(1)
}

func (m *MockJobsService) Overview(ctx context.Context, criteria domain.FilterCriteria) (domain.MarketOverview, error) {
	args := m.Called(criteria)
	return args.Get(0).(domain.MarketOverview), args.Error(1)
}

func (m *MockJobsService) EmploymentDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error) {
	args := m.Called(criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValueCount), args.Error(1)
}

func (m *MockJobsService) TopCompanies(ctx context.Context, criteria domain.FilterCriteria, n int) ([]domain.ValueCount, error) {
	args := m.Called(criteria, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValueCount), args.Error(1)
}

func (m *MockJobsService) SalaryHistogram(ctx context.Context, criteria domain.FilterCriteria, bins int) ([]domain.HistogramBin, error) {
	args := m.Called(criteria, bins)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistogramBin), args.Error(1)
}

func (m *MockJobsService) SalaryByExperience(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ExperienceSalaryStats, error) {
	args := m.Called(criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExperienceSalaryStats), args.Error(1)
}

func (m *MockJobsService) IndustrySalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.IndustrySalary, error) {
	args := m.Called(criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IndustrySalary), args.Error(1)
}

func (m *MockJobsService) SkillSalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.SkillSalary, error) {
	args := m.Called(criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillSalary), args.Error(1)
}

func (m *MockJobsService) ExperienceDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error) {
	args := m.Called(criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValueCount), args.Error(1)
}

func (m *MockJobsService) Postings(ctx context.Context, criteria domain.FilterCriteria, offset, limit int) (api.PostingsPage, error) {
	args := m.Called(criteria, offset, limit)
	return args.Get(0).(api.PostingsPage), args.Error(1)
}
