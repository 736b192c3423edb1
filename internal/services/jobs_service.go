package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
	"github.com/kurniaw/sg-job-market-insight/internal/dataprocessing"
	apperrors "github.com/kurniaw/sg-job-market-insight/internal/errors"
	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	"github.com/kurniaw/sg-job-market-insight/internal/infrastructure"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Result sizes of fixed-size queries
const (
	skillSalaryKeywords = 10
	exportTopRoles      = config.DefaultTopRoles
	exportSkills        = config.DefaultSkillKeywords
	exportCompanies     = config.DefaultTopCompanies
)

// JobsService answers job market queries over the loaded postings dataset
type JobsService struct {
	loader  *dataprocessing.Loader
	metrics *infrastructure.JobsMetrics
	logger  *slog.Logger
	current atomic.Pointer[loadedDataset]
}

type loadedDataset struct {
	dataset  *dataprocessing.Dataset
	source   string
	loadedAt time.Time
}

// NewJobsService creates a jobs service. metrics may be nil.
func NewJobsService(metrics *infrastructure.JobsMetrics, logger *slog.Logger) *JobsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobsService{
		loader:  dataprocessing.NewLoader(logger),
		metrics: metrics,
		logger:  logger.With(slog.String("component", "jobs_service")),
	}
}

// Load loads the configured postings source. A snapshot is used instead of
// the source when PreferSnapshot is set and the snapshot file exists.
func (s *JobsService) Load(ctx context.Context, cfg config.DataConfig) error {
	path := cfg.Source
	if cfg.PreferSnapshot && cfg.Snapshot != "" && config.FileExists(cfg.Snapshot) {
		path = cfg.Snapshot
	}

	start := time.Now()
	dataset, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}

	s.metrics.RecordDatasetLoad(ctx, path, dataset.Len(), time.Since(start))
	s.SetDataset(dataset, path)
	return nil
}

// SetDataset replaces the dataset queries run against
func (s *JobsService) SetDataset(dataset *dataprocessing.Dataset, source string) {
	s.current.Store(&loadedDataset{
		dataset:  dataset,
		source:   source,
		loadedAt: time.Now(),
	})

	s.logger.Info("dataset ready",
		slog.String("source", source),
		slog.Int("rows", dataset.Len()))
}

// Info describes the loaded dataset. ok is false before the first load.
func (s *JobsService) Info() (info api.DatasetInfo, ok bool) {
	loaded := s.current.Load()
	if loaded == nil {
		return api.DatasetInfo{}, false
	}
	return api.DatasetInfo{
		Source:   loaded.source,
		Rows:     loaded.dataset.Len(),
		LoadedAt: loaded.loadedAt,
	}, true
}

// Overview returns headline statistics of the filtered view
func (s *JobsService) Overview(ctx context.Context, criteria domain.FilterCriteria) (domain.MarketOverview, error) {
	return filteredQuery(ctx, s, "overview", criteria, (*dataprocessing.Dataset).MarketOverview)
}

// TopRoles returns the n most advertised roles of the full dataset
func (s *JobsService) TopRoles(ctx context.Context, n int) ([]domain.RoleStats, error) {
	return query(ctx, s, "top_roles", func(d *dataprocessing.Dataset) []domain.RoleStats {
		return d.TopRoles(n)
	})
}

// IndustryStats returns per-industry statistics of the full dataset
func (s *JobsService) IndustryStats(ctx context.Context) ([]domain.IndustryStats, error) {
	return query(ctx, s, "industry_stats", (*dataprocessing.Dataset).IndustryStats)
}

// SalaryByPosition returns salary benchmarks per position level of the full dataset
func (s *JobsService) SalaryByPosition(ctx context.Context) ([]domain.PositionSalaryStats, error) {
	return query(ctx, s, "salary_by_position", (*dataprocessing.Dataset).SalaryByPosition)
}

// SkillKeywords returns the n most frequent skill keywords of the full dataset
func (s *JobsService) SkillKeywords(ctx context.Context, n int) ([]domain.KeywordCount, error) {
	return query(ctx, s, "skill_keywords", func(d *dataprocessing.Dataset) []domain.KeywordCount {
		return d.SkillKeywords(n)
	})
}

// FilterOptions returns the filter choices offered by the full dataset
func (s *JobsService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	return query(ctx, s, "filter_options", (*dataprocessing.Dataset).FilterOptions)
}

// EmploymentDistribution counts postings per employment type in the filtered view
func (s *JobsService) EmploymentDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error) {
	return filteredQuery(ctx, s, "employment_distribution", criteria, (*dataprocessing.Dataset).EmploymentDistribution)
}

// TopCompanies returns the n companies with the most postings in the filtered view
func (s *JobsService) TopCompanies(ctx context.Context, criteria domain.FilterCriteria, n int) ([]domain.ValueCount, error) {
	return filteredQuery(ctx, s, "top_companies", criteria, func(d *dataprocessing.Dataset) []domain.ValueCount {
		return d.TopCompanies(n)
	})
}

// SalaryHistogram bins the average salaries of the filtered view
func (s *JobsService) SalaryHistogram(ctx context.Context, criteria domain.FilterCriteria, bins int) ([]domain.HistogramBin, error) {
	return filteredQuery(ctx, s, "salary_histogram", criteria, func(d *dataprocessing.Dataset) []domain.HistogramBin {
		return d.SalaryHistogram(bins)
	})
}

// SalaryByExperience summarizes salaries per experience bucket of the filtered view
func (s *JobsService) SalaryByExperience(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ExperienceSalaryStats, error) {
	return filteredQuery(ctx, s, "salary_by_experience", criteria, (*dataprocessing.Dataset).SalaryByExperience)
}

// IndustrySalaries returns the best paying industries of the filtered view
func (s *JobsService) IndustrySalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.IndustrySalary, error) {
	return filteredQuery(ctx, s, "industry_salaries", criteria, (*dataprocessing.Dataset).IndustrySalaries)
}

// ExperienceDistribution counts postings per experience bucket of the filtered view
func (s *JobsService) ExperienceDistribution(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ValueCount, error) {
	return filteredQuery(ctx, s, "experience_distribution", criteria, (*dataprocessing.Dataset).ExperienceDistribution)
}

// SkillSalaries returns the average salary in the filtered view of postings
// mentioning each of the ten most frequent keywords of the full dataset
func (s *JobsService) SkillSalaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.SkillSalary, error) {
	return observe(ctx, s, "skill_salaries", func(loaded *loadedDataset) ([]domain.SkillSalary, error) {
		view, err := filter(loaded.dataset, criteria)
		if err != nil {
			return nil, err
		}
		keywords := loaded.dataset.SkillKeywords(skillSalaryKeywords)
		return view.SkillSalaries(keywords), nil
	})
}

// Postings returns one page of the filtered postings
func (s *JobsService) Postings(ctx context.Context, criteria domain.FilterCriteria, offset, limit int) (api.PostingsPage, error) {
	return filteredQuery(ctx, s, "postings", criteria, func(d *dataprocessing.Dataset) api.PostingsPage {
		items := d.Page(offset, limit)
		return api.PostingsPage{
			Total:  d.Len(),
			Offset: offset,
			Limit:  limit,
			Count:  len(items),
			Items:  items,
		}
	})
}

// Table builds an exportable aggregation table of the full dataset
func (s *JobsService) Table(ctx context.Context, name string) (exporter.Table, error) {
	return observe(ctx, s, "export_"+name, func(loaded *loadedDataset) (exporter.Table, error) {
		d := loaded.dataset
		switch name {
		case exporter.TableRoles:
			return exporter.RolesTable(d.TopRoles(exportTopRoles)), nil
		case exporter.TableIndustries:
			return exporter.IndustriesTable(d.IndustryStats()), nil
		case exporter.TablePositions:
			return exporter.PositionsTable(d.SalaryByPosition()), nil
		case exporter.TableSkills:
			return exporter.SkillsTable(d.SkillKeywords(exportSkills)), nil
		case exporter.TableCompanies:
			return exporter.CompaniesTable(d.TopCompanies(exportCompanies)), nil
		default:
			return exporter.Table{}, apperrors.NewNotFoundError("table "+name, ErrUnknownTable).WithContext("table", name)
		}
	})
}

// Tables builds every exportable table
func (s *JobsService) Tables(ctx context.Context) ([]exporter.Table, error) {
	tables := make([]exporter.Table, 0, len(exporter.TableNames()))
	for _, name := range exporter.TableNames() {
		t, err := s.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// query runs fn against the full dataset
func query[T any](ctx context.Context, s *JobsService, name string, fn func(*dataprocessing.Dataset) T) (T, error) {
	return observe(ctx, s, name, func(loaded *loadedDataset) (T, error) {
		return fn(loaded.dataset), nil
	})
}

// filteredQuery runs fn against the postings selected by criteria
func filteredQuery[T any](ctx context.Context, s *JobsService, name string, criteria domain.FilterCriteria, fn func(*dataprocessing.Dataset) T) (T, error) {
	return observe(ctx, s, name, func(loaded *loadedDataset) (T, error) {
		view, err := filter(loaded.dataset, criteria)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(view), nil
	})
}

// observe runs one query with the dataset check, metrics and logging
func observe[T any](ctx context.Context, s *JobsService, name string, fn func(*loadedDataset) (T, error)) (result T, err error) {
	start := time.Now()
	defer func() {
		duration := time.Since(start)
		s.metrics.RecordQuery(ctx, name, duration, err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			s.logger.WarnContext(ctx, "query failed",
				slog.String("query", name),
				slog.String("error", err.Error()))
			return
		}
		infrastructure.AddSpanEvent(ctx, "query completed", attribute.String("query", name))
		s.logger.DebugContext(ctx, "query completed",
			slog.String("query", name),
			slog.Duration("duration", duration))
	}()

	if err = ctx.Err(); err != nil {
		return result, err
	}

	loaded := s.current.Load()
	if loaded == nil {
		return result, apperrors.NewDataUnavailableError("postings dataset is not loaded", ErrDatasetNotLoaded)
	}

	result, err = fn(loaded)
	if err != nil {
		return result, err
	}

	// Aggregations are not interruptible; report a deadline that passed meanwhile
	if err = ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// filter validates criteria and applies them. Empty criteria select the
// dataset itself.
func filter(d *dataprocessing.Dataset, criteria domain.FilterCriteria) (*dataprocessing.Dataset, error) {
	if criteria.IsEmpty() {
		return d, nil
	}
	if err := checkCriteria(criteria); err != nil {
		return nil, err
	}
	return d.Filter(criteria), nil
}

func checkCriteria(c domain.FilterCriteria) error {
	invalid := func(message string) error {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, message, ErrInvalidCriteria)
	}

	if r := c.SalaryRange; r != nil {
		if r.Min < 0 || r.Max < 0 {
			return invalid("salary bounds must not be negative")
		}
		if r.Min > r.Max {
			return invalid(fmt.Sprintf("salary minimum %.0f exceeds maximum %.0f", r.Min, r.Max))
		}
	}
	for _, level := range c.ExperienceLevels {
		if !level.IsValid() {
			return invalid(fmt.Sprintf("unknown experience level %q", level))
		}
	}
	return nil
}
