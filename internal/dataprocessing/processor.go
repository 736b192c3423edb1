package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Default values for missing counters
const (
	defaultApplications = 0
	defaultViews        = 0
	defaultVacancies    = 1
)

// missingMarkers are cell values read as missing, matching common CSV exports
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// postingDateLayouts are tried in order when parsing the posting date
var postingDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02 Jan 2006",
	"2 January 2006",
}

// Processor cleans raw rows and computes derived fields
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a new processor
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger.With(slog.String("component", "processor")),
	}
}

// Process cleans every raw row and returns the resulting dataset.
// Malformed values never abort processing; they are counted in the stats.
func (p *Processor) Process(ctx context.Context, rows []domain.RawPosting) (*Dataset, ProcessingStats) {
	var stats ProcessingStats
	postings := make([]domain.Posting, 0, len(rows))
	for _, raw := range rows {
		posting := cleanRecord(raw, &stats)
		normalize(&posting, &stats)
		derive(&posting)
		postings = append(postings, posting)
	}
	stats.Rows = len(postings)

	p.logStats(ctx, stats)
	return newDataset(postings), stats
}

// ProcessPostings normalizes already typed postings, such as rows read back
// from a snapshot, and recomputes their derived fields.
func (p *Processor) ProcessPostings(ctx context.Context, postings []domain.Posting) (*Dataset, ProcessingStats) {
	var stats ProcessingStats
	out := make([]domain.Posting, len(postings))
	for i, posting := range postings {
		normalize(&posting, &stats)
		derive(&posting)
		out[i] = posting
	}
	stats.Rows = len(out)

	p.logStats(ctx, stats)
	return newDataset(out), stats
}

func (p *Processor) logStats(ctx context.Context, stats ProcessingStats) {
	p.logger.InfoContext(ctx, "postings processed",
		slog.Int("rows", stats.Rows),
		slog.Int("filled_averages", stats.FilledAverages),
		slog.Int("defaulted_categoricals", stats.DefaultedCategoricals))

	if stats.CoercedValues > 0 || stats.UnparsedDates > 0 {
		p.logger.DebugContext(ctx, "malformed values replaced",
			slog.Int("coerced_values", stats.CoercedValues),
			slog.Int("unparsed_dates", stats.UnparsedDates))
	}
}

// cleanRecord coerces the source columns of one row into typed fields
func cleanRecord(raw domain.RawPosting, stats *ProcessingStats) domain.Posting {
	posting := domain.Posting{
		Title:              textValue(raw[domain.ColumnTitle]),
		Company:            textValue(raw[domain.ColumnCompany]),
		SalaryMinimum:      numericValue(raw[domain.ColumnSalaryMinimum], stats),
		SalaryMaximum:      numericValue(raw[domain.ColumnSalaryMaximum], stats),
		AverageSalary:      numericValue(raw[domain.ColumnAverageSalary], stats),
		PositionLevel:      textValue(raw[domain.ColumnPositionLevels]),
		EmploymentType:     textValue(raw[domain.ColumnEmployment]),
		CategoriesRaw:      textValue(raw[domain.ColumnCategories]),
		PostingDate:        dateValue(raw[domain.ColumnPostingDate], stats),
		Applications:       counterValue(raw[domain.ColumnApplications], defaultApplications, stats),
		Views:              counterValue(raw[domain.ColumnViews], defaultViews, stats),
		Vacancies:          counterValue(raw[domain.ColumnVacancies], defaultVacancies, stats),
		MinYearsExperience: numericValue(raw[domain.ColumnMinExperience], stats),
	}
	return posting
}

// normalize enforces the posting invariants. It is idempotent.
func normalize(p *domain.Posting, stats *ProcessingStats) {
	if strings.TrimSpace(p.PositionLevel) == "" {
		p.PositionLevel = domain.UnknownValue
		stats.DefaultedCategoricals++
	}
	if strings.TrimSpace(p.EmploymentType) == "" {
		p.EmploymentType = domain.UnknownValue
		stats.DefaultedCategoricals++
	}

	if p.AverageSalary == nil && p.SalaryMinimum != nil && p.SalaryMaximum != nil {
		avg := (*p.SalaryMinimum + *p.SalaryMaximum) / 2
		p.AverageSalary = &avg
		stats.FilledAverages++
	}

	if math.IsNaN(p.Applications) {
		p.Applications = defaultApplications
	}
	if math.IsNaN(p.Views) {
		p.Views = defaultViews
	}
	if math.IsNaN(p.Vacancies) {
		p.Vacancies = defaultVacancies
	}
}

func isMissing(cell string) bool {
	_, ok := missingMarkers[strings.TrimSpace(cell)]
	return ok
}

func textValue(cell string) string {
	if isMissing(cell) {
		return ""
	}
	return cell
}

// numericValue returns nil for missing or non-numeric cells
func numericValue(cell string, stats *ProcessingStats) *float64 {
	if isMissing(cell) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		stats.CoercedValues++
		return nil
	}
	return &v
}

func counterValue(cell string, fallback float64, stats *ProcessingStats) float64 {
	if v := numericValue(cell, stats); v != nil {
		return *v
	}
	return fallback
}

func dateValue(cell string, stats *ProcessingStats) *time.Time {
	if isMissing(cell) {
		return nil
	}
	if t, ok := parsePostingDate(cell); ok {
		return &t
	}
	stats.UnparsedDates++
	return nil
}

func parsePostingDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layout := range postingDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
