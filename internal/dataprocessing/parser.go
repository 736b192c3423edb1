package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/kurniaw/sg-job-market-insight/internal/errors"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// ErrDataUnavailable is wrapped by every error caused by a missing or unreadable source
var ErrDataUnavailable = errors.New("data unavailable")

// utf8BOM is stripped from the start of CSV sources
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Supported source formats, selected by file extension
const (
	FormatCSV     = ".csv"
	FormatXLSX    = ".xlsx"
	FormatParquet = ".parquet"
)

// Loader reads a postings source and turns it into a cleaned dataset
type Loader struct {
	logger    *slog.Logger
	processor *Processor
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger.With(slog.String("component", "loader")),
		processor: NewProcessor(logger),
	}
}

// LoadFile loads a postings file with a default loader
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	return NewLoader(nil).LoadFile(ctx, path)
}

// Load reads CSV postings from r with a default loader
func Load(ctx context.Context, r io.Reader) (*Dataset, error) {
	return NewLoader(nil).Load(ctx, r)
}

// LoadFile loads, cleans and derives the postings stored at path.
// CSV, XLSX and Parquet snapshot files are accepted.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()
	l.logger.InfoContext(ctx, "loading postings",
		slog.String("path", path),
		slog.String("format", formatOf(path)))

	var (
		dataset *Dataset
		err     error
	)
	if formatOf(path) == FormatParquet {
		var postings []domain.Posting
		postings, err = ReadSnapshot(path)
		if err == nil {
			dataset, _ = l.processor.ProcessPostings(ctx, postings)
		}
	} else {
		var rows []domain.RawPosting
		rows, err = l.ReadRecords(ctx, path)
		if err == nil {
			dataset, _ = l.processor.Process(ctx, rows)
		}
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load postings",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.InfoContext(ctx, "postings loaded",
		slog.String("path", path),
		slog.Int("rows", dataset.Len()),
		slog.Duration("duration", time.Since(start)))
	return dataset, nil
}

// Load reads CSV postings from r and cleans them
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, unavailable("reader", err)
	}
	rows, err := parseCSV(content)
	if err != nil {
		return nil, unavailable("reader", err)
	}
	dataset, _ := l.processor.Process(ctx, rows)
	return dataset, nil
}

// ReadRecords returns the uncleaned rows of a CSV or XLSX source
func (l *Loader) ReadRecords(ctx context.Context, path string) ([]domain.RawPosting, error) {
	var (
		rows []domain.RawPosting
		err  error
	)
	switch formatOf(path) {
	case FormatXLSX:
		rows, err = readXLSX(path)
	case FormatParquet:
		return nil, unavailable(path, fmt.Errorf("parquet snapshots hold cleaned postings, use LoadFile"))
	default:
		rows, err = readCSVFile(path)
	}
	if err != nil {
		return nil, unavailable(path, err)
	}

	l.logger.DebugContext(ctx, "source rows read",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return rows, nil
}

func formatOf(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case FormatXLSX, FormatParquet:
		return ext
	default:
		return FormatCSV
	}
}

func unavailable(source string, cause error) error {
	return apperrors.NewDataUnavailableError(
		fmt.Sprintf("postings source %s is unavailable", source),
		fmt.Errorf("%w: %w", ErrDataUnavailable, cause),
	).WithContext("source", source)
}

func readCSVFile(path string) ([]domain.RawPosting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCSV(content)
}

// parseCSV reads every column as text so that coercion happens in one place.
// Stray quotes inside unquoted fields are kept as text and short rows are
// padded with missing values; a row with more fields than the header fails.
func parseCSV(content []byte) ([]domain.RawPosting, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if countLines(content) <= 1 {
		// Header only or empty: nothing to load but the source is readable
		return []domain.RawPosting{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) <= 1 {
		return []domain.RawPosting{}, nil
	}

	width := len(records[0])
	for i, record := range records[1:] {
		switch {
		case len(record) > width:
			return nil, fmt.Errorf("read csv: record %d has %d fields, header has %d", i+1, len(record), width)
		case len(record) < width:
			records[i+1] = append(record, make([]string, width-len(record))...)
		}
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	columns := make(map[string][]string, df.Ncol())
	for _, name := range df.Names() {
		key := strings.TrimSpace(name)
		if _, seen := columns[key]; seen {
			continue
		}
		columns[key] = df.Col(name).Records()
	}
	return rowsFromColumns(columns, df.Nrow()), nil
}

func countLines(content []byte) int {
	n := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

// rowsFromColumns pivots column records into rows.
// Columns absent from the source read as missing.
func rowsFromColumns(columns map[string][]string, nrow int) []domain.RawPosting {
	rows := make([]domain.RawPosting, nrow)
	for i := range rows {
		row := make(domain.RawPosting, len(domain.Columns()))
		for _, name := range domain.Columns() {
			if values, ok := columns[name]; ok && i < len(values) {
				row[name] = values[i]
			}
		}
		rows[i] = row
	}
	return rows
}

// readXLSX reads the first sheet of a workbook whose first row is the header
func readXLSX(path string) ([]domain.RawPosting, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return []domain.RawPosting{}, nil
	}

	header := records[0]
	columns := make(map[string][]string, len(header))
	index := make(map[int]string, len(header))
	for i, name := range header {
		key := strings.TrimSpace(name)
		if _, seen := columns[key]; seen {
			continue
		}
		columns[key] = make([]string, 0, len(records)-1)
		index[i] = key
	}

	for _, record := range records[1:] {
		for i := range header {
			key, ok := index[i]
			if !ok {
				continue
			}
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			columns[key] = append(columns[key], cell)
		}
	}
	return rowsFromColumns(columns, len(records)-1), nil
}
