package dataprocessing

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// snapshotBatchSize is the number of rows handed to the writer at once
const snapshotBatchSize = 4096

// snapshotRow is the columnar layout of a cleaned posting.
// Derived fields are not stored; they are recomputed on load.
type snapshotRow struct {
	Title              string   `parquet:"title"`
	Company            string   `parquet:"postedCompany_name"`
	SalaryMinimum      *float64 `parquet:"salary_minimum,optional"`
	SalaryMaximum      *float64 `parquet:"salary_maximum,optional"`
	AverageSalary      *float64 `parquet:"average_salary,optional"`
	PositionLevel      string   `parquet:"positionLevels"`
	EmploymentType     string   `parquet:"employmentTypes"`
	Categories         string   `parquet:"categories"`
	PostingDateMillis  *int64   `parquet:"metadata_newPostingDate,optional"`
	Applications       float64  `parquet:"metadata_totalNumberJobApplication"`
	Views              float64  `parquet:"metadata_totalNumberOfView"`
	Vacancies          float64  `parquet:"numberOfVacancies"`
	MinYearsExperience *float64 `parquet:"minimumYearsExperience,optional"`
}

func toSnapshotRow(p domain.Posting) snapshotRow {
	row := snapshotRow{
		Title:              p.Title,
		Company:            p.Company,
		SalaryMinimum:      p.SalaryMinimum,
		SalaryMaximum:      p.SalaryMaximum,
		AverageSalary:      p.AverageSalary,
		PositionLevel:      p.PositionLevel,
		EmploymentType:     p.EmploymentType,
		Categories:         p.CategoriesRaw,
		Applications:       p.Applications,
		Views:              p.Views,
		Vacancies:          p.Vacancies,
		MinYearsExperience: p.MinYearsExperience,
	}
	if p.PostingDate != nil {
		ms := p.PostingDate.UnixMilli()
		row.PostingDateMillis = &ms
	}
	return row
}

func (r snapshotRow) posting() domain.Posting {
	p := domain.Posting{
		Title:              r.Title,
		Company:            r.Company,
		SalaryMinimum:      r.SalaryMinimum,
		SalaryMaximum:      r.SalaryMaximum,
		AverageSalary:      r.AverageSalary,
		PositionLevel:      r.PositionLevel,
		EmploymentType:     r.EmploymentType,
		CategoriesRaw:      r.Categories,
		Applications:       r.Applications,
		Views:              r.Views,
		Vacancies:          r.Vacancies,
		MinYearsExperience: r.MinYearsExperience,
	}
	if r.PostingDateMillis != nil {
		t := time.UnixMilli(*r.PostingDateMillis).UTC()
		p.PostingDate = &t
	}
	return p
}

// WriteSnapshot stores the dataset as a Parquet file.
// progress, when not nil, is called with the number of rows written so far.
func WriteSnapshot(path string, d *Dataset, progress func(written int)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[snapshotRow](f)
	postings := d.Postings()
	batch := make([]snapshotRow, 0, snapshotBatchSize)
	written := 0
	for start := 0; start < len(postings); start += snapshotBatchSize {
		end := min(start+snapshotBatchSize, len(postings))
		batch = batch[:0]
		for _, p := range postings[start:end] {
			batch = append(batch, toSnapshotRow(p))
		}
		n, err := w.Write(batch)
		written += n
		if err != nil {
			return fmt.Errorf("write snapshot rows: %w", err)
		}
		if progress != nil {
			progress(written)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close snapshot writer: %w", err)
	}
	return f.Close()
}

// ReadSnapshot reads the postings of a Parquet snapshot.
// Derived fields of the returned postings are empty.
func ReadSnapshot(path string) ([]domain.Posting, error) {
	rows, err := parquet.ReadFile[snapshotRow](path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	postings := make([]domain.Posting, len(rows))
	for i, row := range rows {
		postings[i] = row.posting()
	}
	return postings, nil
}
