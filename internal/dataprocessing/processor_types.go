package dataprocessing

import (
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Dataset is an immutable, cleaned collection of postings.
// Queries and filters never modify it; Filter returns a new Dataset.
type Dataset struct {
	postings []domain.Posting
}

// newDataset takes ownership of the given slice
func newDataset(postings []domain.Posting) *Dataset {
	if postings == nil {
		postings = []domain.Posting{}
	}
	return &Dataset{postings: postings}
}

// NewDataset cleans and derives the given postings into a dataset.
// The input slice is not retained.
func NewDataset(postings []domain.Posting) *Dataset {
	var stats ProcessingStats
	out := make([]domain.Posting, len(postings))
	for i, posting := range postings {
		normalize(&posting, &stats)
		derive(&posting)
		out[i] = posting
	}
	return newDataset(out)
}

// Len returns the number of postings
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.postings)
}

// Postings returns a copy of the postings in load order
func (d *Dataset) Postings() []domain.Posting {
	if d == nil {
		return []domain.Posting{}
	}
	out := make([]domain.Posting, len(d.postings))
	copy(out, d.postings)
	return out
}

// Page returns up to limit postings starting at offset
func (d *Dataset) Page(offset, limit int) []domain.Posting {
	n := d.Len()
	if offset < 0 {
		offset = 0
	}
	if offset >= n || limit <= 0 {
		return []domain.Posting{}
	}
	end := offset + limit
	if end > n {
		end = n
	}
	out := make([]domain.Posting, end-offset)
	copy(out, d.postings[offset:end])
	return out
}

// ProcessingStats counts the corrections applied while cleaning
type ProcessingStats struct {
	Rows                  int `json:"rows"`
	CoercedValues         int `json:"coerced_values"`
	UnparsedDates         int `json:"unparsed_dates"`
	DefaultedCategoricals int `json:"defaulted_categoricals"`
	FilledAverages        int `json:"filled_averages"`
}
