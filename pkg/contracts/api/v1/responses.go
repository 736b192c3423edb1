package api

import (
	"time"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// ListResponse wraps a result table with its row count
type ListResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

// NewListResponse builds a list response; a nil slice is sent as []
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Count: len(items), Items: items}
}

// PostingsPage is one page of filtered postings
type PostingsPage struct {
	Total  int              `json:"total"`
	Offset int              `json:"offset"`
	Limit  int              `json:"limit"`
	Count  int              `json:"count"`
	Items  []domain.Posting `json:"items"`
}

// DatasetInfo describes the loaded dataset
type DatasetInfo struct {
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}
