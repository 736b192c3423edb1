package services

import "errors"

// Jobs service errors
var (
	// Dataset errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// Query errors
	ErrInvalidCriteria = errors.New("invalid filter criteria")
	ErrUnknownTable    = errors.New("unknown table")
)
