// Package services implements the job market query layer between the HTTP
// handlers and the in-memory postings dataset.
//
// # Available Services
//
//   - JobsService: owns the loaded dataset and answers aggregation, filter
//     and export queries
//   - HealthService: liveness, readiness and version information
//
// # Filtered views
//
// Market-wide tables (top roles, industry statistics, salary by position,
// skill keywords, filter options) are always computed over the full dataset.
// The remaining queries take domain.FilterCriteria and run over the filtered
// view; empty criteria select every posting.
//
// # Error Handling
//
// Services return errors that the HTTP error handler maps to problems:
//
//   - ErrDatasetNotLoaded wrapped in a DATA_UNAVAILABLE AppError (503)
//   - ErrInvalidCriteria wrapped in a VALIDATION AppError (400)
//   - ErrUnknownTable wrapped in a NOT_FOUND AppError (404)
//   - context errors when the request deadline expires (504)
package services
