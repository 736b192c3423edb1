// Package shared holds helpers used by more than one package of the job
// market service and owned by none of them.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// structured log output, and a small job postings CSV fixture for tests that
// need a loadable data source.
package shared
