package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Formats lists the supported export formats
func Formats() []string {
	return []string{FormatCSV, FormatXLSX}
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// FileName returns the download file name of a table
func FileName(table, format string) string {
	return fmt.Sprintf("sg_jobs_%s.%s", strings.ToLower(table), format)
}

// formatFloat formats with exactly 2 decimal places, so 13.4 appears as 13.40
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
