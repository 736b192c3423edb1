package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// utf8BOM helps Excel recognize UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes a table as CSV with a UTF-8 BOM and a header row
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cellString(cell))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Write writes a table in the given format
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// FileWriter writes export files below a directory
type FileWriter struct {
	dir    string
	logger *slog.Logger
}

// NewFileWriter creates a writer for dir
func NewFileWriter(dir string, logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{
		dir:    dir,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// WriteTables writes every table as its own CSV file and returns the paths
func (fw *FileWriter) WriteTables(tables ...Table) ([]string, error) {
	if err := os.MkdirAll(fw.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(fw.dir, FileName(t.Name, FormatCSV))
		if err := fw.writeFile(path, func(w io.Writer) error { return WriteCSV(w, t) }); err != nil {
			return paths, err
		}

		fw.logger.Info("Writing CSV file",
			slog.String("table", t.Name),
			slog.String("path", path),
			slog.Int("record_count", t.Len()))
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteWorkbook writes all tables into one workbook named name.xlsx
func (fw *FileWriter) WriteWorkbook(name string, tables ...Table) (string, error) {
	if err := os.MkdirAll(fw.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(fw.dir, name+"."+FormatXLSX)
	if err := fw.writeFile(path, func(w io.Writer) error { return WriteXLSX(w, tables...) }); err != nil {
		return "", err
	}

	fw.logger.Info("Writing workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(tables)))
	return path, nil
}

func (fw *FileWriter) writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
