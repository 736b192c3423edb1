// Command snapshot converts a job postings CSV or XLSX file into the Parquet
// snapshot the dashboard loads at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
	"github.com/kurniaw/sg-job-market-insight/internal/dataprocessing"
	"github.com/kurniaw/sg-job-market-insight/internal/infrastructure"
	"github.com/kurniaw/sg-job-market-insight/internal/validation"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx = infrastructure.EnsureTraceID(ctx)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", cfg.Data.Source, "job postings source (.csv or .xlsx)")
	out := fs.String("out", cfg.Data.Snapshot, "Parquet snapshot to write")
	quiet := fs.Bool("quiet", false, "hide the progress bar")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, _, err := infrastructure.NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	if err := convert(ctx, *in, *out, !*quiet, stdout, logger); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Snapshot conversion failed",
			slog.String("source", *in),
			slog.String("snapshot", *out))
		return 1
	}
	return 0
}

func convert(ctx context.Context, in, out string, showProgress bool, stdout io.Writer, logger *slog.Logger) error {
	start := time.Now()

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSource(in, dataprocessing.FormatCSV, dataprocessing.FormatXLSX); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(out)); err != nil {
		return err
	}

	rows, err := dataprocessing.NewLoader(logger).ReadRecords(ctx, in)
	if err != nil {
		return err
	}

	dataset, stats := dataprocessing.NewProcessor(logger).Process(ctx, rows)

	var progress func(int)
	if showProgress {
		bar := pb.Full.New(dataset.Len())
		bar.SetWriter(stdout)
		bar.Start()
		defer bar.Finish()
		progress = func(written int) { bar.SetCurrent(int64(written)) }
	}

	if err := dataprocessing.WriteSnapshot(out, dataset, progress); err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("failed to stat snapshot: %w", err)
	}

	logger.InfoContext(ctx, "Snapshot written",
		slog.String("source", in),
		slog.String("snapshot", out),
		slog.Int("rows", stats.Rows),
		slog.Int("coerced_values", stats.CoercedValues),
		slog.Int("filled_averages", stats.FilledAverages),
		slog.String("size", humanize.Bytes(uint64(info.Size()))),
		slog.Duration("duration", time.Since(start)))
	return nil
}
