// Command jobstats prints every job market aggregation as terminal tables and
// optionally exports the result tables as CSV files and an Excel workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
	"github.com/kurniaw/sg-job-market-insight/internal/dataprocessing"
	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	"github.com/kurniaw/sg-job-market-insight/internal/infrastructure"
	"github.com/kurniaw/sg-job-market-insight/internal/report"
	"github.com/kurniaw/sg-job-market-insight/internal/validation"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// workbookName is the file name of the exported workbook, without extension
const workbookName = "sg_jobs_report"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	source     string
	exportDir  string
	industries stringList
	report     report.Options
}

type stringList []string

func (s *stringList) String() string     { return fmt.Sprint(*s) }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func parseFlags(args []string, stderr io.Writer, cfg *config.Config) (options, error) {
	opts := options{report: report.DefaultOptions()}

	fs := flag.NewFlagSet("jobstats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.source, "source", cfg.Data.Source, "job postings file (.csv, .xlsx or .parquet)")
	fs.StringVar(&opts.exportDir, "export", "", "directory to export the result tables to (CSV and XLSX)")
	fs.Var(&opts.industries, "industry", "only count postings of this industry (repeatable, substring match)")
	fs.IntVar(&opts.report.TopRoles, "top", opts.report.TopRoles, "number of top roles")
	fs.IntVar(&opts.report.SkillKeywords, "skills", opts.report.SkillKeywords, "number of skill keywords")
	fs.IntVar(&opts.report.TopCompanies, "companies", opts.report.TopCompanies, "number of top companies")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx = infrastructure.EnsureTraceID(ctx)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	opts, err := parseFlags(args, stderr, cfg)
	if err != nil {
		return 2
	}

	logger, _, err := infrastructure.NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSource(opts.source); err != nil {
		return 1
	}

	dataset, err := dataprocessing.NewLoader(logger).LoadFile(ctx, opts.source)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to load job postings",
			slog.String("source", opts.source))
		return 1
	}

	view := dataset
	if len(opts.industries) > 0 {
		view = dataset.Filter(domain.FilterCriteria{Industries: opts.industries})
	}

	if err := report.New(stdout, opts.report).Render(view); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to render report")
		return 1
	}

	if opts.exportDir == "" {
		return 0
	}

	tables := []exporter.Table{
		exporter.RolesTable(view.TopRoles(opts.report.TopRoles)),
		exporter.IndustriesTable(view.IndustryStats()),
		exporter.PositionsTable(view.SalaryByPosition()),
		exporter.SkillsTable(view.SkillKeywords(opts.report.SkillKeywords)),
		exporter.CompaniesTable(view.TopCompanies(opts.report.TopCompanies)),
	}

	if err := validator.ValidateOutputDirectory(opts.exportDir); err != nil {
		return 1
	}

	writer := exporter.NewFileWriter(opts.exportDir, logger)
	files, err := writer.WriteTables(tables...)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to export tables")
		return 1
	}
	workbook, err := writer.WriteWorkbook(workbookName, tables...)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to export workbook")
		return 1
	}

	for _, f := range append(files, workbook) {
		fmt.Fprintf(stdout, "exported %s\n", f)
	}
	return 0
}
