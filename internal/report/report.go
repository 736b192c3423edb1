// Package report renders job market aggregations as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
	"github.com/kurniaw/sg-job-market-insight/internal/dataprocessing"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Missing is printed for values that cannot be computed
const Missing = "-"

// Options controls the size of the ranked tables
type Options struct {
	TopRoles      int
	SkillKeywords int
	TopCompanies  int
}

// DefaultOptions returns the sizes the dashboard uses
func DefaultOptions() Options {
	return Options{
		TopRoles:      config.DefaultTopRoles,
		SkillKeywords: config.DefaultSkillKeywords,
		TopCompanies:  config.DefaultTopCompanies,
	}
}

// Report writes every aggregation of a dataset to w
type Report struct {
	w    io.Writer
	opts Options
}

// New creates a report writing to w
func New(w io.Writer, opts Options) *Report {
	defaults := DefaultOptions()
	if opts.TopRoles <= 0 {
		opts.TopRoles = defaults.TopRoles
	}
	if opts.SkillKeywords <= 0 {
		opts.SkillKeywords = defaults.SkillKeywords
	}
	if opts.TopCompanies <= 0 {
		opts.TopCompanies = defaults.TopCompanies
	}
	return &Report{w: w, opts: opts}
}

type section struct {
	title string
	data  pterm.TableData
}

// Render writes the overview followed by one table per aggregation
func (r *Report) Render(d *dataprocessing.Dataset) error {
	keywords := d.SkillKeywords(r.opts.SkillKeywords)
	topKeywords := keywords
	if len(topKeywords) > 10 {
		topKeywords = topKeywords[:10]
	}

	sections := []section{
		{"Market Overview", overviewData(d.MarketOverview())},
		{fmt.Sprintf("Top %d Roles", r.opts.TopRoles), rolesData(d.TopRoles(r.opts.TopRoles))},
		{"Industries", industriesData(d.IndustryStats())},
		{"Salary by Position Level", positionsData(d.SalaryByPosition())},
		{"Skill Keywords", keywordsData(keywords)},
		{"Employment Types", countsData("Employment Type", d.EmploymentDistribution())},
		{"Top Companies", countsData("Company", d.TopCompanies(r.opts.TopCompanies))},
		{"Experience Levels", countsData("Experience", d.ExperienceDistribution())},
		{"Salary by Experience", experienceSalaryData(d.SalaryByExperience())},
		{"Highest Paying Industries", industrySalaryData(d.IndustrySalaries())},
		{"Salary by Skill", skillSalaryData(d.SkillSalaries(topKeywords))},
	}

	for _, s := range sections {
		if err := r.writeSection(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) writeSection(s section) error {
	if _, err := fmt.Fprint(r.w, pterm.DefaultSection.Sprint(s.title)); err != nil {
		return err
	}

	if len(s.data) <= 1 {
		_, err := fmt.Fprintln(r.w, "no data")
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(s.data).Srender()
	if err != nil {
		return fmt.Errorf("render %s: %w", s.title, err)
	}
	_, err = fmt.Fprintln(r.w, table)
	return err
}

func overviewData(o domain.MarketOverview) pterm.TableData {
	return pterm.TableData{
		{"Metric", "Value"},
		{"Total Jobs", Count(o.TotalJobs)},
		{"Median Salary", Money(o.MedianSalary)},
		{"Average Salary", Money(o.AvgSalary)},
		{"Top Company", o.TopCompany},
		{"Avg Applications", Number(o.AvgApplications)},
		{"Avg Views", Number(o.AvgViews)},
		{"Total Vacancies", humanize.Comma(int64(o.TotalVacancies))},
	}
}

func rolesData(roles []domain.RoleStats) pterm.TableData {
	data := pterm.TableData{{"Role", "Jobs", "Avg Min", "Avg Max", "Applications", "Views", "Competition", "Min Exp"}}
	for _, r := range roles {
		data = append(data, []string{
			r.Role, Count(r.Count), Money(r.SalaryMin), Money(r.SalaryMax),
			Number(&r.Apps), Number(&r.Views), Number(r.Competition), Number(r.MinExp),
		})
	}
	return data
}

func industriesData(industries []domain.IndustryStats) pterm.TableData {
	data := pterm.TableData{{"Industry", "Jobs", "Avg Min", "Avg Max", "Vacancies", "Competition", "Min Exp"}}
	for _, i := range industries {
		data = append(data, []string{
			i.Industry, Count(i.JobsCount), Money(i.SalaryMin), Money(i.SalaryMax),
			humanize.Comma(int64(i.Vacancies)), Number(i.Competition), Number(i.MinExp),
		})
	}
	return data
}

func positionsData(positions []domain.PositionSalaryStats) pterm.TableData {
	data := pterm.TableData{{"Position", "Jobs", "Min Avg", "Min Median", "Max Avg", "Max Median", "Avg Salary"}}
	for _, p := range positions {
		data = append(data, []string{
			p.Position, Count(p.Count), Money(p.SalaryMinAvg), Money(p.SalaryMinMedian),
			Money(p.SalaryMaxAvg), Money(p.SalaryMaxMedian), Money(p.AvgSalary),
		})
	}
	return data
}

func keywordsData(keywords []domain.KeywordCount) pterm.TableData {
	data := pterm.TableData{{"Keyword", "Jobs"}}
	for _, k := range keywords {
		data = append(data, []string{k.Keyword, Count(k.Count)})
	}
	return data
}

func countsData(label string, counts []domain.ValueCount) pterm.TableData {
	data := pterm.TableData{{label, "Jobs"}}
	for _, c := range counts {
		data = append(data, []string{c.Value, Count(c.Count)})
	}
	return data
}

func experienceSalaryData(stats []domain.ExperienceSalaryStats) pterm.TableData {
	data := pterm.TableData{{"Experience", "Jobs", "Mean", "Median", "Min", "Max"}}
	for _, s := range stats {
		data = append(data, []string{
			string(s.Level), Count(s.Count), Money(s.Mean), Money(s.Median), Money(s.Min), Money(s.Max),
		})
	}
	return data
}

func industrySalaryData(salaries []domain.IndustrySalary) pterm.TableData {
	data := pterm.TableData{{"Industry", "Average", "Avg Min", "Avg Max"}}
	for _, s := range salaries {
		data = append(data, []string{s.Industry, Money(s.AverageSalary), Money(s.SalaryMin), Money(s.SalaryMax)})
	}
	return data
}

func skillSalaryData(salaries []domain.SkillSalary) pterm.TableData {
	data := pterm.TableData{{"Skill", "Jobs", "Avg Salary"}}
	for _, s := range salaries {
		data = append(data, []string{s.Skill, Count(s.Count), Money(s.AvgSalary)})
	}
	return data
}

// Money formats a salary as whole dollars with thousands separators
func Money(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return Missing
	}
	return "$" + humanize.Comma(int64(math.Round(*v)))
}

// Number formats a statistic with one decimal
func Number(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return Missing
	}
	return humanize.CommafWithDigits(math.Round(*v*10)/10, 1)
}

// Count formats an integer with thousands separators
func Count(n int) string {
	return humanize.Comma(int64(n))
}
