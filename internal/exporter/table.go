package exporter

import (
	"fmt"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Exportable table names
const (
	TableRoles      = "roles"
	TableIndustries = "industries"
	TablePositions  = "positions"
	TableSkills     = "skills"
	TableCompanies  = "companies"
)

// TableNames lists the exportable tables in report order
func TableNames() []string {
	return []string{TableRoles, TableIndustries, TablePositions, TableSkills, TableCompanies}
}

// Table is a named result table. Cells hold string, int, float64 or nil for
// missing values.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Len returns the number of data rows
func (t Table) Len() int {
	return len(t.Rows)
}

// RolesTable builds the top roles table
func RolesTable(roles []domain.RoleStats) Table {
	t := Table{
		Name:    TableRoles,
		Headers: []string{"Role", "Jobs", "Avg Min Salary", "Avg Max Salary", "Applications", "Views", "Competition", "Min Experience"},
		Rows:    make([][]any, 0, len(roles)),
	}
	for _, r := range roles {
		t.Rows = append(t.Rows, []any{
			r.Role, r.Count, value(r.SalaryMin), value(r.SalaryMax),
			r.Apps, r.Views, value(r.Competition), value(r.MinExp),
		})
	}
	return t
}

// IndustriesTable builds the industry statistics table
func IndustriesTable(industries []domain.IndustryStats) Table {
	t := Table{
		Name:    TableIndustries,
		Headers: []string{"Industry", "Jobs", "Avg Min Salary", "Avg Max Salary", "Vacancies", "Competition", "Min Experience"},
		Rows:    make([][]any, 0, len(industries)),
	}
	for _, i := range industries {
		t.Rows = append(t.Rows, []any{
			i.Industry, i.JobsCount, value(i.SalaryMin), value(i.SalaryMax),
			i.Vacancies, value(i.Competition), value(i.MinExp),
		})
	}
	return t
}

// PositionsTable builds the salary by position level table
func PositionsTable(positions []domain.PositionSalaryStats) Table {
	t := Table{
		Name: TablePositions,
		Headers: []string{"Position", "Jobs", "Avg Min Salary", "Median Min Salary",
			"Avg Max Salary", "Median Max Salary", "Avg Salary"},
		Rows: make([][]any, 0, len(positions)),
	}
	for _, p := range positions {
		t.Rows = append(t.Rows, []any{
			p.Position, p.Count, value(p.SalaryMinAvg), value(p.SalaryMinMedian),
			value(p.SalaryMaxAvg), value(p.SalaryMaxMedian), value(p.AvgSalary),
		})
	}
	return t
}

// SkillsTable builds the skill keyword frequency table
func SkillsTable(keywords []domain.KeywordCount) Table {
	t := Table{
		Name:    TableSkills,
		Headers: []string{"Skill", "Jobs"},
		Rows:    make([][]any, 0, len(keywords)),
	}
	for _, k := range keywords {
		t.Rows = append(t.Rows, []any{k.Keyword, k.Count})
	}
	return t
}

// CompaniesTable builds the top hiring companies table
func CompaniesTable(companies []domain.ValueCount) Table {
	t := Table{
		Name:    TableCompanies,
		Headers: []string{"Company", "Jobs"},
		Rows:    make([][]any, 0, len(companies)),
	}
	for _, c := range companies {
		t.Rows = append(t.Rows, []any{c.Value, c.Count})
	}
	return t
}

// value unwraps an optional number; nil stays nil so writers leave the cell empty
func value(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// cellString renders a cell for text output
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return formatInt(int64(c))
	case int64:
		return formatInt(c)
	case float64:
		return formatFloat(c)
	case bool:
		return formatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
