package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

func ptr(v float64) *float64 {
	return &v
}

func sampleRoles() []domain.RoleStats {
	return []domain.RoleStats{
		{Role: "Data Analyst", Count: 3, SalaryMin: ptr(4000), SalaryMax: ptr(6000), Apps: 12, Views: 340, Competition: ptr(0.35), MinExp: ptr(2)},
		{Role: "Cook, Line", Count: 3, Apps: 1, Views: 20},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, utf8BOM), "missing BOM")
	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, RolesTable(sampleRoles())))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, "Role", records[0][0])
	assert.Equal(t, []string{"Data Analyst", "3", "4000.00", "6000.00", "12.00", "340.00", "0.35", "2.00"}, records[1])
	assert.Equal(t, []string{"Cook, Line", "3", "", "", "1.00", "20.00", "", ""}, records[2])
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SkillsTable(nil)))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, [][]string{{"Skill", "Jobs"}}, records)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	tables := []Table{
		RolesTable(sampleRoles()),
		SkillsTable([]domain.KeywordCount{{Keyword: "Engineer", Count: 42}, {Keyword: "Python", Count: 7}}),
	}
	require.NoError(t, WriteXLSX(&buf, tables...))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TableRoles, TableSkills}, f.GetSheetList())

	rows, err := f.GetRows(TableSkills)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Skill", "Jobs"}, {"Engineer", "42"}, {"Python", "7"}}, rows)

	salary, err := f.GetCellValue(TableRoles, "C2")
	require.NoError(t, err)
	assert.Equal(t, "4000", salary)

	missing, err := f.GetCellValue(TableRoles, "C3")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestWriteXLSX_NoTables(t *testing.T) {
	assert.Error(t, WriteXLSX(&bytes.Buffer{}))
}

func TestWrite(t *testing.T) {
	table := CompaniesTable([]domain.ValueCount{{Value: "Acme", Count: 2}})

	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: FormatCSV},
		{format: FormatXLSX},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, table)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	fw := NewFileWriter(dir, nil)

	tables := []Table{
		IndustriesTable([]domain.IndustryStats{{Industry: "Information Technology", JobsCount: 10, Vacancies: 12}}),
		PositionsTable([]domain.PositionSalaryStats{{Position: "Executive", Count: 11, AvgSalary: ptr(5200)}}),
	}

	paths, err := fw.WriteTables(tables...)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sg_jobs_industries.csv"),
		filepath.Join(dir, "sg_jobs_positions.csv"),
	}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	records := readCSV(t, data)
	assert.Equal(t, "5200.00", records[1][6])

	workbook, err := fw.WriteWorkbook("sg_jobs_report", tables...)
	require.NoError(t, err)
	assert.FileExists(t, workbook)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "-2.00", formatFloat(-2))
	assert.Equal(t, "sg_jobs_roles.xlsx", FileName("Roles", FormatXLSX))
	assert.Contains(t, ContentType(FormatCSV), "text/csv")
	assert.Contains(t, ContentType(FormatXLSX), "spreadsheetml")
	assert.Equal(t, []string{TableRoles, TableIndustries, TablePositions, TableSkills, TableCompanies}, TableNames())
}
