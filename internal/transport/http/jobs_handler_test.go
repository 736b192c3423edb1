package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/kurniaw/sg-job-market-insight/internal/errors"
	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	"github.com/kurniaw/sg-job-market-insight/internal/middleware"
	"github.com/kurniaw/sg-job-market-insight/internal/services"
	"github.com/kurniaw/sg-job-market-insight/internal/shared/testutil"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

func ptr(v float64) *float64 {
	return &v
}

// serve routes one request through the jobs router
func serve(t *testing.T, svc *MockJobsService, target string) *httptest.ResponseRecorder {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	handler := NewJobsHandler(svc, middleware.NewValidator(), nil, logger, apierrors.NewErrorHandler(logger, false))

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func notLoaded() error {
	return apierrors.NewDataUnavailableError("postings dataset is not loaded", services.ErrDatasetNotLoaded)
}

func TestJobsHandler_GetTopRoles(t *testing.T) {
	roles := []domain.RoleStats{{Role: "Data Analyst", Count: 3, SalaryMin: ptr(4000)}}

	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockJobsService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "default n",
			target: "/roles/top",
			setupMock: func(m *MockJobsService) {
				m.On("TopRoles", 20).Return(roles, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"count":1,"items":[{"role":"Data Analyst","salary_min":4000,"count":3,"salary_max":null,"apps":0,"views":0,"competition":null,"min_exp":null}]}`,
		},
		{
			name:   "explicit n",
			target: "/roles/top?n=5",
			setupMock: func(m *MockJobsService) {
				m.On("TopRoles", 5).Return([]domain.RoleStats{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"count":0,"items":[]}`,
		},
		{
			name:           "n out of range",
			target:         "/roles/top?n=0",
			setupMock:      func(*MockJobsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"n must be at least 1"`,
		},
		{
			name:           "n not a number",
			target:         "/roles/top?n=ten",
			setupMock:      func(*MockJobsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"n must be an integer"`,
		},
		{
			name:   "dataset not loaded",
			target: "/roles/top",
			setupMock: func(m *MockJobsService) {
				m.On("TopRoles", 20).Return(nil, notLoaded())
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"/errors/data/unavailable"`,
		},
		{
			name:   "internal error",
			target: "/roles/top",
			setupMock: func(m *MockJobsService) {
				m.On("TopRoles", 20).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"Internal Server Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJobsService)
			tt.setupMock(mockService)

			rec := serve(t, mockService, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestJobsHandler_FilterParameters(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		criteria       domain.FilterCriteria
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no filters",
			target:         "/overview",
			criteria:       domain.FilterCriteria{},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "all dimensions",
			target: "/overview?title=Data+Analyst&industry=Information+Technology&industry=Banking&position=Executive&employment_type=Permanent&experience=Mid+(2-5y)&salary_min=3000&salary_max=6000",
			criteria: domain.FilterCriteria{
				Titles:           []string{"Data Analyst"},
				Industries:       []string{"Information Technology", "Banking"},
				SalaryRange:      &domain.SalaryRange{Min: 3000, Max: 6000},
				ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceMid},
				PositionLevels:   []string{"Executive"},
				EmploymentTypes:  []string{"Permanent"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "open upper salary bound",
			target:         "/overview?salary_min=5000",
			criteria:       domain.FilterCriteria{SalaryRange: &domain.SalaryRange{Min: 5000, Max: math.MaxFloat64}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "blank values ignored",
			target:         "/overview?title=&industry=+",
			criteria:       domain.FilterCriteria{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "inverted salary range",
			target:         "/overview?salary_min=6000&salary_max=3000",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"salary_min must be less than or equal to salary_max"`,
		},
		{
			name:           "negative salary",
			target:         "/overview?salary_min=-1",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"salary_min"`,
		},
		{
			name:           "salary not a number",
			target:         "/overview?salary_max=lots",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"salary_max must be a number"`,
		},
		{
			name:           "unknown experience",
			target:         "/overview?experience=Guru",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"experience[0]"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJobsService)
			if tt.expectedStatus == http.StatusOK {
				mockService.On("Overview", tt.criteria).Return(domain.MarketOverview{TotalJobs: 7, TopCompany: "Acme"}, nil)
			}

			rec := serve(t, mockService, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, float64(7), decode(t, rec)["total_jobs"])
			} else {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestJobsHandler_FilteredLists(t *testing.T) {
	analysts := domain.FilterCriteria{Titles: []string{"Data Analyst"}}
	counts := []domain.ValueCount{{Value: "Permanent", Count: 2}}

	tests := []struct {
		name      string
		target    string
		setupMock func(*MockJobsService)
		wantCount int
	}{
		{
			name:   "employment types",
			target: "/employment-types?title=Data+Analyst",
			setupMock: func(m *MockJobsService) {
				m.On("EmploymentDistribution", analysts).Return(counts, nil)
			},
			wantCount: 1,
		},
		{
			name:   "top companies default n",
			target: "/companies/top?title=Data+Analyst",
			setupMock: func(m *MockJobsService) {
				m.On("TopCompanies", analysts, 10).Return([]domain.ValueCount{{Value: "Acme", Count: 2}, {Value: "Beta", Count: 1}}, nil)
			},
			wantCount: 2,
		},
		{
			name:   "experience",
			target: "/experience",
			setupMock: func(m *MockJobsService) {
				m.On("ExperienceDistribution", domain.FilterCriteria{}).Return([]domain.ValueCount{}, nil)
			},
			wantCount: 0,
		},
		{
			name:   "salary histogram bins",
			target: "/salary/histogram?bins=3",
			setupMock: func(m *MockJobsService) {
				m.On("SalaryHistogram", domain.FilterCriteria{}, 3).Return([]domain.HistogramBin{{Lower: 0, Upper: 1, Count: 1}}, nil)
			},
			wantCount: 1,
		},
		{
			name:   "salary histogram default bins",
			target: "/salary/histogram",
			setupMock: func(m *MockJobsService) {
				m.On("SalaryHistogram", domain.FilterCriteria{}, 50).Return(nil, nil)
			},
			wantCount: 0,
		},
		{
			name:   "salary by experience",
			target: "/salary/experience?title=Data+Analyst",
			setupMock: func(m *MockJobsService) {
				m.On("SalaryByExperience", analysts).Return([]domain.ExperienceSalaryStats{{Level: domain.ExperienceMid, Count: 5}}, nil)
			},
			wantCount: 1,
		},
		{
			name:   "industry salaries",
			target: "/salary/industries",
			setupMock: func(m *MockJobsService) {
				m.On("IndustrySalaries", domain.FilterCriteria{}).Return([]domain.IndustrySalary{{Industry: "Others"}}, nil)
			},
			wantCount: 1,
		},
		{
			name:   "skill salaries",
			target: "/salary/skills",
			setupMock: func(m *MockJobsService) {
				m.On("SkillSalaries", domain.FilterCriteria{}).Return([]domain.SkillSalary{{Skill: "Python", Count: 1}}, nil)
			},
			wantCount: 1,
		},
		{
			name:   "industries",
			target: "/industries",
			setupMock: func(m *MockJobsService) {
				m.On("IndustryStats").Return([]domain.IndustryStats{{Industry: "Others", JobsCount: 1}}, nil)
			},
			wantCount: 1,
		},
		{
			name:   "salary by position",
			target: "/salary/positions",
			setupMock: func(m *MockJobsService) {
				m.On("SalaryByPosition").Return([]domain.PositionSalaryStats{}, nil)
			},
			wantCount: 0,
		},
		{
			name:   "skills",
			target: "/skills?n=2",
			setupMock: func(m *MockJobsService) {
				m.On("SkillKeywords", 2).Return([]domain.KeywordCount{{Keyword: "Engineer", Count: 4}}, nil)
			},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJobsService)
			tt.setupMock(mockService)

			rec := serve(t, mockService, tt.target)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.Equal(t, float64(tt.wantCount), body["count"])
			assert.NotNil(t, body["items"])
			mockService.AssertExpectations(t)
		})
	}
}

func TestJobsHandler_GetFilterOptions(t *testing.T) {
	mockService := new(MockJobsService)
	mockService.On("FilterOptions").Return(domain.FilterOptions{
		Industries:       []string{"Information Technology"},
		ExperienceLevels: domain.ExperienceLevels(),
		SalaryMaximum:    ptr(9000),
	}, nil)

	rec := serve(t, mockService, "/filters")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []interface{}{"Information Technology"}, body["industries"])
	assert.Equal(t, float64(9000), body["salary_maximum"])
	assert.Len(t, body["experience_levels"], 5)
}

func TestJobsHandler_GetPostings(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		offset, limit  int
		expectedStatus int
	}{
		{name: "defaults", target: "/postings", offset: 0, limit: 100, expectedStatus: http.StatusOK},
		{name: "explicit page", target: "/postings?offset=20&limit=10", offset: 20, limit: 10, expectedStatus: http.StatusOK},
		{name: "limit too large", target: "/postings?limit=5000", expectedStatus: http.StatusBadRequest},
		{name: "negative offset", target: "/postings?offset=-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJobsService)
			if tt.expectedStatus == http.StatusOK {
				mockService.On("Postings", domain.FilterCriteria{}, tt.offset, tt.limit).Return(api.PostingsPage{
					Total: 1, Offset: tt.offset, Limit: tt.limit, Count: 1,
					Items: []domain.Posting{{Title: "Cook", Company: "Delta Foods"}},
				}, nil)
			}

			rec := serve(t, mockService, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decode(t, rec)
				assert.Equal(t, float64(tt.limit), body["limit"])
				assert.Len(t, body["items"], 1)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestJobsHandler_Export(t *testing.T) {
	table := exporter.SkillsTable([]domain.KeywordCount{{Keyword: "Python", Count: 3}})

	tests := []struct {
		name            string
		target          string
		setupMock       func(*MockJobsService)
		expectedStatus  int
		wantType        string
		wantDisposition string
	}{
		{
			name:   "csv",
			target: "/export/skills.csv",
			setupMock: func(m *MockJobsService) {
				m.On("Table", "skills").Return(table, nil)
			},
			expectedStatus:  http.StatusOK,
			wantType:        "text/csv; charset=utf-8",
			wantDisposition: `attachment; filename="sg_jobs_skills.csv"`,
		},
		{
			name:   "xlsx",
			target: "/export/skills.XLSX",
			setupMock: func(m *MockJobsService) {
				m.On("Table", "skills").Return(table, nil)
			},
			expectedStatus:  http.StatusOK,
			wantType:        exporter.ContentType(exporter.FormatXLSX),
			wantDisposition: `attachment; filename="sg_jobs_skills.xlsx"`,
		},
		{
			name:           "unknown table",
			target:         "/export/salaries.csv",
			setupMock:      func(*MockJobsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown format",
			target:         "/export/roles.pdf",
			setupMock:      func(*MockJobsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "dataset not loaded",
			target: "/export/roles.csv",
			setupMock: func(m *MockJobsService) {
				m.On("Table", "roles").Return(exporter.Table{}, notLoaded())
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJobsService)
			tt.setupMock(mockService)

			rec := serve(t, mockService, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
				assert.Equal(t, tt.wantDisposition, rec.Header().Get("Content-Disposition"))
				assert.NotZero(t, rec.Body.Len())
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestJobsHandler_ExportCSVBody(t *testing.T) {
	mockService := new(MockJobsService)
	mockService.On("Table", "companies").Return(exporter.CompaniesTable([]domain.ValueCount{{Value: "Acme", Count: 2}}), nil)

	rec := serve(t, mockService, "/export/companies.csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, rec.Body.String(), "Company,Jobs\nAcme,2\n")
}

func TestJobsHandler_DeadlineExceeded(t *testing.T) {
	mockService := new(MockJobsService)
	mockService.On("IndustryStats").Return(nil, context.DeadlineExceeded)

	rec := serve(t, mockService, "/industries")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeTimeout)
}
