package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/kurniaw/sg-job-market-insight/internal/config"
	apierrors "github.com/kurniaw/sg-job-market-insight/internal/errors"
	"github.com/kurniaw/sg-job-market-insight/internal/exporter"
	"github.com/kurniaw/sg-job-market-insight/internal/infrastructure"
	"github.com/kurniaw/sg-job-market-insight/internal/middleware"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// JobsHandler serves the job market queries with RFC 7807 errors
type JobsHandler struct {
	service      JobsService
	validator    *middleware.Validator
	metrics      *infrastructure.JobsMetrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewJobsHandler creates a new jobs handler. metrics may be nil.
func NewJobsHandler(service JobsService, validator *middleware.Validator, metrics *infrastructure.JobsMetrics,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *JobsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobsHandler{
		service:      service,
		validator:    validator,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "jobs_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the job market routes
func (h *JobsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Full dataset tables
	r.Get("/roles/top", h.GetTopRoles)
	r.Get("/industries", h.GetIndustries)
	r.Get("/salary/positions", h.GetSalaryByPosition)
	r.Get("/skills", h.GetSkills)
	r.Get("/filters", h.GetFilterOptions)

	// Filtered view
	r.Get("/overview", h.GetOverview)
	r.Get("/employment-types", h.GetEmploymentTypes)
	r.Get("/companies/top", h.GetTopCompanies)
	r.Get("/experience", h.GetExperience)
	r.Get("/postings", h.GetPostings)
	r.Route("/salary", func(r chi.Router) {
		r.Get("/histogram", h.GetSalaryHistogram)
		r.Get("/experience", h.GetSalaryByExperience)
		r.Get("/industries", h.GetIndustrySalaries)
		r.Get("/skills", h.GetSkillSalaries)
	})

	r.Get("/export/{table}.{format}", h.Export)

	return r
}

// GetTopRoles handles GET /api/jobs/roles/top
func (h *JobsHandler) GetTopRoles(w http.ResponseWriter, r *http.Request) {
	n, ok := h.topN(w, r, config.DefaultTopRoles)
	if !ok {
		return
	}
	roles, err := h.service.TopRoles(r.Context(), n)
	respondList(h, w, r, roles, err)
}

// GetIndustries handles GET /api/jobs/industries
func (h *JobsHandler) GetIndustries(w http.ResponseWriter, r *http.Request) {
	industries, err := h.service.IndustryStats(r.Context())
	respondList(h, w, r, industries, err)
}

// GetSalaryByPosition handles GET /api/jobs/salary/positions
func (h *JobsHandler) GetSalaryByPosition(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.SalaryByPosition(r.Context())
	respondList(h, w, r, positions, err)
}

// GetSkills handles GET /api/jobs/skills
func (h *JobsHandler) GetSkills(w http.ResponseWriter, r *http.Request) {
	n, ok := h.topN(w, r, config.DefaultSkillKeywords)
	if !ok {
		return
	}
	skills, err := h.service.SkillKeywords(r.Context(), n)
	respondList(h, w, r, skills, err)
}

// GetFilterOptions handles GET /api/jobs/filters
func (h *JobsHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	h.respond(w, r, options, err)
}

// GetOverview handles GET /api/jobs/overview
func (h *JobsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	overview, err := h.service.Overview(r.Context(), criteria)
	h.respond(w, r, overview, err)
}

// GetEmploymentTypes handles GET /api/jobs/employment-types
func (h *JobsHandler) GetEmploymentTypes(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	counts, err := h.service.EmploymentDistribution(r.Context(), criteria)
	respondList(h, w, r, counts, err)
}

// GetTopCompanies handles GET /api/jobs/companies/top
func (h *JobsHandler) GetTopCompanies(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	n, ok := h.topN(w, r, config.DefaultTopCompanies)
	if !ok {
		return
	}
	companies, err := h.service.TopCompanies(r.Context(), criteria, n)
	respondList(h, w, r, companies, err)
}

// GetExperience handles GET /api/jobs/experience
func (h *JobsHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	counts, err := h.service.ExperienceDistribution(r.Context(), criteria)
	respondList(h, w, r, counts, err)
}

// GetPostings handles GET /api/jobs/postings
func (h *JobsHandler) GetPostings(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}

	limit, err := intParam(r, "limit", config.DefaultPageLimit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(api.PageRequest{Limit: limit, Offset: offset}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.Postings(r.Context(), criteria, offset, limit)
	h.respond(w, r, page, err)
}

// GetSalaryHistogram handles GET /api/jobs/salary/histogram
func (h *JobsHandler) GetSalaryHistogram(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}

	bins, err := intParam(r, "bins", config.DefaultHistogramBins)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(api.HistogramRequest{Bins: bins}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	histogram, err := h.service.SalaryHistogram(r.Context(), criteria, bins)
	respondList(h, w, r, histogram, err)
}

// GetSalaryByExperience handles GET /api/jobs/salary/experience
func (h *JobsHandler) GetSalaryByExperience(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	stats, err := h.service.SalaryByExperience(r.Context(), criteria)
	respondList(h, w, r, stats, err)
}

// GetIndustrySalaries handles GET /api/jobs/salary/industries
func (h *JobsHandler) GetIndustrySalaries(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	salaries, err := h.service.IndustrySalaries(r.Context(), criteria)
	respondList(h, w, r, salaries, err)
}

// GetSkillSalaries handles GET /api/jobs/salary/skills
func (h *JobsHandler) GetSkillSalaries(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.criteria(w, r)
	if !ok {
		return
	}
	salaries, err := h.service.SkillSalaries(r.Context(), criteria)
	respondList(h, w, r, salaries, err)
}

// Export handles GET /api/jobs/export/{table}.{format} and streams the
// table as a file download
func (h *JobsHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := api.ExportRequest{
		Table:  strings.ToLower(chi.URLParam(r, "table")),
		Format: strings.ToLower(chi.URLParam(r, "format")),
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table, err := h.service.Table(r.Context(), req.Table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// Buffer so a failed export still produces a problem response
	var buf bytes.Buffer
	err = exporter.Write(&buf, req.Format, table)
	h.metrics.RecordExport(r.Context(), req.Table, req.Format, err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("table", req.Table),
			slog.String("format", req.Format),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ExportError(req.Format, err))
		return
	}

	h.logger.InfoContext(r.Context(), "table exported",
		slog.String("table", req.Table),
		slog.String("format", req.Format),
		slog.Int("rows", table.Len()),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", exporter.ContentType(req.Format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, exporter.FileName(req.Table, req.Format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// criteria parses and validates the filter parameters. On failure the
// problem response is already written.
func (h *JobsHandler) criteria(w http.ResponseWriter, r *http.Request) (domain.FilterCriteria, bool) {
	q, err := parseFilterQuery(r)
	if err == nil {
		err = h.validator.ValidateStruct(q)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return domain.FilterCriteria{}, false
	}
	return q.Criteria(), true
}

// topN reads and validates the n parameter
func (h *JobsHandler) topN(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	n, err := intParam(r, "n", def)
	if err == nil {
		err = h.validator.ValidateStruct(api.TopNRequest{N: n})
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return 0, false
	}
	return n, true
}

func (h *JobsHandler) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, v)
}

func respondList[T any](h *JobsHandler, w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.NewListResponse(items))
}
