package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apierrors "github.com/kurniaw/sg-job-market-insight/internal/errors"
	api "github.com/kurniaw/sg-job-market-insight/pkg/contracts/api/v1"
)

// parseFilterQuery reads the filter parameters of a request. Multi-valued
// dimensions use repeated parameters since industry names contain commas.
func parseFilterQuery(r *http.Request) (api.FilterQuery, error) {
	values := r.URL.Query()

	q := api.FilterQuery{
		Titles:          multiValue(values, "title"),
		Industries:      multiValue(values, "industry"),
		Experience:      multiValue(values, "experience"),
		Positions:       multiValue(values, "position"),
		EmploymentTypes: multiValue(values, "employment_type"),
	}

	var err error
	if q.SalaryMin, err = floatParam(values, "salary_min"); err != nil {
		return q, err
	}
	if q.SalaryMax, err = floatParam(values, "salary_max"); err != nil {
		return q, err
	}
	if q.SalaryMin != nil && q.SalaryMax != nil && *q.SalaryMin > *q.SalaryMax {
		return q, apierrors.ErrValidation("salary_min", "salary_min must be less than or equal to salary_max")
	}
	return q, nil
}

// multiValue collects every non-empty value of a repeated parameter
func multiValue(values url.Values, name string) []string {
	var out []string
	for _, raw := range values[name] {
		if v := strings.TrimSpace(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func floatParam(values url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apierrors.ErrValidation(name, fmt.Sprintf("%s must be a number", name))
	}
	return &v, nil
}

// intParam reads an integer parameter, returning def when it is absent
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation(name, fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
