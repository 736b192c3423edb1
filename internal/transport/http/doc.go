// Package http implements the HTTP handlers of the job market API. Handlers
// are thin: they parse and validate query parameters, call the services and
// render JSON with chi/render.
//
// # Handler Structure
//
//	func (h *JobsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
//	    criteria, ok := h.criteria(w, r)   // parse + validate, problem on failure
//	    if !ok {
//	        return
//	    }
//	    overview, err := h.service.Overview(r.Context(), criteria)
//	    h.respond(w, r, overview, err)
//	}
//
// # Error Handling
//
// Every error goes through errors.ErrorHandler and is returned as an RFC 7807
// problem:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Request validation failed",
//	    "instance": "/api/jobs/roles/top",
//	    "error_code": "VALIDATION_FAILED",
//	    "trace_id": "..."
//	}
//
// # Filters
//
// Filtered endpoints accept title, industry, experience, position and
// employment_type as repeated parameters plus salary_min and salary_max.
package http
