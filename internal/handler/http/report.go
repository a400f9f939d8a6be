package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	Timesheets(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportQuery(w http.ResponseWriter, r *http.Request) (report.Query, bool) {
	q := r.URL.Query()
	query := report.Query{
		From:       q.Get("from"),
		To:         q.Get("to"),
		Role:       optionalQuery(r, "role"),
		Department: optionalQuery(r, "department"),
	}
	if raw := q.Get("include_unapproved"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "invalid include_unapproved parameter", nil)
			return report.Query{}, false
		}
		query.IncludeUnapproved = include
	}
	return query, true
}

// Attendance handles GET /reports/attendance
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	query, ok := reportQuery(w, r)
	if !ok {
		return
	}
	result, err := h.reportService.AttendanceSummary(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Timesheets handles GET /reports/timesheets
func (h *reportHandlerImpl) Timesheets(w http.ResponseWriter, r *http.Request) {
	query, ok := reportQuery(w, r)
	if !ok {
		return
	}
	result, err := h.reportService.TimesheetSummary(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Overview handles GET /reports/overview
func (h *reportHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	query, ok := reportQuery(w, r)
	if !ok {
		return
	}
	result, err := h.reportService.Overview(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Export handles GET /reports/{kind}/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	kind, ok := report.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		response.HandleError(w, report.ErrUnknownKind)
		return
	}
	query, ok := reportQuery(w, r)
	if !ok {
		return
	}
	file, err := h.reportService.Export(r.Context(), kind, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, file.Name, file.ContentType, file.Body)
}
