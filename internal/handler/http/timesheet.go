package http

import (
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	SaveWeek(w http.ResponseWriter, r *http.Request)
	SubmitWeek(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	query := timesheet.WeekQuery{WeekStartDate: r.URL.Query().Get("weekStartDate")}
	result, err := h.timesheetService.GetWeek(r.Context(), principal(r).ID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *timesheetHandlerImpl) SaveWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SaveWeekRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.timesheetService.SaveWeek(r.Context(), principal(r).ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet saved", result)
}

func (h *timesheetHandlerImpl) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SubmitWeekRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.timesheetService.SubmitWeek(r.Context(), principal(r).ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet submitted", result)
}

func (h *timesheetHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.timesheetService.DeleteEntry(r.Context(), principal(r).ID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := timesheet.ListQuery{Status: r.URL.Query().Get("status")}
	result, err := h.timesheetService.ListForReview(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req timesheet.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.timesheetService.ReviewWeek(r.Context(), principal(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Decision recorded", result)
}
