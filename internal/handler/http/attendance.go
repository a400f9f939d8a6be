package http

import (
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetToday(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Team(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetToday(r.Context(), principal(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockIn(r.Context(), principal(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockOut(r.Context(), principal(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clock out successful", result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	query := attendance.HistoryQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	result, err := h.attendanceService.History(r.Context(), principal(r).ID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Team implements AttendanceHandler.
func (h *attendanceHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	query := attendance.TeamQuery{
		Date:       r.URL.Query().Get("date"),
		Department: optionalQuery(r, "department"),
	}
	result, err := h.attendanceService.TeamForDate(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Upsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	var req attendance.ManagerUpsertRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.ManagerUpsert(r.Context(), principal(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", result)
}
