package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	attendance.AttendanceService
	clockedIn []int64
	upserts   []attendance.ManagerUpsertRequest
}

func (f *fakeAttendanceService) ClockIn(_ context.Context, userID int64) (attendance.RecordResponse, error) {
	f.clockedIn = append(f.clockedIn, userID)
	return attendance.RecordResponse{UserID: userID, Status: attendance.StatusPresent}, nil
}

func (f *fakeAttendanceService) ClockOut(context.Context, int64) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
}

func (f *fakeAttendanceService) ManagerUpsert(_ context.Context, _ user.Principal, req attendance.ManagerUpsertRequest) (attendance.RecordResponse, error) {
	f.upserts = append(f.upserts, req)
	return attendance.RecordResponse{UserID: req.UserID, Status: attendance.Status(req.Status)}, nil
}

type fakeRegularizationService struct {
	regularization.RegularizationService
	decided []regularization.DecisionRequest
}

func (f *fakeRegularizationService) Create(_ context.Context, userID int64, req regularization.CreateRequest) (regularization.Response, error) {
	if req.WorkDate == "2024-11-05" {
		return regularization.Response{}, regularization.ErrDuplicatePending
	}
	return regularization.Response{ID: 1, UserID: userID, Status: regularization.StatusPending}, nil
}

func (f *fakeRegularizationService) Decide(_ context.Context, _ user.Principal, req regularization.DecisionRequest) (regularization.Response, error) {
	f.decided = append(f.decided, req)
	if req.ID == 404 {
		return regularization.Response{}, regularization.ErrRequestNotFound
	}
	return regularization.Response{ID: req.ID, Status: regularization.StatusApproved}, nil
}

type fakeTimesheetService struct {
	timesheet.TimesheetService
	deleted []int64
}

func (f *fakeTimesheetService) GetWeek(_ context.Context, userID int64, query timesheet.WeekQuery) (timesheet.Response, error) {
	if err := query.Validate(); err != nil {
		return timesheet.Response{}, err
	}
	return timesheet.Response{UserID: userID, WeekStartDate: query.WeekStartDate, Status: timesheet.StatusDraft}, nil
}

func (f *fakeTimesheetService) SaveWeek(context.Context, int64, timesheet.SaveWeekRequest) (timesheet.Response, error) {
	return timesheet.Response{}, approval.ErrImmutable
}

func (f *fakeTimesheetService) DeleteEntry(_ context.Context, _ int64, entryID int64) error {
	f.deleted = append(f.deleted, entryID)
	return nil
}

type fakeProjectService struct {
	project.ProjectService
	moved []project.TaskStatusRequest
}

func (f *fakeProjectService) MoveTask(_ context.Context, actor user.Principal, req project.TaskStatusRequest) (project.TaskResponse, error) {
	f.moved = append(f.moved, req)
	return project.TaskResponse{ID: req.ID, Status: project.TaskStatus(req.Status), CreatedBy: actor.ID}, nil
}

type fakeReportService struct {
	report.ReportService
}

func (fakeReportService) Export(_ context.Context, kind report.Kind, _ report.Query) (report.File, error) {
	return report.File{Name: string(kind) + ".xlsx", ContentType: export.ContentTypeXLSX, Body: []byte("PK")}, nil
}

type fakeDashboardService struct {
	seen []user.Principal
}

func (f *fakeDashboardService) Summary(_ context.Context, p user.Principal) (dashboard.Response, error) {
	f.seen = append(f.seen, p)
	return dashboard.Response{Date: "2024-11-07"}, nil
}

func TestRouter_Dashboard(t *testing.T) {
	dash := &fakeDashboardService{}
	srv := newTestServer(t, services{dashboard: dash})

	rec := srv.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/dashboard", srv.token(t, 5, user.RoleHR), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []user.Principal{{ID: 5, Role: user.RoleHR}}, dash.seen)
}

func TestRouter_Attendance(t *testing.T) {
	att := &fakeAttendanceService{}
	srv := newTestServer(t, services{attendance: att})
	employeeToken := srv.token(t, 7, user.RoleEmployee)

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/me/clock-in", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{7}, att.clockedIn)

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/me/clock-out", employeeToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", decodeBody(t, rec).Error.Code)

	body := map[string]any{"work_date": "2024-11-04", "status": "absent"}
	rec = srv.do(t, http.MethodPut, "/api/v1/attendance/team/9", employeeToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/attendance/team/9", srv.token(t, 2, user.RoleManager), body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, att.upserts, 1)
	assert.Equal(t, int64(9), att.upserts[0].UserID)
}

func TestRouter_Unauthenticated(t *testing.T) {
	srv := newTestServer(t, services{attendance: &fakeAttendanceService{}})

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/me/clock-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/me/clock-in", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Regularization(t *testing.T) {
	reg := &fakeRegularizationService{}
	srv := newTestServer(t, services{regularization: reg})
	employeeToken := srv.token(t, 7, user.RoleEmployee)

	create := map[string]any{"work_date": "2024-11-04", "type": "check_in", "proposed_time": "09:05", "reason": "badge reader down"}
	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/me/regularization", employeeToken, create)
	assert.Equal(t, http.StatusCreated, rec.Code)

	create["work_date"] = "2024-11-05"
	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/me/regularization", employeeToken, create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", decodeBody(t, rec).Error.Code)

	decision := map[string]any{"action": "approve"}
	rec = srv.do(t, http.MethodPost, "/api/v1/regularizations/1/decision", employeeToken, decision)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	managerToken := srv.token(t, 2, user.RoleManager)
	rec = srv.do(t, http.MethodPost, "/api/v1/regularizations/1/decision", managerToken, decision)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/regularizations/404/decision", managerToken, decision)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/regularizations/abc/decision", managerToken, decision)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, reg.decided, 2)
}

func TestRouter_Timesheet(t *testing.T) {
	ts := &fakeTimesheetService{}
	srv := newTestServer(t, services{timesheet: ts})
	token := srv.token(t, 7, user.RoleEmployee)

	rec := srv.do(t, http.MethodGet, "/api/v1/timesheets/me?weekStartDate=2024-11-04", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"week_start_date":"2024-11-04"`)

	rec = srv.do(t, http.MethodGet, "/api/v1/timesheets/me?weekStartDate=2024-11-05", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/timesheets/me/save", token, map[string]any{"week_start_date": "2024-11-04"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, approval.ErrImmutable.Message, decodeBody(t, rec).Message)

	rec = srv.do(t, http.MethodDelete, "/api/v1/timesheets/me/entries/31", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{31}, ts.deleted)

	rec = srv.do(t, http.MethodGet, "/api/v1/timesheets?status=submitted", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_TaskMoveAllowedForEmployees(t *testing.T) {
	proj := &fakeProjectService{}
	srv := newTestServer(t, services{project: proj})
	token := srv.token(t, 7, user.RoleEmployee)

	rec := srv.do(t, http.MethodPatch, "/api/v1/tasks/12/status", token, map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, proj.moved, 1)
	assert.Equal(t, int64(12), proj.moved[0].ID)

	rec = srv.do(t, http.MethodDelete, "/api/v1/tasks/12", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ReportExport(t *testing.T) {
	srv := newTestServer(t, services{report: fakeReportService{}})

	rec := srv.do(t, http.MethodGet, "/api/v1/reports/attendance/export?from=2024-11-01&to=2024-11-30", srv.token(t, 1, user.RoleHR), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance.xlsx")

	rec = srv.do(t, http.MethodGet, "/api/v1/reports/payroll/export", srv.token(t, 1, user.RoleHR), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/reports/attendance/export", srv.token(t, 7, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, services{})

	rec := srv.do(t, http.MethodGet, "/api/v1/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ops_http_requests_total")
}
