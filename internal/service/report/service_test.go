package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubRepo struct {
	attendance []report.AttendanceRow
	timesheets []report.TimesheetRow
	err        error
}

func (s *stubRepo) AttendanceRows(ctx context.Context, f report.Filter) ([]report.AttendanceRow, error) {
	return s.attendance, s.err
}

func (s *stubRepo) TimesheetRows(ctx context.Context, f report.Filter) ([]report.TimesheetRow, error) {
	return s.timesheets, nil
}

func at(day, hour, minute int) *time.Time {
	t := time.Date(2024, 11, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func seededRepo() *stubRepo {
	d4, d5 := at(4, 0, 0), at(5, 0, 0)
	return &stubRepo{
		attendance: []report.AttendanceRow{
			{UserID: 1, FullName: "Asha", WorkDate: d4, Status: attendance.StatusPresent, CheckInAt: at(4, 8, 30), CheckOutAt: at(4, 17, 30)},
			{UserID: 1, FullName: "Asha", WorkDate: d5, Status: attendance.StatusPresent, CheckInAt: at(5, 9, 15), CheckOutAt: at(5, 16, 15)},
			{UserID: 2, FullName: "Ravi"},
		},
		timesheets: []report.TimesheetRow{
			{UserID: 1, FullName: "Asha", ProjectID: 7, ProjectName: "Portal", Hours: decimal.RequireFromString("12.5")},
			{UserID: 1, FullName: "Asha", ProjectID: 8, ProjectName: "Infra", Hours: decimal.RequireFromString("3")},
		},
	}
}

func newService(repo report.ReportRepository) *ReportServiceImpl {
	return &ReportServiceImpl{reportRepo: repo, rules: report.DefaultRules(time.UTC)}
}

var november = report.Query{From: "2024-11-01", To: "2024-11-30"}

func TestAttendanceSummary(t *testing.T) {
	svc := newService(seededRepo())

	r, err := svc.AttendanceSummary(context.Background(), november)
	require.NoError(t, err)
	require.Len(t, r.Employees, 2)

	asha := r.Employees[0]
	assert.Equal(t, 2, asha.DaysPresent)
	assert.Equal(t, 1, asha.LateArrivals)
	assert.Equal(t, 1, asha.EarlyCheckouts)
	assert.Equal(t, 16.0, asha.TotalHours)

	assert.Equal(t, "Ravi", r.Employees[1].FullName)
	assert.Zero(t, r.Employees[1].DaysPresent)
}

func TestQueryValidation(t *testing.T) {
	svc := newService(seededRepo())
	ctx := context.Background()

	_, err := svc.AttendanceSummary(ctx, report.Query{From: "2024-12-01", To: "2024-11-01"})
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = svc.TimesheetSummary(ctx, report.Query{From: "2023-01-01", To: "2024-11-01"})
	assert.ErrorIs(t, err, report.ErrRangeTooWide)
}

func TestOverview(t *testing.T) {
	svc := newService(seededRepo())

	o, err := svc.Overview(context.Background(), november)
	require.NoError(t, err)
	assert.Len(t, o.Attendance.Employees, 2)
	require.Len(t, o.Timesheets.Employees, 1)
	assert.Equal(t, 15.5, o.Timesheets.Employees[0].TotalHours)
	assert.Len(t, o.Timesheets.Employees[0].Projects, 2)

	failing := seededRepo()
	failing.err = errors.New("connection reset")
	_, err = newService(failing).Overview(context.Background(), november)
	assert.ErrorContains(t, err, "connection reset")
}

func TestExport(t *testing.T) {
	svc := newService(seededRepo())
	ctx := context.Background()

	file, err := svc.Export(ctx, report.KindOverview, november)
	require.NoError(t, err)
	assert.Equal(t, "overview-report_2024-11-01_2024-11-30.xlsx", file.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Attendance", "Timesheet Totals", "Timesheet Projects"}, wb.GetSheetList())

	rows, err := wb.GetRows("Timesheet Projects")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = svc.Export(ctx, report.Kind("payroll"), november)
	assert.ErrorIs(t, err, report.ErrUnknownKind)
}
