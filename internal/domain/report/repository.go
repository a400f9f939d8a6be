package report

import "context"

type ReportRepository interface {
	// AttendanceRows returns every matching active employee with their days in range.
	AttendanceRows(ctx context.Context, filter Filter) ([]AttendanceRow, error)
	// TimesheetRows returns hours summed per (employee, project).
	TimesheetRows(ctx context.Context, filter Filter) ([]TimesheetRow, error)
}
