package report

import "context"

type ReportService interface {
	AttendanceSummary(ctx context.Context, query Query) (AttendanceReport, error)
	TimesheetSummary(ctx context.Context, query Query) (TimesheetReport, error)
	// Overview fetches both sections concurrently.
	Overview(ctx context.Context, query Query) (Overview, error)
	Export(ctx context.Context, kind Kind, query Query) (File, error)
}
