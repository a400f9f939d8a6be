package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/export"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	rules      report.Rules
}

func NewReportService(reportRepo report.ReportRepository, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		rules:      report.DefaultRules(loc),
	}
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, query report.Query) (report.AttendanceReport, error) {
	if err := query.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	return s.attendance(ctx, query.ToFilter())
}

// TimesheetSummary implements report.ReportService.
func (s *ReportServiceImpl) TimesheetSummary(ctx context.Context, query report.Query) (report.TimesheetReport, error) {
	if err := query.Validate(); err != nil {
		return report.TimesheetReport{}, err
	}
	return s.timesheets(ctx, query.ToFilter())
}

// Overview implements report.ReportService.
func (s *ReportServiceImpl) Overview(ctx context.Context, query report.Query) (report.Overview, error) {
	if err := query.Validate(); err != nil {
		return report.Overview{}, err
	}
	filter := query.ToFilter()

	var overview report.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.Attendance, err = s.attendance(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		overview.Timesheets, err = s.timesheets(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Overview{}, err
	}
	return overview, nil
}

func (s *ReportServiceImpl) attendance(ctx context.Context, filter report.Filter) (report.AttendanceReport, error) {
	rows, err := s.reportRepo.AttendanceRows(ctx, filter)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("load attendance rows: %w", err)
	}
	return report.NewAttendanceReport(filter, report.FoldAttendance(rows, s.rules)), nil
}

func (s *ReportServiceImpl) timesheets(ctx context.Context, filter report.Filter) (report.TimesheetReport, error) {
	rows, err := s.reportRepo.TimesheetRows(ctx, filter)
	if err != nil {
		return report.TimesheetReport{}, fmt.Errorf("load timesheet rows: %w", err)
	}
	return report.NewTimesheetReport(filter, report.FoldTimesheet(rows)), nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, kind report.Kind, query report.Query) (report.File, error) {
	var sheets []export.Sheet
	switch kind {
	case report.KindAttendance:
		r, err := s.AttendanceSummary(ctx, query)
		if err != nil {
			return report.File{}, err
		}
		sheets = append(sheets, attendanceSheet(r))
	case report.KindTimesheets:
		r, err := s.TimesheetSummary(ctx, query)
		if err != nil {
			return report.File{}, err
		}
		sheets = append(sheets, timesheetSheets(r)...)
	case report.KindOverview:
		r, err := s.Overview(ctx, query)
		if err != nil {
			return report.File{}, err
		}
		sheets = append(sheets, attendanceSheet(r.Attendance))
		sheets = append(sheets, timesheetSheets(r.Timesheets)...)
	default:
		return report.File{}, report.ErrUnknownKind
	}

	body, err := export.Workbook(sheets...)
	if err != nil {
		return report.File{}, fmt.Errorf("render %s export: %w", kind, err)
	}
	return report.File{
		Name:        fmt.Sprintf("%s-report_%s_%s.xlsx", kind, query.From, query.To),
		ContentType: export.ContentTypeXLSX,
		Body:        body,
	}, nil
}

func attendanceSheet(r report.AttendanceReport) export.Sheet {
	sheet := export.Sheet{
		Name:   "Attendance",
		Header: []string{"Employee ID", "Name", "Department", "Days Present", "Days Absent", "Late Arrivals", "Early Checkouts", "Total Hours"},
	}
	for _, e := range r.Employees {
		sheet.Rows = append(sheet.Rows, []any{
			e.UserID, e.FullName, deref(e.Department), e.DaysPresent, e.DaysAbsent, e.LateArrivals, e.EarlyCheckouts, e.TotalHours,
		})
	}
	return sheet
}

func timesheetSheets(r report.TimesheetReport) []export.Sheet {
	totals := export.Sheet{
		Name:   "Timesheet Totals",
		Header: []string{"Employee ID", "Name", "Department", "Total Hours"},
	}
	byProject := export.Sheet{
		Name:   "Timesheet Projects",
		Header: []string{"Employee ID", "Name", "Project ID", "Project", "Hours"},
	}
	for _, e := range r.Employees {
		totals.Rows = append(totals.Rows, []any{e.UserID, e.FullName, deref(e.Department), e.TotalHours})
		for _, p := range e.Projects {
			byProject.Rows = append(byProject.Rows, []any{e.UserID, e.FullName, p.ProjectID, p.ProjectName, p.Hours})
		}
	}
	return []export.Sheet{totals, byProject}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
