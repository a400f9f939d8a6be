package report

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

const maxRangeDays = 366

type Query struct {
	From              string  `json:"from" validate:"required,date"`
	To                string  `json:"to" validate:"required,date"`
	Role              *string `json:"role,omitempty" validate:"omitempty,oneof=admin hr manager employee"`
	Department        *string `json:"department,omitempty" validate:"omitempty,max=100"`
	IncludeUnapproved bool    `json:"include_unapproved"`
}

func (q *Query) Validate() error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	from, _ := utils.ParseDate(q.From)
	to, _ := utils.ParseDate(q.To)
	if from.After(to) {
		return ErrInvalidRange
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return ErrRangeTooWide
	}
	return nil
}

// ToFilter assumes Validate passed.
func (q *Query) ToFilter() Filter {
	from, _ := utils.ParseDate(q.From)
	to, _ := utils.ParseDate(q.To)
	f := Filter{From: from, To: to, Department: q.Department, IncludeUnapproved: q.IncludeUnapproved}
	if q.Role != nil {
		if r, ok := user.ParseRole(*q.Role); ok {
			f.Role = &r
		}
	}
	return f
}

type AttendanceSummaryResponse struct {
	UserID         int64   `json:"user_id"`
	FullName       string  `json:"full_name"`
	Department     *string `json:"department"`
	DaysPresent    int     `json:"days_present"`
	DaysAbsent     int     `json:"days_absent"`
	LateArrivals   int     `json:"late_arrivals"`
	EarlyCheckouts int     `json:"early_checkouts"`
	TotalHours     float64 `json:"total_hours"`
}

type AttendanceReport struct {
	From      string                      `json:"from"`
	To        string                      `json:"to"`
	Employees []AttendanceSummaryResponse `json:"employees"`
}

func NewAttendanceReport(f Filter, rows []AttendanceSummary) AttendanceReport {
	out := AttendanceReport{From: utils.FormatDate(f.From), To: utils.FormatDate(f.To), Employees: make([]AttendanceSummaryResponse, 0, len(rows))}
	for _, r := range rows {
		out.Employees = append(out.Employees, AttendanceSummaryResponse{
			UserID:         r.UserID,
			FullName:       r.FullName,
			Department:     r.Department,
			DaysPresent:    r.DaysPresent,
			DaysAbsent:     r.DaysAbsent,
			LateArrivals:   r.LateArrivals,
			EarlyCheckouts: r.EarlyCheckouts,
			TotalHours:     r.TotalHours.InexactFloat64(),
		})
	}
	return out
}

type ProjectHoursResponse struct {
	ProjectID   int64   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
}

type TimesheetSummaryResponse struct {
	UserID     int64                  `json:"user_id"`
	FullName   string                 `json:"full_name"`
	Department *string                `json:"department"`
	TotalHours float64                `json:"total_hours"`
	Projects   []ProjectHoursResponse `json:"projects"`
}

type TimesheetReport struct {
	From              string                     `json:"from"`
	To                string                     `json:"to"`
	IncludeUnapproved bool                       `json:"include_unapproved"`
	Employees         []TimesheetSummaryResponse `json:"employees"`
}

func NewTimesheetReport(f Filter, rows []TimesheetSummary) TimesheetReport {
	out := TimesheetReport{
		From:              utils.FormatDate(f.From),
		To:                utils.FormatDate(f.To),
		IncludeUnapproved: f.IncludeUnapproved,
		Employees:         make([]TimesheetSummaryResponse, 0, len(rows)),
	}
	for _, r := range rows {
		emp := TimesheetSummaryResponse{
			UserID:     r.UserID,
			FullName:   r.FullName,
			Department: r.Department,
			TotalHours: r.TotalHours.InexactFloat64(),
			Projects:   make([]ProjectHoursResponse, 0, len(r.Projects)),
		}
		for _, p := range r.Projects {
			emp.Projects = append(emp.Projects, ProjectHoursResponse{ProjectID: p.ProjectID, ProjectName: p.ProjectName, Hours: p.Hours.InexactFloat64()})
		}
		out.Employees = append(out.Employees, emp)
	}
	return out
}

type Overview struct {
	Attendance AttendanceReport `json:"attendance"`
	Timesheets TimesheetReport  `json:"timesheets"`
}

// File is a rendered export ready to stream.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
