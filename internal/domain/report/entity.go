package report

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Filter selects the rows a report folds. From and To are inclusive days.
type Filter struct {
	From              time.Time
	To                time.Time
	Role              *user.Role
	Department        *string
	IncludeUnapproved bool
}

// AttendanceRow is one employee joined with at most one attendance day.
// WorkDate is nil for employees without any record in range.
type AttendanceRow struct {
	UserID     int64
	FullName   string
	Department *string
	WorkDate   *time.Time
	Status     attendance.Status
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// TimesheetRow is an employee's hours on one project over the filter range.
type TimesheetRow struct {
	UserID      int64
	FullName    string
	Department  *string
	ProjectID   int64
	ProjectName string
	Hours       decimal.Decimal
}

type AttendanceSummary struct {
	UserID         int64
	FullName       string
	Department     *string
	DaysPresent    int
	DaysAbsent     int
	LateArrivals   int
	EarlyCheckouts int
	TotalHours     decimal.Decimal
}

type ProjectHours struct {
	ProjectID   int64
	ProjectName string
	Hours       decimal.Decimal
}

type TimesheetSummary struct {
	UserID     int64
	FullName   string
	Department *string
	TotalHours decimal.Decimal
	Projects   []ProjectHours
}

// Kind names an exportable report.
type Kind string

const (
	KindAttendance Kind = "attendance"
	KindTimesheets Kind = "timesheets"
	KindOverview   Kind = "overview"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindAttendance, KindTimesheets, KindOverview:
		return k, true
	}
	return "", false
}
