package report

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Rules carries the thresholds used when folding attendance.
type Rules struct {
	Location *time.Location
	LateFrom time.Duration // offset from local midnight
	FullDay  time.Duration
}

func DefaultRules(loc *time.Location) Rules {
	return Rules{Location: loc, LateFrom: 9 * time.Hour, FullDay: 8 * time.Hour}
}

func (r Rules) isLate(checkIn time.Time) bool {
	local := checkIn.In(r.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.Location)
	return local.Sub(midnight) >= r.LateFrom
}

// FoldAttendance groups rows per employee, preserving first-seen order.
func FoldAttendance(rows []AttendanceRow, rules Rules) []AttendanceSummary {
	index := make(map[int64]int)
	var out []AttendanceSummary

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(out)
			index[row.UserID] = i
			out = append(out, AttendanceSummary{
				UserID:     row.UserID,
				FullName:   row.FullName,
				Department: row.Department,
				TotalHours: decimal.Zero,
			})
		}
		if row.WorkDate == nil {
			continue
		}

		s := &out[i]
		switch row.Status {
		case attendance.StatusPresent:
			s.DaysPresent++
		case attendance.StatusAbsent:
			s.DaysAbsent++
		}
		if row.CheckInAt != nil && rules.isLate(*row.CheckInAt) {
			s.LateArrivals++
		}
		if row.CheckInAt != nil && row.CheckOutAt != nil {
			worked := row.CheckOutAt.Sub(*row.CheckInAt)
			if worked < rules.FullDay {
				s.EarlyCheckouts++
			}
			s.TotalHours = s.TotalHours.Add(decimal.NewFromFloat(worked.Hours()))
		}
	}

	for i := range out {
		out[i].TotalHours = out[i].TotalHours.Round(2)
	}
	return out
}

// FoldTimesheet groups (employee, project) rows per employee.
func FoldTimesheet(rows []TimesheetRow) []TimesheetSummary {
	index := make(map[int64]int)
	var out []TimesheetSummary

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(out)
			index[row.UserID] = i
			out = append(out, TimesheetSummary{
				UserID:     row.UserID,
				FullName:   row.FullName,
				Department: row.Department,
				TotalHours: decimal.Zero,
			})
		}
		s := &out[i]
		s.TotalHours = s.TotalHours.Add(row.Hours)
		s.Projects = append(s.Projects, ProjectHours{
			ProjectID:   row.ProjectID,
			ProjectName: row.ProjectName,
			Hours:       row.Hours,
		})
	}
	return out
}
