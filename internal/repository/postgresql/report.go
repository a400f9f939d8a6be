package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// employeeFilter renders the role/department predicates shared by both reports.
func employeeFilter(w *whereBuilder, f report.Filter) {
	w.add("u.is_active = %s", true)
	if f.Role != nil {
		w.add("u.role = %s", string(*f.Role))
	}
	if f.Department != nil {
		w.add("u.department = %s", *f.Department)
	}
}

// AttendanceRows returns one row per (employee, day) plus a bare row for
// employees without records in range.
func (r *reportRepositoryImpl) AttendanceRows(ctx context.Context, f report.Filter) ([]report.AttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	from, to := w.next(f.From), w.next(f.To)
	employeeFilter(&w, f)

	query := `
		SELECT u.id, u.full_name, u.department, a.work_date, COALESCE(a.status, ''), a.check_in_at, a.check_out_at
		FROM user_account u
		LEFT JOIN attendance a ON a.user_id = u.id AND a.work_date BETWEEN ` + from + ` AND ` + to +
		w.where() + `
		ORDER BY u.full_name ASC, u.id ASC, a.work_date ASC
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance report: %w", err)
	}
	defer rows.Close()

	out := []report.AttendanceRow{}
	for rows.Next() {
		var row report.AttendanceRow
		if err := rows.Scan(&row.UserID, &row.FullName, &row.Department, &row.WorkDate, &row.Status, &row.CheckInAt, &row.CheckOutAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TimesheetRows sums entry hours per (employee, project) for entries dated in range.
func (r *reportRepositoryImpl) TimesheetRows(ctx context.Context, f report.Filter) ([]report.TimesheetRow, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	w.add("e.work_date BETWEEN %s AND %s", f.From, f.To)
	if !f.IncludeUnapproved {
		w.add("t.status = %s", "approved")
	}
	employeeFilter(&w, f)

	query := `
		SELECT u.id, u.full_name, u.department, p.id, p.name, SUM(e.hours)::text
		FROM timesheet_entry e
		JOIN timesheet t ON t.id = e.timesheet_id
		JOIN user_account u ON u.id = t.user_id
		JOIN project p ON p.id = e.project_id` +
		w.where() + `
		GROUP BY u.id, u.full_name, u.department, p.id, p.name
		ORDER BY u.full_name ASC, u.id ASC, p.name ASC
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet report: %w", err)
	}
	defer rows.Close()

	out := []report.TimesheetRow{}
	for rows.Next() {
		var (
			row   report.TimesheetRow
			hours string
		)
		if err := rows.Scan(&row.UserID, &row.FullName, &row.Department, &row.ProjectID, &row.ProjectName, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet report row: %w", err)
		}
		if row.Hours, err = decimal.NewFromString(hours); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
