package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) GetAttendance(ctx context.Context, userID int64, day time.Time) (dashboard.AttendanceSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, check_in_at, check_out_at
		FROM attendance
		WHERE user_id = $1 AND work_date = $2
	`

	var snap dashboard.AttendanceSnapshot
	err := q.QueryRow(ctx, query, userID, day).Scan(&snap.Status, &snap.CheckInAt, &snap.CheckOutAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dashboard.AttendanceSnapshot{}, nil
	}
	if err != nil {
		return dashboard.AttendanceSnapshot{}, fmt.Errorf("failed to get attendance snapshot: %w", err)
	}
	snap.Found = true
	return snap, nil
}

// GetWeek sums entry hours in the same query as the header.
func (r *dashboardRepositoryImpl) GetWeek(ctx context.Context, userID int64, weekStart time.Time) (dashboard.WeekSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.status, COALESCE(SUM(e.hours), 0)::text
		FROM timesheet t
		LEFT JOIN timesheet_entry e ON e.timesheet_id = t.id
		WHERE t.user_id = $1 AND t.week_start_date = $2
		GROUP BY t.id, t.status
	`

	var (
		snap  dashboard.WeekSnapshot
		hours string
	)
	err := q.QueryRow(ctx, query, userID, weekStart).Scan(&snap.Status, &hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return dashboard.WeekSnapshot{}, nil
	}
	if err != nil {
		return dashboard.WeekSnapshot{}, fmt.Errorf("failed to get week snapshot: %w", err)
	}
	if snap.TotalHours, err = decimal.NewFromString(hours); err != nil {
		return dashboard.WeekSnapshot{}, fmt.Errorf("invalid hours %q: %w", hours, err)
	}
	snap.Found = true
	return snap, nil
}

func (r *dashboardRepositoryImpl) CountOpenTasks(ctx context.Context, assigneeID int64) (dashboard.TaskCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'todo'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'blocked')
		FROM task
		WHERE assignee_id = $1
	`

	var counts dashboard.TaskCounts
	if err := q.QueryRow(ctx, query, assigneeID).Scan(&counts.Todo, &counts.InProgress, &counts.Blocked); err != nil {
		return dashboard.TaskCounts{}, fmt.Errorf("failed to count open tasks: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepositoryImpl) CountReviewQueue(ctx context.Context, reviewerID int64) (dashboard.ReviewQueue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM attendance_regularization WHERE status = 'pending' AND user_id <> $1),
			(SELECT COUNT(*) FROM timesheet WHERE status = 'submitted' AND user_id <> $1)
	`

	var queue dashboard.ReviewQueue
	if err := q.QueryRow(ctx, query, reviewerID).Scan(&queue.PendingRegularizations, &queue.SubmittedTimesheets); err != nil {
		return dashboard.ReviewQueue{}, fmt.Errorf("failed to count review queue: %w", err)
	}
	return queue, nil
}

func (r *dashboardRepositoryImpl) CountTeam(ctx context.Context, day time.Time) (dashboard.TeamCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.status = 'present'),
			COUNT(*) FILTER (WHERE a.status = 'absent')
		FROM user_account u
		LEFT JOIN attendance a ON a.user_id = u.id AND a.work_date = $1
		WHERE u.is_active
	`

	var counts dashboard.TeamCounts
	if err := q.QueryRow(ctx, query, day).Scan(&counts.Total, &counts.Present, &counts.Absent); err != nil {
		return dashboard.TeamCounts{}, fmt.Errorf("failed to count team attendance: %w", err)
	}
	return counts, nil
}
