package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceSnapshot is one user's row for a day. Found is false when no row exists.
type AttendanceSnapshot struct {
	Found      bool
	Status     string
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// WeekSnapshot is one user's timesheet header for a week. Found is false for an unsaved week.
type WeekSnapshot struct {
	Found      bool
	Status     string
	TotalHours decimal.Decimal
}

// TeamCounts holds raw counts for a day; users without a row are not counted in Present or Absent.
type TeamCounts struct {
	Total   int64
	Present int64
	Absent  int64
}

// DashboardRepository reads the aggregates behind the summary. Each method is a single query.
type DashboardRepository interface {
	GetAttendance(ctx context.Context, userID int64, day time.Time) (AttendanceSnapshot, error)
	GetWeek(ctx context.Context, userID int64, weekStart time.Time) (WeekSnapshot, error)
	CountOpenTasks(ctx context.Context, assigneeID int64) (TaskCounts, error)
	// CountReviewQueue excludes items owned by reviewerID.
	CountReviewQueue(ctx context.Context, reviewerID int64) (ReviewQueue, error)
	CountTeam(ctx context.Context, day time.Time) (TeamCounts, error)
}
