package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists one row per (user, work date). Days are
// midnight UTC values.
type AttendanceRepository interface {
	// GetByUserAndDate returns ErrAttendanceNotFound when no row exists.
	GetByUserAndDate(ctx context.Context, userID int64, day time.Time) (Record, error)

	// UpsertClockIn creates the day's row or marks it present, keeping an existing check-in.
	UpsertClockIn(ctx context.Context, userID int64, day time.Time, at time.Time) (Record, error)

	// ClockOut sets check_out_at only on a row that is checked in and still open.
	ClockOut(ctx context.Context, userID int64, day time.Time, at time.Time) (Record, error)

	// Overwrite replaces status and both timestamps, creating the row if needed.
	Overwrite(ctx context.Context, userID int64, day time.Time, o Override) (Record, error)

	// ApplyCheckIn writes a corrected check-in and marks the day present.
	ApplyCheckIn(ctx context.Context, userID int64, day time.Time, at time.Time) (Record, error)

	// ApplyCheckOut writes a corrected check-out on a row checked in at or before at.
	ApplyCheckOut(ctx context.Context, userID int64, day time.Time, at time.Time) (Record, error)

	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]Record, error)
	ListByDate(ctx context.Context, day time.Time) ([]Record, error)
}
