package attendance

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// GetToday returns today's record, or an unsaved not_checked_in placeholder.
	GetToday(ctx context.Context, userID int64) (RecordResponse, error)

	// ClockIn is idempotent within a day; the first check-in time sticks.
	ClockIn(ctx context.Context, userID int64) (RecordResponse, error)

	ClockOut(ctx context.Context, userID int64) (RecordResponse, error)

	// ManagerUpsert overwrites a team member's day.
	ManagerUpsert(ctx context.Context, actor user.Principal, req ManagerUpsertRequest) (RecordResponse, error)

	History(ctx context.Context, userID int64, query HistoryQuery) ([]RecordResponse, error)
	TeamForDate(ctx context.Context, query TeamQuery) (TeamResponse, error)
}
