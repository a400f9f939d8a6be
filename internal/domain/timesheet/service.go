package timesheet

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

type TimesheetService interface {
	// GetWeek returns an unsaved draft shell for weeks that were never saved.
	GetWeek(ctx context.Context, userID int64, query WeekQuery) (Response, error)
	// SaveWeek atomically replaces the week's entries.
	SaveWeek(ctx context.Context, userID int64, req SaveWeekRequest) (Response, error)
	SubmitWeek(ctx context.Context, userID int64, req SubmitWeekRequest) (Response, error)
	ReviewWeek(ctx context.Context, reviewer user.Principal, req ReviewRequest) (Response, error)
	DeleteEntry(ctx context.Context, userID int64, entryID int64) error
	ListForReview(ctx context.Context, query ListQuery) ([]SummaryResponse, error)
}
