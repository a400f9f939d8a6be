package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	// GetByUserAndWeek returns ErrTimesheetNotFound when the week was never saved.
	GetByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) (Timesheet, error)

	// LocateForUpdate creates the week if missing and row-locks it for the
	// rest of the transaction.
	LocateForUpdate(ctx context.Context, userID int64, weekStart time.Time) (Timesheet, error)

	GetByIDForUpdate(ctx context.Context, id int64) (Timesheet, error)
	UpdateStatus(ctx context.Context, id int64, t Transition) (Timesheet, error)

	ListEntries(ctx context.Context, timesheetID int64) ([]Entry, error)
	// ReplaceEntries deletes every entry of the timesheet then inserts entries in order.
	ReplaceEntries(ctx context.Context, timesheetID int64, entries []Entry) ([]Entry, error)

	// GetEntryOwnerForUpdate returns the entry and row-locks its timesheet.
	GetEntryOwnerForUpdate(ctx context.Context, entryID int64) (Entry, Timesheet, error)
	DeleteEntry(ctx context.Context, entryID int64) error

	// ListByStatus includes owner names and total hours.
	ListByStatus(ctx context.Context, status Status) ([]Timesheet, error)
}

// ReferenceRepository resolves project and task ids in one round trip.
type ReferenceRepository interface {
	ResolveRefs(ctx context.Context, projectIDs, taskIDs []int64) (Refs, error)
}
