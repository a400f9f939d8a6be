package timesheet

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

func (s Status) State() approval.State {
	return approval.State(s)
}

// Timesheet is one user's week. A zero ID marks an unsaved shell.
type Timesheet struct {
	ID            int64
	UserID        int64
	WeekStartDate time.Time
	Status        Status
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	ApprovedBy    *int64
	ReviewComment *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Entries []Entry

	// Join
	OwnerName  string
	TotalHours decimal.Decimal
}

// Shell is the draft returned for a week nobody has saved yet.
func Shell(userID int64, weekStart time.Time) Timesheet {
	return Timesheet{UserID: userID, WeekStartDate: weekStart, Status: StatusDraft, Entries: []Entry{}}
}

func (t Timesheet) Persisted() bool {
	return t.ID != 0
}

func (t Timesheet) SumHours() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.Hours)
	}
	return total
}

type Entry struct {
	ID          int64
	TimesheetID int64
	ProjectID   int64
	TaskID      *int64
	WorkDate    time.Time
	Hours       decimal.Decimal
	Note        *string
	CreatedAt   time.Time
}

// Transition is the full set of review columns written on a status change.
type Transition struct {
	Status        Status
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	ApprovedBy    *int64
	ReviewComment *string
}

// Refs is what a batched lookup found for a set of entry references.
type Refs struct {
	Projects    map[int64]bool
	TaskProject map[int64]int64
}

// CheckRefs confirms every entry names an existing project and that any task
// belongs to that same project.
func CheckRefs(entries []Entry, refs Refs) error {
	var errs entryErrors
	for i, e := range entries {
		if !refs.Projects[e.ProjectID] {
			errs.add(i, "project_id", "project does not exist")
			continue
		}
		if e.TaskID == nil {
			continue
		}
		projectID, ok := refs.TaskProject[*e.TaskID]
		switch {
		case !ok:
			errs.add(i, "task_id", "task does not exist")
		case projectID != e.ProjectID:
			errs.add(i, "task_id", "task does not belong to the project")
		}
	}
	return errs.err()
}

// RefIDs collects the distinct project and task ids referenced by entries.
func RefIDs(entries []Entry) (projectIDs, taskIDs []int64) {
	seenP, seenT := map[int64]bool{}, map[int64]bool{}
	for _, e := range entries {
		if !seenP[e.ProjectID] {
			seenP[e.ProjectID] = true
			projectIDs = append(projectIDs, e.ProjectID)
		}
		if e.TaskID != nil && !seenT[*e.TaskID] {
			seenT[*e.TaskID] = true
			taskIDs = append(taskIDs, *e.TaskID)
		}
	}
	return projectIDs, taskIDs
}
