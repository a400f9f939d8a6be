package regularization

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
)

type Type string

const (
	TypeCheckIn  Type = "check_in"
	TypeCheckOut Type = "check_out"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

func (s Status) State() approval.State {
	return approval.State(s)
}

// Request proposes a corrected check-in or check-out time for one day.
type Request struct {
	ID            int64
	UserID        int64
	WorkDate      time.Time
	Type          Type
	ProposedTime  time.Time
	Reason        string
	Status        Status
	ReviewedBy    *int64
	ReviewedAt    *time.Time
	ReviewComment *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	OwnerName string
}

// Decision is a reviewer's verdict on a pending request.
type Decision struct {
	Status     Status
	ReviewerID int64
	ReviewedAt time.Time
	Comment    *string
}
