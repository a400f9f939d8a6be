// Package approval holds the status guards shared by timesheets and
// regularization requests.
package approval

import (
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

// State is the lifecycle position of a reviewable item.
type State string

const (
	StateDraft     State = "draft"
	StatePending   State = "pending"
	StateSubmitted State = "submitted"
	StateApproved  State = "approved"
	StateRejected  State = "rejected"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject:
		return a, true
	}
	return "", false
}

// Outcome is the state an item moves to under a.
func (a Action) Outcome() State {
	if a == ActionApprove {
		return StateApproved
	}
	return StateRejected
}

func CanMutate(s State) bool {
	return s == StateDraft || s == StateRejected
}

func CanSubmit(s State) bool {
	return s == StateDraft || s == StateRejected
}

// CanReview accepts submitted timesheets and pending requests.
func CanReview(s State) bool {
	return s == StateSubmitted || s == StatePending
}

// CheckMutate explains why an item in state s cannot be edited.
func CheckMutate(s State) error {
	switch {
	case CanMutate(s):
		return nil
	case s == StateApproved:
		return ErrImmutable
	default:
		return ErrLocked
	}
}

func CheckSubmit(s State) error {
	if CanSubmit(s) {
		return nil
	}
	if s == StateApproved {
		return ErrImmutable
	}
	return ErrAlreadySubmitted
}

func CheckReview(s State) error {
	if CanReview(s) {
		return nil
	}
	return ErrNotReviewable
}

// CheckReviewer rejects reviewers deciding on their own items.
func CheckReviewer(reviewer user.Principal, ownerID int64) error {
	if !reviewer.Can(user.PermissionApprovalReview) {
		return user.ErrInsufficientPermissions
	}
	if reviewer.ID == ownerID {
		return user.ErrSelfReview
	}
	return nil
}
