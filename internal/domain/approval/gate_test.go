package approval

import (
	"testing"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		state                     State
		mutate, submit, reviewable bool
	}{
		{StateDraft, true, true, false},
		{StateRejected, true, true, false},
		{StateSubmitted, false, false, true},
		{StatePending, false, false, true},
		{StateApproved, false, false, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.mutate, CanMutate(c.state), "mutate %s", c.state)
		assert.Equal(t, c.submit, CanSubmit(c.state), "submit %s", c.state)
		assert.Equal(t, c.reviewable, CanReview(c.state), "review %s", c.state)
	}
}

func TestCheckErrors(t *testing.T) {
	assert.NoError(t, CheckMutate(StateRejected))
	assert.ErrorIs(t, CheckMutate(StateApproved), ErrImmutable)
	assert.ErrorIs(t, CheckMutate(StateSubmitted), ErrLocked)

	assert.NoError(t, CheckSubmit(StateDraft))
	assert.ErrorIs(t, CheckSubmit(StateSubmitted), ErrAlreadySubmitted)
	assert.ErrorIs(t, CheckSubmit(StateApproved), ErrImmutable)

	assert.NoError(t, CheckReview(StateSubmitted))
	assert.NoError(t, CheckReview(StatePending))
	assert.ErrorIs(t, CheckReview(StateApproved), ErrNotReviewable)
	assert.ErrorIs(t, CheckReview(StateDraft), ErrNotReviewable)
}

func TestCheckReviewer(t *testing.T) {
	manager := user.Principal{ID: 2, Role: user.RoleManager}

	assert.NoError(t, CheckReviewer(manager, 3))
	assert.ErrorIs(t, CheckReviewer(manager, 2), user.ErrSelfReview)
	assert.ErrorIs(t, CheckReviewer(user.Principal{ID: 3, Role: user.RoleEmployee}, 4), user.ErrInsufficientPermissions)
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("approve")
	assert.True(t, ok)
	assert.Equal(t, StateApproved, a.Outcome())

	a, ok = ParseAction("reject")
	assert.True(t, ok)
	assert.Equal(t, StateRejected, a.Outcome())

	_, ok = ParseAction("escalate")
	assert.False(t, ok)
}
