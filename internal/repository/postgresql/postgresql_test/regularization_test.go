package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegularizationRepository_PendingUniqueness(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewRegularizationRepository(setup.DB)
	ctx := context.Background()

	owner := setup.CreateUser(t, "owner@corp.test", user.RoleEmployee)
	reviewer := setup.CreateUser(t, "boss@corp.test", user.RoleManager)

	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	req := regularization.Request{
		UserID:       owner.ID,
		WorkDate:     day,
		Type:         regularization.TypeCheckIn,
		ProposedTime: day.Add(9 * time.Hour),
		Reason:       "forgot to clock in",
	}

	created, err := repo.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, regularization.StatusPending, created.Status)
	assert.Equal(t, owner.FullName, created.OwnerName)

	pending, err := repo.HasPending(ctx, owner.ID, day, regularization.TypeCheckIn)
	require.NoError(t, err)
	assert.True(t, pending)

	_, err = repo.Create(ctx, req)
	assert.ErrorIs(t, err, regularization.ErrDuplicatePending)

	decided, err := repo.Decide(ctx, created.ID, regularization.Decision{
		Status: regularization.StatusRejected, ReviewerID: reviewer.ID, ReviewedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, regularization.StatusRejected, decided.Status)

	_, err = repo.Decide(ctx, created.ID, regularization.Decision{
		Status: regularization.StatusApproved, ReviewerID: reviewer.ID, ReviewedAt: time.Now(),
	})
	assert.ErrorIs(t, err, regularization.ErrAlreadyDecided)

	_, err = repo.Create(ctx, req)
	require.NoError(t, err)

	queue, err := repo.ListByStatus(ctx, regularization.StatusPending)
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	_, err = repo.GetByID(ctx, 424242)
	assert.ErrorIs(t, err, regularization.ErrRequestNotFound)
}
