package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_ConsumeOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewRefreshTokenRepository(setup.DB)
	ctx := context.Background()
	u := setup.CreateUser(t, "tok@corp.test", user.RoleEmployee)

	require.NoError(t, repo.Create(ctx, u.ID, "rt-1", time.Now().Add(time.Hour), auth.SessionInfo{UserAgent: "test"}))

	owner, err := repo.Consume(ctx, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)

	_, err = repo.Consume(ctx, "rt-1")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshTokenRepository_PurgeStale(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewRefreshTokenRepository(setup.DB)
	ctx := context.Background()
	u := setup.CreateUser(t, "purge@corp.test", user.RoleEmployee)
	now := time.Now()

	require.NoError(t, repo.Create(ctx, u.ID, "expired", now.Add(-48*time.Hour), auth.SessionInfo{}))
	require.NoError(t, repo.Create(ctx, u.ID, "live", now.Add(time.Hour), auth.SessionInfo{}))
	require.NoError(t, repo.Create(ctx, u.ID, "revoked-just-now", now.Add(time.Hour), auth.SessionInfo{}))
	require.NoError(t, repo.Revoke(ctx, "revoked-just-now"))

	deleted, err := repo.PurgeStale(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	owner, err := repo.Consume(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)
}
