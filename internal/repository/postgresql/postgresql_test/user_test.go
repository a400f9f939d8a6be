package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	created := setup.CreateUser(t, "Asha@Corp.test", user.RoleEmployee)
	assert.Equal(t, "asha@corp.test", created.Email)

	byEmail, err := repo.GetByEmail(ctx, "ASHA@corp.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.Create(ctx, user.User{Email: "asha@corp.test", FullName: "dup", Role: user.RoleEmployee, IsActive: true})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_SSOAndFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	a := setup.CreateUser(t, "a@corp.test", user.RoleEmployee)
	b := setup.CreateUser(t, "b@corp.test", user.RoleManager)

	linked, err := repo.LinkSSOSubject(ctx, a.ID, "adfs|a")
	require.NoError(t, err)
	require.NotNil(t, linked.SSOSubject)

	_, err = repo.LinkSSOSubject(ctx, b.ID, "adfs|a")
	assert.ErrorIs(t, err, user.ErrSSOSubjectLinked)

	found, err := repo.GetBySSOSubject(ctx, "adfs|a")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	_, err = repo.SetActive(ctx, b.ID, false)
	require.NoError(t, err)

	active := true
	role := user.RoleEmployee
	list, total, err := repo.List(ctx, user.ListFilter{Active: &active, Role: &role, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	list, err = repo.ListActive(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
