package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_ClockInIsIdempotent(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()
	u := setup.CreateUser(t, "seven@corp.test", user.RoleEmployee)

	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	first := time.Date(2024, 11, 6, 9, 5, 0, 0, time.UTC)
	second := time.Date(2024, 11, 6, 9, 10, 0, 0, time.UTC)

	rec, err := repo.UpsertClockIn(ctx, u.ID, day, first)
	require.NoError(t, err)
	rec2, err := repo.UpsertClockIn(ctx, u.ID, day, second)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, rec2.ID)
	assert.True(t, first.Equal(*rec2.CheckInAt))
	assert.Equal(t, attendance.StatusPresent, rec2.Status)

	var count int
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE user_id = $1`, u.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAttendanceRepository_ClockOutGuard(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()
	u := setup.CreateUser(t, "seven@corp.test", user.RoleEmployee)

	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 11, 6, 18, 15, 0, 0, time.UTC)

	_, err := repo.ClockOut(ctx, u.ID, day, out)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = repo.UpsertClockIn(ctx, u.ID, day, time.Date(2024, 11, 6, 9, 5, 0, 0, time.UTC))
	require.NoError(t, err)

	rec, err := repo.ClockOut(ctx, u.ID, day, out)
	require.NoError(t, err)
	assert.True(t, out.Equal(*rec.CheckOutAt))

	_, err = repo.ClockOut(ctx, u.ID, day, out.Add(time.Minute))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceRepository_OverwriteAndCorrections(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()
	u := setup.CreateUser(t, "seven@corp.test", user.RoleEmployee)

	day := time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, 11, 6, 9, 0, 0, 0, time.UTC)

	rec, err := repo.Overwrite(ctx, u.ID, day, attendance.Override{Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.CheckInAt)

	_, err = repo.ApplyCheckOut(ctx, u.ID, day, in.Add(8*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrNoCheckInToClose)

	rec, err = repo.ApplyCheckIn(ctx, u.ID, day, in)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	_, err = repo.ApplyCheckOut(ctx, u.ID, day, in.Add(-time.Minute))
	assert.ErrorIs(t, err, attendance.ErrNoCheckInToClose)

	rec, err = repo.ApplyCheckOut(ctx, u.ID, day, in.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, rec.Worked())

	_, err = repo.ApplyCheckIn(ctx, u.ID, day, in.Add(9*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrCheckInAfterCheckOut)
}
