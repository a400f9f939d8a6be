package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kolkata = time.FixedZone("IST", 5*3600+1800)

type fixture struct {
	svc   *AttendanceServiceImpl
	repo  *servicetest.Attendance
	users *servicetest.Users
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dept := "Engineering"
	f := &fixture{
		repo: servicetest.NewAttendance(),
		users: servicetest.NewUsers(
			user.User{Email: "asha@corp.test", FullName: "Asha", Role: user.RoleEmployee, Department: &dept, IsActive: true},
			user.User{Email: "ravi@corp.test", FullName: "Ravi", Role: user.RoleEmployee, Department: &dept, IsActive: true},
			user.User{Email: "old@corp.test", FullName: "Gone", Role: user.RoleEmployee, IsActive: false},
		),
		// 2024-11-06 09:15 IST
		clock: time.Date(2024, 11, 6, 3, 45, 0, 0, time.UTC),
	}
	f.svc = &AttendanceServiceImpl{
		tx:                   &servicetest.Transactor{},
		AttendanceRepository: f.repo,
		UserRepository:       f.users,
		loc:                  kolkata,
		now:                  func() time.Time { return f.clock },
	}
	return f
}

var nov6 = time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)

func TestGetToday_PlaceholderBeforeClockIn(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetToday(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.ID)
	assert.Equal(t, attendance.StatusNotCheckedIn, resp.Status)
	assert.Equal(t, "2024-11-06", resp.WorkDate)
	assert.Zero(t, f.repo.Len(), "placeholder must not be persisted")
}

func TestClockIn_IdempotentKeepsFirstTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.ClockIn(ctx, 1)
	require.NoError(t, err)

	f.clock = f.clock.Add(2 * time.Hour)
	second, err := f.svc.ClockIn(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, *first.ID, *second.ID)
	assert.True(t, first.CheckInAt.Equal(*second.CheckInAt))
	assert.Equal(t, attendance.StatusPresent, second.Status)
	assert.Equal(t, 1, f.repo.Len())
}

func TestClockIn_UsesLocalCalendarDay(t *testing.T) {
	f := newFixture(t)
	// 20:00 UTC on Nov 6 is already Nov 7 in Kolkata
	f.clock = time.Date(2024, 11, 6, 20, 0, 0, 0, time.UTC)

	resp, err := f.svc.ClockIn(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-07", resp.WorkDate)
}

func TestClockOut(t *testing.T) {
	ctx := context.Background()

	t.Run("without check-in", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockOut(ctx, 1)
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ClockIn(ctx, 1)
		require.NoError(t, err)

		f.clock = f.clock.Add(8*time.Hour + 30*time.Minute)
		out, err := f.svc.ClockOut(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, out.WorkedMinutes)
		assert.Equal(t, 510, *out.WorkedMinutes)

		_, err = f.svc.ClockOut(ctx, 1)
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})
}

func TestManagerUpsert(t *testing.T) {
	ctx := context.Background()
	actor := user.Principal{ID: 9, Role: user.RoleManager}
	in, out := "09:30", "18:00"

	t.Run("present with times", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.ManagerUpsert(ctx, actor, attendance.ManagerUpsertRequest{
			UserID: 2, WorkDate: "2024-11-04", Status: "present", CheckIn: &in, CheckOut: &out,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, time.Date(2024, 11, 4, 4, 0, 0, 0, time.UTC), resp.CheckInAt.UTC())
		assert.Equal(t, 510, *resp.WorkedMinutes)
	})

	t.Run("absent clears times", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.ManagerUpsert(ctx, actor, attendance.ManagerUpsertRequest{
			UserID: 2, WorkDate: "2024-11-04", Status: "absent", CheckIn: &in, CheckOut: &out,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
		assert.Nil(t, resp.CheckInAt)
		assert.Nil(t, resp.CheckOutAt)
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ManagerUpsert(ctx, actor, attendance.ManagerUpsertRequest{
			UserID: 2, WorkDate: "2024-11-04", Status: "present", CheckIn: &out, CheckOut: &in,
		})
		require.Error(t, err)
		assert.Zero(t, f.repo.Len())
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ManagerUpsert(ctx, actor, attendance.ManagerUpsertRequest{
			UserID: 77, WorkDate: "2024-11-04", Status: "absent",
		})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestTeamForDate_DefaultsMissingRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, 1)
	require.NoError(t, err)

	today, err := f.svc.TeamForDate(ctx, attendance.TeamQuery{})
	require.NoError(t, err)
	require.Len(t, today.Members, 2, "inactive users are excluded")
	assert.Equal(t, attendance.StatusPresent, today.Members[0].Attendance.Status)
	assert.Equal(t, attendance.StatusNotCheckedIn, today.Members[1].Attendance.Status)

	past, err := f.svc.TeamForDate(ctx, attendance.TeamQuery{Date: "2024-11-01"})
	require.NoError(t, err)
	for _, m := range past.Members {
		assert.Equal(t, attendance.StatusAbsent, m.Attendance.Status)
	}
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.Put(attendance.Record{ID: 50, UserID: 1, WorkDate: nov6.AddDate(0, 0, -2), Status: attendance.StatusAbsent})

	got, err := f.svc.History(ctx, 1, attendance.HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = f.svc.History(ctx, 1, attendance.HistoryQuery{From: "2024-11-10", To: "2024-11-01"})
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}
