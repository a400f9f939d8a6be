package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var week = time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)

func seedProject(t *testing.T, setup *TestDatabaseSetup, managerID int64) (project.Project, project.Task) {
	t.Helper()
	ctx := context.Background()
	p, err := postgresql.NewProjectRepository(setup.DB).Create(ctx, project.Project{
		Name: "Portal", ManagerID: managerID, StartDate: week, Status: project.StatusActive,
	})
	require.NoError(t, err)
	task, err := postgresql.NewTaskRepository(setup.DB).Create(ctx, project.Task{
		ProjectID: p.ID, Title: "Login page", Status: project.TaskTodo, Priority: project.PriorityMedium, CreatedBy: managerID,
	})
	require.NoError(t, err)
	return p, task
}

func entry(projectID int64, taskID *int64, day int, hours string) timesheet.Entry {
	return timesheet.Entry{
		ProjectID: projectID,
		TaskID:    taskID,
		WorkDate:  week.AddDate(0, 0, day),
		Hours:     decimal.RequireFromString(hours),
	}
}

func TestTimesheetRepository_ReplaceOnSave(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewTimesheetRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	ctx := context.Background()

	u := setup.CreateUser(t, "three@corp.test", user.RoleEmployee)
	p, task := seedProject(t, setup, u.ID)

	var sheetID int64
	require.NoError(t, tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheet, err := repo.LocateForUpdate(txCtx, u.ID, week)
		if err != nil {
			return err
		}
		sheetID = sheet.ID
		_, err = repo.ReplaceEntries(txCtx, sheet.ID, []timesheet.Entry{
			entry(p.ID, &task.ID, 1, "4.5"),
			entry(p.ID, nil, 0, "8"),
			entry(p.ID, nil, 1, "3.25"),
		})
		return err
	}))

	entries, err := repo.ListEntries(ctx, sheetID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// ordered by work_date, then insertion order
	assert.Equal(t, "8", entries[0].Hours.String())
	assert.Equal(t, "4.5", entries[1].Hours.String())
	assert.Equal(t, "3.25", entries[2].Hours.String())

	_, err = repo.ReplaceEntries(ctx, sheetID, []timesheet.Entry{entry(p.ID, nil, 2, "1")})
	require.NoError(t, err)
	entries, err = repo.ListEntries(ctx, sheetID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = repo.ReplaceEntries(ctx, sheetID, nil)
	require.NoError(t, err)
	entries, err = repo.ListEntries(ctx, sheetID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimesheetRepository_ConcurrentSavesSerialize(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewTimesheetRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	ctx := context.Background()

	u := setup.CreateUser(t, "three@corp.test", user.RoleEmployee)
	p, _ := seedProject(t, setup, u.ID)

	sets := [][]timesheet.Entry{
		{entry(p.ID, nil, 0, "1"), entry(p.ID, nil, 1, "1")},
		{entry(p.ID, nil, 2, "2"), entry(p.ID, nil, 3, "2"), entry(p.ID, nil, 4, "2")},
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
				sheet, err := repo.LocateForUpdate(txCtx, u.ID, week)
				if err != nil {
					return err
				}
				_, err = repo.ReplaceEntries(txCtx, sheet.ID, sets[i%2])
				return err
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	sheet, err := repo.GetByUserAndWeek(ctx, u.ID, week)
	require.NoError(t, err)
	entries, err := repo.ListEntries(ctx, sheet.ID)
	require.NoError(t, err)

	// never a mix of both sets
	assert.Contains(t, []int{2, 3}, len(entries))
	first := entries[0].Hours.String()
	for _, e := range entries {
		assert.Equal(t, first, e.Hours.String())
	}
}

func TestTimesheetRepository_ReviewQueueAndRefs(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewTimesheetRepository(setup.DB)
	refs := postgresql.NewReferenceRepository(setup.DB)
	ctx := context.Background()

	u := setup.CreateUser(t, "three@corp.test", user.RoleEmployee)
	p, task := seedProject(t, setup, u.ID)

	sheet, err := repo.LocateForUpdate(ctx, u.ID, week)
	require.NoError(t, err)
	_, err = repo.ReplaceEntries(ctx, sheet.ID, []timesheet.Entry{entry(p.ID, nil, 0, "8"), entry(p.ID, nil, 1, "7.5")})
	require.NoError(t, err)

	now := time.Now()
	_, err = repo.UpdateStatus(ctx, sheet.ID, timesheet.Transition{Status: timesheet.StatusSubmitted, SubmittedAt: &now})
	require.NoError(t, err)

	queue, err := repo.ListByStatus(ctx, timesheet.StatusSubmitted)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "15.5", queue[0].TotalHours.String())
	assert.Equal(t, u.FullName, queue[0].OwnerName)

	resolved, err := refs.ResolveRefs(ctx, []int64{p.ID, 999}, []int64{task.ID, 998})
	require.NoError(t, err)
	assert.True(t, resolved.Projects[p.ID])
	assert.False(t, resolved.Projects[999])
	assert.Equal(t, p.ID, resolved.TaskProject[task.ID])
	_, ok := resolved.TaskProject[998]
	assert.False(t, ok)
}
