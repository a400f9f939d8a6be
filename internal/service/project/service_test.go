package project

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProjects struct {
	byID map[int64]project.Project
}

func (m *memProjects) Create(ctx context.Context, p project.Project) (project.Project, error) {
	p.ID = int64(len(m.byID) + 1)
	m.byID[p.ID] = p
	return p, nil
}

func (m *memProjects) Update(ctx context.Context, p project.Project) (project.Project, error) {
	if _, ok := m.byID[p.ID]; !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	m.byID[p.ID] = p
	return p, nil
}

func (m *memProjects) GetByID(ctx context.Context, id int64) (project.Project, error) {
	p, ok := m.byID[id]
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

func (m *memProjects) List(ctx context.Context, status *project.Status) ([]project.Project, error) {
	var out []project.Project
	for id := int64(1); id <= int64(len(m.byID)); id++ {
		if p := m.byID[id]; status == nil || p.Status == *status {
			out = append(out, p)
		}
	}
	return out, nil
}

type memTasks struct {
	nextID int64
	byID   map[int64]project.Task
}

func (m *memTasks) Create(ctx context.Context, t project.Task) (project.Task, error) {
	m.nextID++
	t.ID = m.nextID
	m.byID[t.ID] = t
	return t, nil
}

func (m *memTasks) Update(ctx context.Context, t project.Task) (project.Task, error) {
	m.byID[t.ID] = t
	return t, nil
}

func (m *memTasks) UpdateStatus(ctx context.Context, id int64, status project.TaskStatus) (project.Task, error) {
	t := m.byID[id]
	t.Status = status
	m.byID[id] = t
	return t, nil
}

func (m *memTasks) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return project.ErrTaskNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memTasks) GetByID(ctx context.Context, id int64) (project.Task, error) {
	t, ok := m.byID[id]
	if !ok {
		return project.Task{}, project.ErrTaskNotFound
	}
	return t, nil
}

func (m *memTasks) ListByProject(ctx context.Context, projectID int64, status *project.TaskStatus) ([]project.Task, error) {
	return m.filter(func(t project.Task) bool {
		return t.ProjectID == projectID && (status == nil || t.Status == *status)
	}), nil
}

func (m *memTasks) ListByAssignee(ctx context.Context, assigneeID int64, status *project.TaskStatus) ([]project.Task, error) {
	return m.filter(func(t project.Task) bool {
		return t.IsAssignedTo(assigneeID) && (status == nil || t.Status == *status)
	}), nil
}

func (m *memTasks) filter(keep func(project.Task) bool) []project.Task {
	var out []project.Task
	for id := int64(1); id <= m.nextID; id++ {
		if t, ok := m.byID[id]; ok && keep(t) {
			out = append(out, t)
		}
	}
	return out
}

var (
	lead = user.Principal{ID: 1, Role: user.RoleManager}
	dev  = user.Principal{ID: 5, Role: user.RoleEmployee}
)

func newService() *ProjectServiceImpl {
	return &ProjectServiceImpl{
		tx:       &servicetest.Transactor{},
		projects: &memProjects{byID: map[int64]project.Project{}},
		tasks:    &memTasks{byID: map[int64]project.Task{}},
	}
}

func seed(t *testing.T, svc *ProjectServiceImpl) (project.ProjectResponse, project.TaskResponse) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.CreateProject(ctx, project.ProjectRequest{Name: "Payroll revamp", ManagerID: lead.ID, StartDate: "2024-10-01"})
	require.NoError(t, err)
	assignee := dev.ID
	task, err := svc.CreateTask(ctx, lead, project.TaskRequest{ProjectID: p.ID, Title: "Schema", AssigneeID: &assignee})
	require.NoError(t, err)
	return p, task
}

func TestCreateProject_Defaults(t *testing.T) {
	svc := newService()
	p, task := seed(t, svc)

	assert.Equal(t, project.StatusActive, p.Status)
	assert.Equal(t, project.TaskTodo, task.Status)
	assert.Equal(t, project.PriorityMedium, task.Priority)
	assert.Equal(t, lead.ID, task.CreatedBy)

	end := "2024-09-01"
	_, err := svc.CreateProject(context.Background(), project.ProjectRequest{Name: "x", ManagerID: 1, StartDate: "2024-10-01", EndDate: &end})
	assert.ErrorIs(t, err, project.ErrInvalidDateRange)
}

func TestCreateTask_UnknownProject(t *testing.T) {
	svc := newService()
	_, err := svc.CreateTask(context.Background(), lead, project.TaskRequest{ProjectID: 9, Title: "orphan"})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestUpdateTask_KeepsProjectAndStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	p, task := seed(t, svc)

	_, err := svc.MoveTask(ctx, dev, project.TaskStatusRequest{ID: task.ID, Status: "in_progress"})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, project.TaskRequest{ID: task.ID, Title: "Schema v2"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ProjectID)
	assert.Equal(t, project.TaskInProgress, updated.Status)
	assert.Equal(t, "Schema v2", updated.Title)
}

func TestMoveTask_Permissions(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	_, task := seed(t, svc)

	moved, err := svc.MoveTask(ctx, dev, project.TaskStatusRequest{ID: task.ID, Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, project.TaskDone, moved.Status)

	other := user.Principal{ID: 6, Role: user.RoleEmployee}
	_, err = svc.MoveTask(ctx, other, project.TaskStatusRequest{ID: task.ID, Status: "blocked"})
	assert.ErrorIs(t, err, project.ErrNotAssignee)

	_, err = svc.MoveTask(ctx, lead, project.TaskStatusRequest{ID: task.ID, Status: "blocked"})
	assert.NoError(t, err)
}

func TestListTasks(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	p, task := seed(t, svc)
	_, err := svc.CreateTask(ctx, lead, project.TaskRequest{ProjectID: p.ID, Title: "Unassigned", Status: "blocked"})
	require.NoError(t, err)

	all, err := svc.ListProjectTasks(ctx, p.ID, project.ListTasksQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	blocked, err := svc.ListProjectTasks(ctx, p.ID, project.ListTasksQuery{Status: "blocked"})
	require.NoError(t, err)
	assert.Len(t, blocked, 1)

	mine, err := svc.ListMyTasks(ctx, dev.ID, project.ListTasksQuery{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, task.ID, mine[0].ID)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, task.ID), project.ErrTaskNotFound)
}
