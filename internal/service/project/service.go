package project

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
)

type ProjectServiceImpl struct {
	tx       database.Transactor
	projects project.ProjectRepository
	tasks    project.TaskRepository
}

func NewProjectService(tx database.Transactor, projectRepo project.ProjectRepository, taskRepo project.TaskRepository) project.ProjectService {
	return &ProjectServiceImpl{tx: tx, projects: projectRepo, tasks: taskRepo}
}

// CreateProject implements project.ProjectService.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req project.ProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}
	created, err := s.projects.Create(ctx, req.ToProject())
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.NewProjectResponse(created), nil
}

// UpdateProject implements project.ProjectService.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req project.ProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}
	existing, err := s.projects.GetByID(ctx, req.ID)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	updated := req.ToProject()
	if req.Status == "" {
		updated.Status = existing.Status
	}
	saved, err := s.projects.Update(ctx, updated)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.NewProjectResponse(saved), nil
}

// GetProject implements project.ProjectService.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id int64) (project.ProjectResponse, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.NewProjectResponse(p), nil
}

// ListProjects implements project.ProjectService.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, query project.ListProjectsQuery) ([]project.ProjectResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	var status *project.Status
	if query.Status != "" {
		st := project.Status(query.Status)
		status = &st
	}
	projects, err := s.projects.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	resp := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, project.NewProjectResponse(p))
	}
	return resp, nil
}

// CreateTask implements project.ProjectService.
func (s *ProjectServiceImpl) CreateTask(ctx context.Context, actor user.Principal, req project.TaskRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return project.TaskResponse{}, err
	}
	task := req.ToTask()
	task.CreatedBy = actor.ID
	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return project.TaskResponse{}, err
	}
	return project.NewTaskResponse(created), nil
}

// UpdateTask implements project.ProjectService. The owning project never changes.
func (s *ProjectServiceImpl) UpdateTask(ctx context.Context, req project.TaskRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}
	existing, err := s.tasks.GetByID(ctx, req.ID)
	if err != nil {
		return project.TaskResponse{}, err
	}
	task := req.ToTask()
	task.ProjectID = existing.ProjectID
	task.CreatedBy = existing.CreatedBy
	if req.Status == "" {
		task.Status = existing.Status
	}
	if req.Priority == "" {
		task.Priority = existing.Priority
	}
	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return project.TaskResponse{}, err
	}
	return project.NewTaskResponse(updated), nil
}

// MoveTask implements project.ProjectService.
func (s *ProjectServiceImpl) MoveTask(ctx context.Context, actor user.Principal, req project.TaskStatusRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}

	var moved project.Task
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		task, err := s.tasks.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !actor.Can(user.PermissionProjectManage) && !task.IsAssignedTo(actor.ID) {
			return project.ErrNotAssignee
		}
		moved, err = s.tasks.UpdateStatus(txCtx, task.ID, project.TaskStatus(req.Status))
		return err
	})
	if err != nil {
		return project.TaskResponse{}, err
	}
	return project.NewTaskResponse(moved), nil
}

// DeleteTask implements project.ProjectService.
func (s *ProjectServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

// ListProjectTasks implements project.ProjectService.
func (s *ProjectServiceImpl) ListProjectTasks(ctx context.Context, projectID int64, query project.ListTasksQuery) ([]project.TaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID, query.StatusFilter())
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	return taskResponses(tasks), nil
}

// ListMyTasks implements project.ProjectService.
func (s *ProjectServiceImpl) ListMyTasks(ctx context.Context, userID int64, query project.ListTasksQuery) ([]project.TaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByAssignee(ctx, userID, query.StatusFilter())
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return taskResponses(tasks), nil
}

func taskResponses(tasks []project.Task) []project.TaskResponse {
	resp := make([]project.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, project.NewTaskResponse(t))
	}
	return resp
}
