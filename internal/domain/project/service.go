package project

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
)

type ProjectService interface {
	CreateProject(ctx context.Context, req ProjectRequest) (ProjectResponse, error)
	UpdateProject(ctx context.Context, req ProjectRequest) (ProjectResponse, error)
	GetProject(ctx context.Context, id int64) (ProjectResponse, error)
	ListProjects(ctx context.Context, query ListProjectsQuery) ([]ProjectResponse, error)

	CreateTask(ctx context.Context, actor user.Principal, req TaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, req TaskRequest) (TaskResponse, error)
	// MoveTask changes only the status. Assignees may move their own tasks.
	MoveTask(ctx context.Context, actor user.Principal, req TaskStatusRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) error
	ListProjectTasks(ctx context.Context, projectID int64, query ListTasksQuery) ([]TaskResponse, error)
	ListMyTasks(ctx context.Context, userID int64, query ListTasksQuery) ([]TaskResponse, error)
}
