package project

import "context"

type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	List(ctx context.Context, status *Status) ([]Project, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	UpdateStatus(ctx context.Context, id int64, status TaskStatus) (Task, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Task, error)
	ListByProject(ctx context.Context, projectID int64, status *TaskStatus) ([]Task, error)
	ListByAssignee(ctx context.Context, assigneeID int64, status *TaskStatus) ([]Task, error)
}
