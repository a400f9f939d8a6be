package project

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type ProjectRequest struct {
	ID          int64   `json:"-"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ManagerID   int64   `json:"manager_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,date"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,date"`
	Status      string  `json:"status" validate:"omitempty,oneof=active on_hold completed archived"`
}

func (r *ProjectRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.EndDate != nil && *r.EndDate < r.StartDate {
		return ErrInvalidDateRange
	}
	return nil
}

// ToProject assumes Validate passed.
func (r *ProjectRequest) ToProject() Project {
	start, _ := utils.ParseDate(r.StartDate)
	p := Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ManagerID:   r.ManagerID,
		StartDate:   start,
		Status:      StatusActive,
	}
	if r.EndDate != nil {
		end, _ := utils.ParseDate(*r.EndDate)
		p.EndDate = &end
	}
	if r.Status != "" {
		p.Status = Status(r.Status)
	}
	return p
}

type ListProjectsQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=active on_hold completed archived"`
}

func (q *ListProjectsQuery) Validate() error {
	return validator.Struct(q)
}

type TaskRequest struct {
	ID          int64   `json:"-"`
	ProjectID   int64   `json:"-"`
	Title       string  `json:"title" validate:"required,max=300"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	AssigneeID  *int64  `json:"assignee_id,omitempty" validate:"omitempty,gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=todo in_progress blocked done"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,date"`
	PublishDate *string `json:"publish_date,omitempty" validate:"omitempty,date"`
}

func (r *TaskRequest) Validate() error {
	return validator.Struct(r)
}

func (r *TaskRequest) ToTask() Task {
	t := Task{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		AssigneeID:  r.AssigneeID,
		Status:      TaskTodo,
		Priority:    PriorityMedium,
		DueDate:     parseOptionalDate(r.DueDate),
		PublishDate: parseOptionalDate(r.PublishDate),
	}
	if r.Status != "" {
		t.Status = TaskStatus(r.Status)
	}
	if r.Priority != "" {
		t.Priority = Priority(r.Priority)
	}
	return t
}

type TaskStatusRequest struct {
	ID     int64  `json:"-"`
	Status string `json:"status" validate:"required,oneof=todo in_progress blocked done"`
}

func (r *TaskStatusRequest) Validate() error {
	return validator.Struct(r)
}

type ListTasksQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=todo in_progress blocked done"`
}

func (q *ListTasksQuery) Validate() error {
	return validator.Struct(q)
}

func (q *ListTasksQuery) StatusFilter() *TaskStatus {
	if q.Status == "" {
		return nil
	}
	s := TaskStatus(q.Status)
	return &s
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := utils.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := utils.FormatDate(*t)
	return &s
}

type ProjectResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ManagerID   int64     `json:"manager_id"`
	ManagerName string    `json:"manager_name,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProjectResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		ManagerName: p.ManagerName,
		StartDate:   utils.FormatDate(p.StartDate),
		EndDate:     formatOptionalDate(p.EndDate),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type TaskResponse struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"project_id"`
	ProjectName  string     `json:"project_name,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	AssigneeID   *int64     `json:"assignee_id"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	Status       TaskStatus `json:"status"`
	Priority     Priority   `json:"priority"`
	DueDate      *string    `json:"due_date"`
	PublishDate  *string    `json:"publish_date"`
	CreatedBy    int64      `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		ProjectName:  t.ProjectName,
		Title:        t.Title,
		Description:  t.Description,
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      formatOptionalDate(t.DueDate),
		PublishDate:  formatOptionalDate(t.PublishDate),
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
