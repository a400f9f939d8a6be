package project

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

type Project struct {
	ID          int64
	Name        string
	Description *string
	ManagerID   int64
	StartDate   time.Time
	EndDate     *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	ManagerName string
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskDone       TaskStatus = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Task struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description *string
	AssigneeID  *int64
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
	PublishDate *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	AssigneeName *string
	ProjectName  string
}

// IsAssignedTo reports whether userID owns the task.
func (t Task) IsAssignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
