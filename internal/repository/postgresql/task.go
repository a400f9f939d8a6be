package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `t.id, t.project_id, t.title, t.description, t.assignee_id, t.status, t.priority,
	t.due_date, t.publish_date, t.created_by, t.created_at, t.updated_at, a.full_name, p.name`

const taskJoins = ` LEFT JOIN user_account a ON a.id = t.assignee_id JOIN project p ON p.id = t.project_id`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) project.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (project.Task, error) {
	var t project.Task
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.AssigneeID,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.PublishDate,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.AssigneeName,
		&t.ProjectName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return project.Task{}, project.ErrTaskNotFound
	}
	return t, err
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t project.Task) (project.Task, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH t AS (
			INSERT INTO task (project_id, title, description, assignee_id, status, priority, due_date, publish_date, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + taskColumns + ` FROM t` + taskJoins

	created, err := scanTask(q.QueryRow(ctx, query,
		t.ProjectID, t.Title, t.Description, t.AssigneeID, t.Status, t.Priority, t.DueDate, t.PublishDate, t.CreatedBy))
	if err != nil {
		return project.Task{}, translate(err, nil, project.ErrUnknownUser)
	}
	return created, nil
}

func (r *taskRepositoryImpl) Update(ctx context.Context, t project.Task) (project.Task, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH t AS (
			UPDATE task
			SET title = $2, description = $3, assignee_id = $4, status = $5, priority = $6,
				due_date = $7, publish_date = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + taskColumns + ` FROM t` + taskJoins

	updated, err := scanTask(q.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.AssigneeID, t.Status, t.Priority, t.DueDate, t.PublishDate))
	if err != nil {
		return project.Task{}, translate(err, nil, project.ErrUnknownUser)
	}
	return updated, nil
}

func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status project.TaskStatus) (project.Task, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH t AS (
			UPDATE task SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + taskColumns + ` FROM t` + taskJoins

	return scanTask(q.QueryRow(ctx, query, id, status))
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id int64) (project.Task, error) {
	q := GetQuerier(ctx, r.db)
	return scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM task t`+taskJoins+` WHERE t.id = $1`, id))
}

func (r *taskRepositoryImpl) ListByProject(ctx context.Context, projectID int64, status *project.TaskStatus) ([]project.Task, error) {
	var w whereBuilder
	w.add("t.project_id = %s", projectID)
	if status != nil {
		w.add("t.status = %s", string(*status))
	}
	return r.list(ctx, w)
}

func (r *taskRepositoryImpl) ListByAssignee(ctx context.Context, assigneeID int64, status *project.TaskStatus) ([]project.Task, error) {
	var w whereBuilder
	w.add("t.assignee_id = %s", assigneeID)
	if status != nil {
		w.add("t.status = %s", string(*status))
	}
	return r.list(ctx, w)
}

func (r *taskRepositoryImpl) list(ctx context.Context, w whereBuilder) ([]project.Task, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + taskColumns + ` FROM task t` + taskJoins + w.where() +
		` ORDER BY t.due_date ASC NULLS LAST, t.id ASC`

	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	out := []project.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
