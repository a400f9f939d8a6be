package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const projectColumns = `p.id, p.name, p.description, p.manager_id, p.start_date, p.end_date, p.status,
	p.created_at, p.updated_at, COALESCE(m.full_name, '')`

const projectFrom = ` FROM project p LEFT JOIN user_account m ON m.id = p.manager_id`

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ManagerID,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ManagerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, err
}

func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH p AS (
			INSERT INTO project (name, description, manager_id, start_date, end_date, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + projectColumns + ` FROM p LEFT JOIN user_account m ON m.id = p.manager_id`

	created, err := scanProject(q.QueryRow(ctx, query, p.Name, p.Description, p.ManagerID, p.StartDate, p.EndDate, p.Status))
	if err != nil {
		return project.Project{}, translate(err, nil, project.ErrUnknownUser)
	}
	return created, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH p AS (
			UPDATE project
			SET name = $2, description = $3, manager_id = $4, start_date = $5, end_date = $6,
				status = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + projectColumns + ` FROM p LEFT JOIN user_account m ON m.id = p.manager_id`

	updated, err := scanProject(q.QueryRow(ctx, query, p.ID, p.Name, p.Description, p.ManagerID, p.StartDate, p.EndDate, p.Status))
	if err != nil {
		return project.Project{}, translate(err, nil, project.ErrUnknownUser)
	}
	return updated, nil
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, id int64) (project.Project, error) {
	q := GetQuerier(ctx, r.db)
	return scanProject(q.QueryRow(ctx, `SELECT `+projectColumns+projectFrom+` WHERE p.id = $1`, id))
}

func (r *projectRepositoryImpl) List(ctx context.Context, status *project.Status) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if status != nil {
		w.add("p.status = %s", string(*status))
	}

	rows, err := q.Query(ctx, `SELECT `+projectColumns+projectFrom+w.where()+` ORDER BY p.start_date DESC, p.id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
