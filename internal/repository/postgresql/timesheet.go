package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const timesheetColumns = `t.id, t.user_id, t.week_start_date, t.status, t.submitted_at, t.approved_at,
	t.approved_by, t.review_comment, t.created_at, t.updated_at`

const entryColumns = `e.id, e.timesheet_id, e.project_id, e.task_id, e.work_date, e.hours::text, e.note, e.created_at`

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

func timesheetDest(t *timesheet.Timesheet) []any {
	return []any{
		&t.ID,
		&t.UserID,
		&t.WeekStartDate,
		&t.Status,
		&t.SubmittedAt,
		&t.ApprovedAt,
		&t.ApprovedBy,
		&t.ReviewComment,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	err := row.Scan(timesheetDest(&t)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return t, err
}

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var (
		e     timesheet.Entry
		hours string
	)
	err := row.Scan(&e.ID, &e.TimesheetID, &e.ProjectID, &e.TaskID, &e.WorkDate, &hours, &e.Note, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	if err != nil {
		return timesheet.Entry{}, err
	}
	if e.Hours, err = decimal.NewFromString(hours); err != nil {
		return timesheet.Entry{}, fmt.Errorf("invalid hours %q: %w", hours, err)
	}
	return e, nil
}

func (r *timesheetRepositoryImpl) GetByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + timesheetColumns + ` FROM timesheet t WHERE t.user_id = $1 AND t.week_start_date = $2`
	return scanTimesheet(q.QueryRow(ctx, query, userID, weekStart))
}

// LocateForUpdate inserts the week if absent, then locks the row. Must run
// inside a transaction for the lock to mean anything.
func (r *timesheetRepositoryImpl) LocateForUpdate(ctx context.Context, userID int64, weekStart time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO timesheet (user_id, week_start_date, status)
		VALUES ($1, $2, 'draft')
		ON CONFLICT (user_id, week_start_date) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, userID, weekStart); err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", translate(err, nil, nil))
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheet t WHERE t.user_id = $1 AND t.week_start_date = $2 FOR UPDATE`
	return scanTimesheet(q.QueryRow(ctx, query, userID, weekStart))
}

func (r *timesheetRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	return scanTimesheet(q.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheet t WHERE t.id = $1 FOR UPDATE`, id))
}

func (r *timesheetRepositoryImpl) UpdateStatus(ctx context.Context, id int64, tr timesheet.Transition) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE timesheet t
		SET status = $2, submitted_at = $3, approved_at = $4, approved_by = $5,
			review_comment = $6, updated_at = NOW()
		WHERE t.id = $1
		RETURNING ` + timesheetColumns

	return scanTimesheet(q.QueryRow(ctx, query, id, tr.Status, tr.SubmittedAt, tr.ApprovedAt, tr.ApprovedBy, tr.ReviewComment))
}

func (r *timesheetRepositoryImpl) ListEntries(ctx context.Context, timesheetID int64) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + entryColumns + ` FROM timesheet_entry e WHERE e.timesheet_id = $1 ORDER BY e.work_date, e.id`
	rows, err := q.Query(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ReplaceEntries deletes then bulk-inserts. Ids follow request order, which
// keeps (work_date, id) ordering stable for same-day entries.
func (r *timesheetRepositoryImpl) ReplaceEntries(ctx context.Context, timesheetID int64, entries []timesheet.Entry) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM timesheet_entry WHERE timesheet_id = $1`, timesheetID); err != nil {
		return nil, fmt.Errorf("failed to clear timesheet entries: %w", err)
	}
	if len(entries) == 0 {
		return []timesheet.Entry{}, nil
	}

	var (
		projectIDs = make([]int64, len(entries))
		taskIDs    = make([]*int64, len(entries))
		workDates  = make([]time.Time, len(entries))
		hours      = make([]string, len(entries))
		notes      = make([]*string, len(entries))
	)
	for i, e := range entries {
		projectIDs[i] = e.ProjectID
		taskIDs[i] = e.TaskID
		workDates[i] = e.WorkDate
		hours[i] = e.Hours.StringFixed(2)
		notes[i] = e.Note
	}

	query := `
		INSERT INTO timesheet_entry (timesheet_id, project_id, task_id, work_date, hours, note)
		SELECT $1, x.project_id, x.task_id, x.work_date, x.hours::numeric, x.note
		FROM unnest($2::bigint[], $3::bigint[], $4::date[], $5::text[], $6::text[])
			WITH ORDINALITY AS x(project_id, task_id, work_date, hours, note, ord)
		ORDER BY x.ord
	`
	if _, err := q.Exec(ctx, query, timesheetID, projectIDs, taskIDs, workDates, hours, notes); err != nil {
		return nil, fmt.Errorf("failed to insert timesheet entries: %w", translate(err, nil, nil))
	}

	return r.ListEntries(ctx, timesheetID)
}

func (r *timesheetRepositoryImpl) GetEntryOwnerForUpdate(ctx context.Context, entryID int64) (timesheet.Entry, timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `, ` + timesheetColumns + `
		FROM timesheet_entry e
		JOIN timesheet t ON t.id = e.timesheet_id
		WHERE e.id = $1
		FOR UPDATE OF t
	`
	var (
		e     timesheet.Entry
		t     timesheet.Timesheet
		hours string
	)
	dest := append([]any{&e.ID, &e.TimesheetID, &e.ProjectID, &e.TaskID, &e.WorkDate, &hours, &e.Note, &e.CreatedAt}, timesheetDest(&t)...)
	err := q.QueryRow(ctx, query, entryID).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return timesheet.Entry{}, timesheet.Timesheet{}, timesheet.ErrEntryNotFound
	}
	if err != nil {
		return timesheet.Entry{}, timesheet.Timesheet{}, fmt.Errorf("failed to load timesheet entry: %w", err)
	}
	if e.Hours, err = decimal.NewFromString(hours); err != nil {
		return timesheet.Entry{}, timesheet.Timesheet{}, err
	}
	return e, t, nil
}

func (r *timesheetRepositoryImpl) DeleteEntry(ctx context.Context, entryID int64) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM timesheet_entry WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

func (r *timesheetRepositoryImpl) ListByStatus(ctx context.Context, status timesheet.Status) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + timesheetColumns + `, u.full_name, COALESCE(SUM(e.hours), 0)::text
		FROM timesheet t
		JOIN user_account u ON u.id = t.user_id
		LEFT JOIN timesheet_entry e ON e.timesheet_id = t.id
		WHERE t.status = $1
		GROUP BY t.id, u.full_name
		ORDER BY t.week_start_date ASC, t.submitted_at ASC NULLS LAST, t.id ASC
	`
	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	out := []timesheet.Timesheet{}
	for rows.Next() {
		var (
			t     timesheet.Timesheet
			total string
		)
		if err := rows.Scan(append(timesheetDest(&t), &t.OwnerName, &total)...); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		if t.TotalHours, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func collectEntries(rows pgx.Rows) ([]timesheet.Entry, error) {
	entries := []timesheet.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type referenceRepositoryImpl struct {
	db *database.DB
}

func NewReferenceRepository(db *database.DB) timesheet.ReferenceRepository {
	return &referenceRepositoryImpl{db: db}
}

// ResolveRefs looks up projects and tasks in one query.
func (r *referenceRepositoryImpl) ResolveRefs(ctx context.Context, projectIDs, taskIDs []int64) (timesheet.Refs, error) {
	refs := timesheet.Refs{Projects: map[int64]bool{}, TaskProject: map[int64]int64{}}
	if len(projectIDs) == 0 && len(taskIDs) == 0 {
		return refs, nil
	}
	if projectIDs == nil {
		projectIDs = []int64{}
	}
	if taskIDs == nil {
		taskIDs = []int64{}
	}

	q := GetQuerier(ctx, r.db)
	query := `
		SELECT 'project', id, id FROM project WHERE id = ANY($1::bigint[])
		UNION ALL
		SELECT 'task', id, project_id FROM task WHERE id = ANY($2::bigint[])
	`
	rows, err := q.Query(ctx, query, projectIDs, taskIDs)
	if err != nil {
		return refs, fmt.Errorf("failed to resolve timesheet references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind      string
			id, owner int64
		)
		if err := rows.Scan(&kind, &id, &owner); err != nil {
			return refs, fmt.Errorf("failed to scan reference: %w", err)
		}
		if kind == "project" {
			refs.Projects[id] = true
		} else {
			refs.TaskProject[id] = owner
		}
	}
	return refs, rows.Err()
}
