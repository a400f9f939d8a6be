package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const regularizationColumns = `r.id, r.user_id, r.work_date, r.type, r.proposed_time, r.reason, r.status,
	r.reviewed_by, r.reviewed_at, r.review_comment, r.created_at, r.updated_at, u.full_name`

const regularizationFrom = ` FROM attendance_regularization r JOIN user_account u ON u.id = r.user_id`

type regularizationRepositoryImpl struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) regularization.RegularizationRepository {
	return &regularizationRepositoryImpl{db: db}
}

func scanRegularization(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.WorkDate,
		&req.Type,
		&req.ProposedTime,
		&req.Reason,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.ReviewComment,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.OwnerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return regularization.Request{}, regularization.ErrRequestNotFound
	}
	return req, err
}

// LockSlot takes a transaction-scoped advisory lock keyed on the slot.
func (r *regularizationRepositoryImpl) LockSlot(ctx context.Context, userID int64, day time.Time, typ regularization.Type) error {
	q := GetQuerier(ctx, r.db)
	key := fmt.Sprintf("regularization:%d:%s:%s", userID, day.Format("2006-01-02"), typ)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("failed to lock regularization slot: %w", err)
	}
	return nil
}

func (r *regularizationRepositoryImpl) HasPending(ctx context.Context, userID int64, day time.Time, typ regularization.Type) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_regularization
			WHERE user_id = $1 AND work_date = $2 AND type = $3 AND status = 'pending'
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, day, typ).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending regularization: %w", err)
	}
	return exists, nil
}

func (r *regularizationRepositoryImpl) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH r AS (
			INSERT INTO attendance_regularization (user_id, work_date, type, proposed_time, reason, status)
			VALUES ($1, $2, $3, $4, $5, 'pending')
			RETURNING *
		)
		SELECT ` + regularizationColumns + ` FROM r JOIN user_account u ON u.id = r.user_id`

	created, err := scanRegularization(q.QueryRow(ctx, query, req.UserID, req.WorkDate, req.Type, req.ProposedTime, req.Reason))
	if err != nil {
		return regularization.Request{}, translate(err, regularization.ErrDuplicatePending, nil)
	}
	return created, nil
}

func (r *regularizationRepositoryImpl) GetByID(ctx context.Context, id int64) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)
	return scanRegularization(q.QueryRow(ctx, `SELECT `+regularizationColumns+regularizationFrom+` WHERE r.id = $1`, id))
}

func (r *regularizationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)
	return scanRegularization(q.QueryRow(ctx, `SELECT `+regularizationColumns+regularizationFrom+` WHERE r.id = $1 FOR UPDATE OF r`, id))
}

// Decide only touches pending rows; a decided row reports ErrAlreadyDecided.
func (r *regularizationRepositoryImpl) Decide(ctx context.Context, id int64, d regularization.Decision) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		WITH r AS (
			UPDATE attendance_regularization
			SET status = $2, reviewed_by = $3, reviewed_at = $4, review_comment = $5, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + regularizationColumns + ` FROM r JOIN user_account u ON u.id = r.user_id`

	decided, err := scanRegularization(q.QueryRow(ctx, query, id, d.Status, d.ReviewerID, d.ReviewedAt, d.Comment))
	if errors.Is(err, regularization.ErrRequestNotFound) {
		return regularization.Request{}, regularization.ErrAlreadyDecided
	}
	return decided, err
}

func (r *regularizationRepositoryImpl) ListByUser(ctx context.Context, userID int64, status *regularization.Status) ([]regularization.Request, error) {
	var w whereBuilder
	w.add("r.user_id = %s", userID)
	if status != nil {
		w.add("r.status = %s", string(*status))
	}
	return r.list(ctx, w, "r.work_date DESC, r.id DESC")
}

func (r *regularizationRepositoryImpl) ListByStatus(ctx context.Context, status regularization.Status) ([]regularization.Request, error) {
	var w whereBuilder
	w.add("r.status = %s", string(status))
	return r.list(ctx, w, "r.created_at ASC, r.id ASC")
}

func (r *regularizationRepositoryImpl) list(ctx context.Context, w whereBuilder, orderBy string) ([]regularization.Request, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+regularizationColumns+regularizationFrom+w.where()+` ORDER BY `+orderBy, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list regularizations: %w", err)
	}
	defer rows.Close()

	out := []regularization.Request{}
	for rows.Next() {
		req, err := scanRegularization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan regularization: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
