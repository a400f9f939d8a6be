package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, user_id, work_date, status, check_in_at, check_out_at, created_at, updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var a attendance.Record
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.WorkDate,
		&a.Status,
		&a.CheckInAt,
		&a.CheckOutAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return a, err
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID int64, day time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 AND work_date = $2`
	return scanAttendance(q.QueryRow(ctx, query, userID, day))
}

// UpsertClockIn implements attendance.AttendanceRepository.
// A repeated clock-in keeps the first check_in_at.
func (r *attendanceRepositoryImpl) UpsertClockIn(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance (user_id, work_date, status, check_in_at)
		VALUES ($1, $2, 'present', $3)
		ON CONFLICT (user_id, work_date) DO UPDATE
		SET check_in_at = COALESCE(attendance.check_in_at, EXCLUDED.check_in_at),
			status = 'present',
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, day, at))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert clock-in: %w", translate(err, nil, nil))
	}
	return rec, nil
}

// ClockOut implements attendance.AttendanceRepository. The guard lives in the
// UPDATE so two concurrent clock-outs cannot both succeed.
func (r *attendanceRepositoryImpl) ClockOut(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance
		SET check_out_at = GREATEST($3, check_in_at), updated_at = NOW()
		WHERE user_id = $1 AND work_date = $2
			AND check_in_at IS NOT NULL AND check_out_at IS NULL
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, day, at))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, fmt.Errorf("failed to clock out: %w", err)
	}

	current, err := r.GetByUserAndDate(ctx, userID, day)
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if err != nil {
		return attendance.Record{}, err
	}
	if guardErr := current.CheckClockOut(); guardErr != nil {
		return attendance.Record{}, guardErr
	}
	return attendance.Record{}, fmt.Errorf("clock-out lost a race for user %d on %s", userID, day.Format("2006-01-02"))
}

// Overwrite implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Overwrite(ctx context.Context, userID int64, day time.Time, o attendance.Override) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance (user_id, work_date, status, check_in_at, check_out_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, work_date) DO UPDATE
		SET status = EXCLUDED.status,
			check_in_at = EXCLUDED.check_in_at,
			check_out_at = EXCLUDED.check_out_at,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, day, o.Status, o.CheckInAt, o.CheckOutAt))
	if err != nil {
		return attendance.Record{}, translate(err, nil, nil)
	}
	return rec, nil
}

// ApplyCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ApplyCheckIn(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance (user_id, work_date, status, check_in_at)
		VALUES ($1, $2, 'present', $3)
		ON CONFLICT (user_id, work_date) DO UPDATE
		SET check_in_at = EXCLUDED.check_in_at,
			status = 'present',
			updated_at = NOW()
		WHERE attendance.check_out_at IS NULL OR attendance.check_out_at >= EXCLUDED.check_in_at
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, day, at))
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, attendance.ErrCheckInAfterCheckOut
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to apply check-in: %w", err)
	}
	return rec, nil
}

// ApplyCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ApplyCheckOut(ctx context.Context, userID int64, day time.Time, at time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance
		SET check_out_at = $3, updated_at = NOW()
		WHERE user_id = $1 AND work_date = $2
			AND check_in_at IS NOT NULL AND check_in_at <= $3
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, day, at))
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, attendance.ErrNoCheckInToClose
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to apply check-out: %w", err)
	}
	return rec, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date DESC
	`
	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE work_date = $1`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for date: %w", err)
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
