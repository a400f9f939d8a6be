package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, full_name, password_hash, role, department, designation,
	manager_id, phone, sso_subject, is_active, joined_on, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.Department,
		&u.Designation,
		&u.ManagerID,
		&u.Phone,
		&u.SSOSubject,
		&u.IsActive,
		&u.JoinedOn,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM user_account WHERE `+where, arg))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail implements user.UserRepository. Emails match case-insensitively.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", email)
}

// GetBySSOSubject implements user.UserRepository.
func (r *userRepositoryImpl) GetBySSOSubject(ctx context.Context, subject string) (user.User, error) {
	return r.getOne(ctx, "sso_subject = $1", subject)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_account (
			email, full_name, password_hash, role, department, designation,
			manager_id, phone, sso_subject, is_active, joined_on
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		strings.ToLower(newUser.Email),
		newUser.FullName,
		newUser.PasswordHash,
		newUser.Role,
		newUser.Department,
		newUser.Designation,
		newUser.ManagerID,
		newUser.Phone,
		newUser.SSOSubject,
		newUser.IsActive,
		newUser.JoinedOn,
	))
	if err != nil {
		return user.User{}, translate(err, user.ErrUserEmailExists, user.ErrUnknownManager)
	}
	return created, nil
}

// Update implements user.UserRepository. Email, password and SSO link are not touched.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_account
		SET full_name = $2, role = $3, department = $4, designation = $5,
			manager_id = $6, phone = $7, joined_on = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.ID,
		u.FullName,
		u.Role,
		u.Department,
		u.Designation,
		u.ManagerID,
		u.Phone,
		u.JoinedOn,
	))
	if err != nil {
		return user.User{}, translate(err, nil, user.ErrUnknownManager)
	}
	return updated, nil
}

// LinkSSOSubject implements user.UserRepository.
func (r *userRepositoryImpl) LinkSSOSubject(ctx context.Context, id int64, subject string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_account
		SET sso_subject = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	linked, err := scanUser(q.QueryRow(ctx, query, id, subject))
	if err != nil {
		return user.User{}, translate(err, user.ErrSSOSubjectLinked, nil)
	}
	return linked, nil
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_account
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(q.QueryRow(ctx, query, id, active))
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + s + "%"
		w.add("(full_name ILIKE %s OR email ILIKE %s)", pattern, pattern)
	}
	if filter.Department != nil {
		w.add("department = %s", *filter.Department)
	}
	if filter.Role != nil {
		w.add("role = %s", string(*filter.Role))
	}
	if filter.Active != nil {
		w.add("is_active = %s", *filter.Active)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM user_account`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit, offset := w.next(filter.Limit), w.next(filter.Offset)
	query := `SELECT ` + userColumns + ` FROM user_account` + w.where() +
		` ORDER BY full_name ASC, id ASC LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	return users, total, err
}

// ListActive implements user.UserRepository.
func (r *userRepositoryImpl) ListActive(ctx context.Context, department *string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	w.add("is_active = %s", true)
	if department != nil {
		w.add("department = %s", *department)
	}

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM user_account`+w.where()+` ORDER BY full_name ASC, id ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
