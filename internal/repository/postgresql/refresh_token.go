package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepositoryImpl) Create(ctx context.Context, userID int64, token string, expiresAt time.Time, session auth.SessionInfo) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO refresh_token (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := q.Exec(ctx, query, userID, hashToken(token), expiresAt.UTC(), session.UserAgent, session.IPAddress); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Consume revokes the token in a single statement so concurrent refreshes with
// the same token cannot both succeed.
func (r *refreshTokenRepositoryImpl) Consume(ctx context.Context, token string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE refresh_token
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
		RETURNING user_id
	`
	var userID int64
	err := q.QueryRow(ctx, query, hashToken(token)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, auth.ErrRefreshTokenRevoked
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	return userID, nil
}

func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE refresh_token
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	if _, err := q.Exec(ctx, query, hashToken(token)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepositoryImpl) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM refresh_token
		WHERE expires_at < $1 OR revoked_at < $1
	`
	tag, err := q.Exec(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
