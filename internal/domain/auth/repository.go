package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository stores refresh tokens by hash only.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time, session SessionInfo) error
	// Consume revokes an active token and returns its owner. Revoked, expired
	// or unknown tokens yield ErrRefreshTokenRevoked.
	Consume(ctx context.Context, token string) (userID int64, err error)
	Revoke(ctx context.Context, token string) error
	// PurgeStale deletes tokens that expired or were revoked before the cutoff.
	PurgeStale(ctx context.Context, before time.Time) (int64, error)
}
