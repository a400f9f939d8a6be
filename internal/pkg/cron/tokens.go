package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
)

// TokenJobs keeps the refresh_token table from growing without bound.
type TokenJobs struct {
	tokens    auth.RefreshTokenRepository
	retention time.Duration
	now       func() time.Time
}

// NewTokenJobs purges tokens that have been expired or revoked for longer than retention.
func NewTokenJobs(tokens auth.RefreshTokenRepository, retention time.Duration) *TokenJobs {
	return &TokenJobs{
		tokens:    tokens,
		retention: retention,
		now:       time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_refresh_tokens", 6*time.Hour, j.PurgeRefreshTokens)
}

func (j *TokenJobs) PurgeRefreshTokens(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)
	deleted, err := j.tokens.PurgeStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: purged stale refresh tokens", "count", deleted, "cutoff", cutoff)
	}
	return nil
}
