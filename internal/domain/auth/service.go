package auth

import (
	"context"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionInfo) (TokenResponse, error)
	// Refresh rotates the refresh token: the presented one is revoked.
	Refresh(ctx context.Context, refreshToken string, session SessionInfo) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID int64) (employee.Response, error)
	// SSOLogin resolves the profile by subject, then by email, then provisions an employee.
	SSOLogin(ctx context.Context, profile SSOProfile, session SessionInfo) (TokenResponse, error)
}
