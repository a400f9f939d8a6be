package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(tx database.Transactor, userRepository user.UserRepository, refreshTokens auth.RefreshTokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokens,
		Service:                jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, session auth.SessionInfo) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// SSO-only accounts have no password
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		tokenResponse, err = a.issue(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string, session auth.SessionInfo) (auth.TokenResponse, error) {
	claimedID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		ownerID, err := a.RefreshTokenRepository.Consume(txCtx, refreshToken)
		if err != nil {
			return err
		}
		if ownerID != claimedID {
			return auth.ErrInvalidToken
		}

		userData, err := a.UserRepository.GetByID(txCtx, ownerID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.ErrInvalidToken
			}
			return err
		}
		if !userData.IsActive {
			return auth.ErrAccountInactive
		}

		tokenResponse, err = a.issue(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// Logout implements auth.AuthService. Unknown or already revoked tokens are ignored.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := a.RefreshTokenRepository.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, auth.ErrRefreshTokenRevoked) {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID int64) (employee.Response, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(userData), nil
}

// SSOLogin implements auth.AuthService.
func (a *AuthServiceImpl) SSOLogin(ctx context.Context, profile auth.SSOProfile, session auth.SessionInfo) (auth.TokenResponse, error) {
	if err := profile.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		userData, err := a.resolveSSOUser(txCtx, profile)
		if err != nil {
			return err
		}
		if !userData.IsActive {
			return auth.ErrAccountInactive
		}
		tokenResponse, err = a.issue(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// resolveSSOUser finds the account by subject, links it by email, or
// provisions a new employee.
func (a *AuthServiceImpl) resolveSSOUser(ctx context.Context, profile auth.SSOProfile) (user.User, error) {
	userData, err := a.UserRepository.GetBySSOSubject(ctx, profile.SubjectID)
	if err == nil {
		return userData, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to get user by sso subject: %w", err)
	}

	userData, err = a.UserRepository.GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if userData.SSOSubject != nil {
			return user.User{}, user.ErrSSOSubjectLinked
		}
		slog.Info("linking sso subject to existing user", "user_id", userData.ID)
		return a.UserRepository.LinkSSOSubject(ctx, userData.ID, profile.SubjectID)
	case !errors.Is(err, user.ErrUserNotFound):
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	subject := profile.SubjectID
	created, err := a.UserRepository.Create(ctx, user.User{
		Email:      strings.ToLower(profile.Email),
		FullName:   displayName(profile),
		Role:       user.RoleEmployee,
		SSOSubject: &subject,
		IsActive:   true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to provision sso user: %w", err)
	}
	slog.Info("provisioned user from sso", "user_id", created.ID)
	return created, nil
}

func displayName(profile auth.SSOProfile) string {
	if name := strings.TrimSpace(profile.DisplayName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(profile.Email, "@")
	return local
}

func (a *AuthServiceImpl) issue(ctx context.Context, userData user.User, session auth.SessionInfo) (auth.TokenResponse, error) {
	var (
		tokenResponse auth.TokenResponse
		err           error
	)
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresAt, err = a.Service.GenerateAccessToken(userData)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	if err := a.RefreshTokenRepository.Create(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	tokenResponse.User = employee.NewResponse(userData)
	return tokenResponse, nil
}
