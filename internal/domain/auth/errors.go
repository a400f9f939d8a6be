package auth

import "github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials  = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrAccountInactive     = apperror.New(apperror.KindForbidden, "account is inactive")
	ErrInvalidToken        = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
	ErrRefreshTokenRevoked = apperror.New(apperror.KindUnauthorized, "refresh token has been revoked")
	ErrSSODisabled         = apperror.New(apperror.KindNotFound, "single sign-on is not configured")
)
