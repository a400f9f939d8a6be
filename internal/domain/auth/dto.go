package auth

import (
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r)
}

// SessionInfo is recorded alongside each refresh token.
type SessionInfo struct {
	UserAgent string
	IPAddress string
}

// SSOProfile is the identity an external provider vouches for.
type SSOProfile struct {
	SubjectID   string
	Email       string
	DisplayName string
}

func (p SSOProfile) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(p.SubjectID) {
		errs.Add("subject_id", "is required")
	}
	if !validator.IsValidEmail(p.Email) {
		errs.Add("email", "must be a valid email address")
	}
	return errs.Err()
}

// TokenResponse is the login result. Refresh tokens travel only as cookies.
type TokenResponse struct {
	AccessToken          string            `json:"access_token"`
	AccessTokenExpiresAt time.Time         `json:"access_token_expires_at"`
	RefreshToken         string            `json:"-"`
	RefreshExpiresAt     time.Time         `json:"-"`
	User                 employee.Response `json:"user"`
}
