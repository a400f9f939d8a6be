package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt time.Time, err error)
	GenerateRefreshToken(userID int64) (token string, expiresAt time.Time, err error)
	// ParseRefreshToken verifies signature, expiry and type and returns the subject.
	ParseRefreshToken(token string) (userID int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	AccessTokenCookie(token string, expiresAt time.Time) *http.Cookie
	RefreshTokenCookie(token string, expiresAt time.Time) *http.Cookie
	ClearCookies() []*http.Cookie
}

type Options struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
	SecureCookies     bool
}

type JWTService struct {
	opts      Options
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func NewJWTService(opts Options) *JWTService {
	return &JWTService{
		opts:      opts,
		tokenAuth: jwtauth.New("HS256", []byte(opts.Secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(u user.User) (string, time.Time, error) {
	expiresAt := j.now().Add(j.opts.AccessExpiration)
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": strconv.FormatInt(u.ID, 10),
		"email":   u.Email,
		"role":    string(u.Role),
		"type":    TypeAccess,
		"exp":     expiresAt.Unix(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID int64) (string, time.Time, error) {
	expiresAt := j.now().Add(j.opts.RefreshExpiration)
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": strconv.FormatInt(userID, 10),
		"jti":     uuid.NewString(),
		"type":    TypeRefresh,
		"exp":     expiresAt.Unix(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return 0, ErrInvalidToken
	}
	if claims["type"] != TypeRefresh {
		return 0, ErrInvalidToken
	}
	return userIDFromClaims(claims)
}

// PrincipalFromClaims reads an access token's claims as set by GenerateAccessToken.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	if claims["type"] != TypeAccess {
		return user.Principal{}, ErrInvalidToken
	}
	id, err := userIDFromClaims(claims)
	if err != nil {
		return user.Principal{}, err
	}
	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.Principal{}, ErrInvalidToken
	}
	return user.Principal{ID: id, Role: role}, nil
}

func userIDFromClaims(claims map[string]interface{}) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (j *JWTService) AccessTokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return j.cookie(AccessCookieName, token, "/", expiresAt)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return j.cookie(RefreshCookieName, token, "/api/v1/auth", expiresAt)
}

// ClearCookies expires both auth cookies.
func (j *JWTService) ClearCookies() []*http.Cookie {
	access := j.cookie(AccessCookieName, "", "/", time.Unix(0, 0))
	access.MaxAge = -1
	refresh := j.cookie(RefreshCookieName, "", "/api/v1/auth", time.Unix(0, 0))
	refresh.MaxAge = -1
	return []*http.Cookie{access, refresh}
}

func (j *JWTService) cookie(name, value, path string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   j.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
