package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(Options{
		Secret:            "test-secret",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, exp, err := svc.GenerateAccessToken(user.User{ID: 42, Email: "m@corp.test", Role: user.RoleManager})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	p, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Principal{ID: 42, Role: user.RoleManager}, p)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestService()

	first, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	id, err := svc.ParseRefreshToken(first)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), first)
	require.NoError(t, err)
	claims, _ := decoded.AsMap(context.Background())
	_, err = PrincipalFromClaims(claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, _, err := svc.GenerateAccessToken(user.User{ID: 7, Role: user.RoleEmployee})
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRefreshToken_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClearCookies(t *testing.T) {
	cookies := newTestService().ClearCookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
		assert.True(t, c.HttpOnly)
	}
}
