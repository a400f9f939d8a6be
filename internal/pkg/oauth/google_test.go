package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func fakeGoogle(t *testing.T, info GoogleInformation) *GoogleServiceImpl {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "google-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer google-access", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := NewGoogleService("client", "secret", "https://ops.test/callback", []string{"email"})
	svc.config.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/auth",
		TokenURL: srv.URL + "/token",
	}
	svc.userInfoURL = srv.URL + "/userinfo"
	return svc
}

func TestProfile(t *testing.T) {
	svc := fakeGoogle(t, GoogleInformation{GoogleID: "1234", Email: "asha@ops.test", VerifiedEmail: true, Name: "Asha Rao"})

	profile, err := svc.Profile(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "google:1234", profile.SubjectID)
	assert.Equal(t, "asha@ops.test", profile.Email)
	assert.Equal(t, "Asha Rao", profile.DisplayName)
}

func TestProfile_UnverifiedEmail(t *testing.T) {
	svc := fakeGoogle(t, GoogleInformation{GoogleID: "1234", Email: "asha@ops.test"})

	_, err := svc.Profile(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestRedirectURL(t *testing.T) {
	svc := NewGoogleService("client", "secret", "https://ops.test/callback", []string{"email"})

	state, err := svc.GenerateState()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	u, err := url.Parse(svc.RedirectURL(state))
	require.NoError(t, err)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}
