package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/saml"
)

const (
	oauthStateCookie = "oauth_state"
	googleCallback   = "/api/v1/auth/oauth/google/callback"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	// LoginWithSAML runs behind the SAML middleware, after the IdP round trip.
	LoginWithSAML(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	secureCookies bool
}

// NewAuthHandler builds the auth endpoints. googleService may be nil when
// Google sign-in is not configured.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, secureCookies bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		secureCookies: secureCookies,
	}
}

func session(r *http.Request) auth.SessionInfo {
	return auth.SessionInfo{UserAgent: r.UserAgent(), IPAddress: r.RemoteAddr}
}

func (a *AuthHandlerImpl) setAuthCookies(w http.ResponseWriter, tokens auth.TokenResponse) {
	http.SetCookie(w, a.jwtService.AccessTokenCookie(tokens.AccessToken, tokens.AccessTokenExpiresAt))
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshExpiresAt))
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq, session(r))
	if err != nil {
		slog.Warn("Login failed", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setAuthCookies(w, tokenResponse)
	slog.Info("User logged in successfully", "user_id", tokenResponse.User.ID)
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// Refresh implements AuthHandler.
func (a *AuthHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(jwt.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokenResponse, err := a.authService.Refresh(r.Context(), cookie.Value, session(r))
	if err != nil {
		slog.Warn("Refresh token rejected", "error", err)
		for _, c := range a.jwtService.ClearCookies() {
			http.SetCookie(w, c)
		}
		response.HandleError(w, err)
		return
	}

	a.setAuthCookies(w, tokenResponse)
	response.SuccessWithMessage(w, "Token refreshed successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(jwt.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	for _, c := range a.jwtService.ClearCookies() {
		http.SetCookie(w, c)
	}
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	me, err := a.authService.Me(r.Context(), principal(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrSSODisabled)
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     googleCallback,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrSSODisabled)
		return
	}

	stateReq, err := r.Cookie(oauthStateCookie)
	if err != nil || stateReq.Value == "" {
		slog.Warn("State cookie not found", "error", err)
		a.redirectWithError(w, r, "state_cookie_not_found")
		return
	}
	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Warn("Error in OAuth callback", "error", errorValue)
		a.redirectWithError(w, r, errorValue)
		return
	}
	if r.URL.Query().Get("state") != stateReq.Value {
		slog.Warn("OAuth state mismatch")
		a.redirectWithError(w, r, "state_mismatch")
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		a.redirectWithError(w, r, "code_empty")
		return
	}

	profile, err := a.googleService.Profile(r.Context(), code)
	if err != nil {
		slog.Error("Failed to verify Google user", "error", err)
		a.redirectWithError(w, r, "user_verification_failed")
		return
	}

	a.completeSSO(w, r, profile)
}

// LoginWithSAML implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithSAML(w http.ResponseWriter, r *http.Request) {
	profile, err := saml.ProfileFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to read SAML session", "error", err)
		a.redirectWithError(w, r, "saml_session_invalid")
		return
	}
	a.completeSSO(w, r, profile)
}

func (a *AuthHandlerImpl) completeSSO(w http.ResponseWriter, r *http.Request, profile auth.SSOProfile) {
	tokenResponse, err := a.authService.SSOLogin(r.Context(), profile, session(r))
	if err != nil {
		slog.Error("SSO login failed", "subject", profile.SubjectID, "error", err)
		a.redirectWithError(w, r, "login_failed")
		return
	}

	a.setAuthCookies(w, tokenResponse)
	slog.Info("User logged in via SSO", "user_id", tokenResponse.User.ID, "subject", profile.SubjectID)
	http.Redirect(w, r, a.frontendURL+"/auth/callback?status=success", http.StatusFound)
}

func (a *AuthHandlerImpl) redirectWithError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/callback?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}
