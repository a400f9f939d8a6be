package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Verifier finds the access token in the Authorization header or, failing
// that, the access_token cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, tokenFromAccessCookie)
}

func tokenFromAccessCookie(r *http.Request) string {
	cookie, err := r.Cookie(jwt.AccessCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// AuthRequired rejects requests without a valid access token and stores the
// caller's principal in the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		principal, err := jwt.PrincipalFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.WithPrincipal(r.Context(), principal)))
	})
}
