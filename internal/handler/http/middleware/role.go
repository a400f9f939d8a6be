package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := user.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			if !principal.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
