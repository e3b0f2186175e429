package middleware

import (
	"errors"
	"net/http"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/user"
)

// RequireRole returns middleware that restricts access to principals holding
// one of the given roles. It must run after Auth.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := user.Authorize(PrincipalFromContext(r.Context()), roles...)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, domain.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, "authorization required")
			default:
				writeError(w, http.StatusForbidden, "insufficient permissions")
			}
		})
	}
}
