package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Strob0t/Workboard/internal/domain/user"
)

type principalCtxKey struct{}

// Authenticator turns a raw bearer token into a principal.
type Authenticator interface {
	Authenticate(raw string) (*user.Principal, error)
}

// Auth returns middleware that requires an `Authorization: Bearer <token>`
// header and stores the verified principal, with the client IP, in the
// request context.
func Auth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			scheme, raw, ok := strings.Cut(header, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			p, err := authn.Authenticate(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			p.IPAddress = clientIP(r)

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
		})
	}
}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p *user.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the authenticated principal, or nil.
func PrincipalFromContext(ctx context.Context) *user.Principal {
	p, _ := ctx.Value(principalCtxKey{}).(*user.Principal)
	return p
}

// ClientIP returns the request's client address as seen after RealIP.
func ClientIP(r *http.Request) string {
	return clientIP(r)
}
