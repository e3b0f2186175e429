package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

func withPrincipal(p *user.Principal, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			r = r.WithContext(middleware.ContextWithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal *user.Principal
		roles     []user.Role
		want      int
	}{
		{"tenant admin allowed", &user.Principal{TenantID: "t", UserID: "u", Role: user.RoleTenantAdmin}, []user.Role{user.RoleTenantAdmin}, http.StatusOK},
		{"super admin allowed", &user.Principal{UserID: "u", Role: user.RoleSuperAdmin}, []user.Role{user.RoleSuperAdmin}, http.StatusOK},
		{"any of several", &user.Principal{TenantID: "t", UserID: "u", Role: user.RoleUser}, []user.Role{user.RoleTenantAdmin, user.RoleUser}, http.StatusOK},
		{"user forbidden", &user.Principal{TenantID: "t", UserID: "u", Role: user.RoleUser}, []user.Role{user.RoleTenantAdmin}, http.StatusForbidden},
		{"tenant admin not super admin", &user.Principal{TenantID: "t", UserID: "u", Role: user.RoleTenantAdmin}, []user.Role{user.RoleSuperAdmin}, http.StatusForbidden},
		{"no principal", nil, []user.Role{user.RoleTenantAdmin}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := withPrincipal(tt.principal, middleware.RequireRole(tt.roles...)(inner))

			req := httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
