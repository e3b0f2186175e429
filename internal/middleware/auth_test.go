package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// stubAuthenticator accepts exactly one token.
type stubAuthenticator struct {
	token     string
	principal user.Principal
}

func (s stubAuthenticator) Authenticate(raw string) (*user.Principal, error) {
	if raw != s.token {
		return nil, errors.New("bad token")
	}
	p := s.principal
	return &p, nil
}

func newStub() stubAuthenticator {
	return stubAuthenticator{
		token:     "good-token",
		principal: user.Principal{TenantID: "t1", UserID: "u1", Role: user.RoleTenantAdmin},
	}
}

func TestAuth_ValidToken(t *testing.T) {
	var got *user.Principal
	handler := middleware.Auth(newStub())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", http.NoBody)
	req.Header.Set("Authorization", "Bearer good-token")
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.UserID != "u1" || got.TenantID != "t1" {
		t.Fatalf("principal = %+v", got)
	}
	if got.IPAddress != "203.0.113.7" {
		t.Errorf("ip = %q", got.IPAddress)
	}
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic good-token"},
		{"missing token", "Bearer "},
		{"invalid token", "Bearer invalid.token.here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := middleware.Auth(newStub())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/projects", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("next handler must not run")
			}
			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["success"] != false || body["message"] == "" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestPrincipalFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if p := middleware.PrincipalFromContext(req.Context()); p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
}
