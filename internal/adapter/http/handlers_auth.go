package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// RegisterTenant handles POST /api/auth/register-tenant.
func (h *Handlers) RegisterTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.RegisterRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	reg, err := h.Tenants.Register(r.Context(), req, middleware.ClientIP(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Tenant registered successfully", reg)
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	resp, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Auth.Me(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so there is
// nothing to revoke server side.
func (h *Handlers) Logout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully", nil)
}
