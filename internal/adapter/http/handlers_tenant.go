package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/middleware"
)

// ListTenants handles GET /api/tenants.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Tenants.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tenants)
}

// GetTenant handles GET /api/tenants/{tenantId}.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	d, err := h.Tenants.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "tenantId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d)
}
