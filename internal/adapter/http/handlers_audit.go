package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/middleware"
)

// ListAuditLogs handles GET /api/audit-logs?limit=N.
func (h *Handlers) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	entries, err := h.Audit.List(r.Context(), middleware.PrincipalFromContext(r.Context()), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}
