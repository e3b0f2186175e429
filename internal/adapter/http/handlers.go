package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Strob0t/Workboard/internal/service"
)

const healthTimeout = 3 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the HTTP handlers and the services they delegate to.
type Handlers struct {
	Auth     *service.AuthService
	Tenants  *service.TenantService
	Users    *service.UserService
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Audit    *service.AuditService
	DB       Pinger

	// MaxBodyBytes limits JSON request bodies; zero means 1 MB.
	MaxBodyBytes int64
}

func (h *Handlers) bodyLimit() int64 {
	if h.MaxBodyBytes <= 0 {
		return 1 << 20
	}
	return h.MaxBodyBytes
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /api/health by pinging the store.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, healthResponse{Status: "error", Database: "disconnected"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "connected"})
}
