package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// RouteOptions carries the optional middleware the router is mounted with.
type RouteOptions struct {
	// AuthLimiter throttles the unauthenticated auth endpoints per client IP.
	AuthLimiter *middleware.RateLimiter
	// Idempotency replays POST responses keyed by Idempotency-Key.
	Idempotency func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers, opts RouteOptions) {
	idem := opts.Idempotency
	if idem == nil {
		idem = passthrough
	}
	limit := passthrough
	if opts.AuthLimiter != nil {
		limit = opts.AuthLimiter.Handler
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Public auth endpoints
		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.With(idem).Post("/auth/register-tenant", h.RegisterTenant)
			r.Post("/auth/login", h.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.Auth))

			r.Get("/auth/me", h.Me)
			r.Post("/auth/logout", h.Logout)

			// Tenants
			r.With(middleware.RequireRole(user.RoleSuperAdmin)).Get("/tenants", h.ListTenants)
			r.Get("/tenants/{tenantId}", h.GetTenant)

			// Users
			r.Get("/users", h.ListUsers)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleTenantAdmin))
				r.With(idem).Post("/users", h.CreateUser)
				r.Put("/users/{userId}", h.UpdateUser)
				r.Delete("/users/{userId}", h.DeleteUser)
			})

			// Projects
			r.With(idem).Post("/projects", h.CreateProject)
			r.Get("/projects", h.ListProjects)
			r.Get("/projects/{projectId}", h.GetProject)
			r.Put("/projects/{projectId}", h.UpdateProject)
			r.Delete("/projects/{projectId}", h.DeleteProject)

			// Tasks
			r.With(idem).Post("/projects/{projectId}/tasks", h.CreateTask)
			r.Get("/projects/{projectId}/tasks", h.ListTasks)
			r.Patch("/tasks/{taskId}/status", h.UpdateTaskStatus)
			r.Put("/tasks/{taskId}", h.UpdateTask)
			r.Delete("/tasks/{taskId}", h.DeleteTask)

			// Audit
			r.With(middleware.RequireRole(user.RoleTenantAdmin)).Get("/audit-logs", h.ListAuditLogs)
		})
	})
}
