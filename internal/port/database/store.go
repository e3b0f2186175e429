// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/Strob0t/Workboard/internal/domain/audit"
	"github.com/Strob0t/Workboard/internal/domain/project"
	"github.com/Strob0t/Workboard/internal/domain/task"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
)

// Store is the port interface for database operations.
//
// Every tenant-scoped method takes the tenant id explicitly and matches rows
// on it; a row owned by another tenant is reported as domain.ErrNotFound.
type Store interface {
	Ping(ctx context.Context) error

	// Tenants
	// RegisterTenant inserts the tenant and its first admin in one
	// transaction. A taken subdomain yields domain.ErrConflict.
	RegisterTenant(ctx context.Context, t *tenant.Tenant, admin *user.User) error
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	GetTenantBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, tenantID, id string) (*user.User, error)
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, tenantID, email string) (*user.User, error)
	GetSuperAdminByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsers(ctx context.Context, tenantID string) ([]user.User, error)
	UpdateUser(ctx context.Context, u *user.User) error
	DeleteUser(ctx context.Context, tenantID, id string) error
	CountUsers(ctx context.Context, tenantID string) (int, error)

	// Projects
	CreateProject(ctx context.Context, p *project.Project) error
	GetProject(ctx context.Context, tenantID, id string) (*project.Project, error)
	ListProjects(ctx context.Context, tenantID string) ([]project.Project, error)
	UpdateProject(ctx context.Context, p *project.Project) error
	DeleteProject(ctx context.Context, tenantID, id string) error
	CountProjects(ctx context.Context, tenantID string) (int, error)

	// Tasks
	CreateTask(ctx context.Context, t *task.Task) error
	GetTask(ctx context.Context, tenantID, id string) (*task.Task, error)
	ListTasks(ctx context.Context, tenantID, projectID string, f task.Filter) ([]task.Task, error)
	UpdateTask(ctx context.Context, t *task.Task) error
	UpdateTaskStatus(ctx context.Context, tenantID, id, status string) error
	DeleteTask(ctx context.Context, tenantID, id string) error

	// Audit
	AppendAudit(ctx context.Context, e *audit.Entry) error
	ListAudit(ctx context.Context, tenantID string, limit int) ([]audit.Entry, error)
}
