package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
)

const tenantColumns = `id, name, subdomain, status, subscription_plan, max_users, max_projects, created_at, updated_at`

func scanTenant(row scannable) (tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Subdomain, &t.Status, &t.SubscriptionPlan,
		&t.MaxUsers, &t.MaxProjects, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// --- Tenant registration ---

// RegisterTenant creates the tenant and its first admin atomically. Either
// both rows commit or neither does.
func (s *Store) RegisterTenant(ctx context.Context, t *tenant.Tenant, admin *user.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("register tenant: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var existing string
	err = tx.QueryRow(ctx, `SELECT id FROM tenants WHERE subdomain = $1`, t.Subdomain).Scan(&existing)
	switch {
	case err == nil:
		return fmt.Errorf("register tenant: subdomain %s already exists: %w", t.Subdomain, domain.ErrConflict)
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("register tenant: check subdomain: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO tenants (id, name, subdomain, status, subscription_plan, max_users, max_projects, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Subdomain, t.Status, t.SubscriptionPlan, t.MaxUsers, t.MaxProjects, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return constraintWrap(err, "register tenant: insert tenant")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		admin.ID, admin.TenantID, admin.Email, admin.PasswordHash, admin.FullName, admin.Role, admin.IsActive, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		return constraintWrap(err, "register tenant: insert admin")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("register tenant: commit: %w", err)
	}
	return nil
}

// --- Tenant reads ---

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return &t, nil
}

func (s *Store) GetTenantBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1`, subdomain))
	if err != nil {
		return nil, notFoundWrap(err, "get tenant by subdomain %s", subdomain)
	}
	return &t, nil
}

// ListTenants returns every tenant, newest first.
func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return orEmpty(tenants), rows.Err()
}
