package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Strob0t/Workboard/internal/domain/user"
)

const userColumns = `id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at`

func scanUser(row scannable) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.TenantID, u.Email, u.PasswordHash, u.FullName, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return constraintWrap(err, "create user")
	}
	return nil
}

// GetUser returns the user only if it belongs to tenantID.
func (s *Store) GetUser(ctx context.Context, tenantID, id string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

// GetUserByID looks a user up without tenant scoping. Used for the caller's
// own profile, which may be a tenant-less super_admin.
func (s *Store) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, tenantID, email string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND tenant_id = $2`, email, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get user by email %s", email)
	}
	return &u, nil
}

func (s *Store) GetSuperAdminByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND role = $2`, email, user.RoleSuperAdmin))
	if err != nil {
		return nil, notFoundWrap(err, "get super admin %s", email)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, tenantID string) ([]user.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return orEmpty(users), rows.Err()
}

// UpdateUser persists full_name, role and is_active. Tenant and email never change.
func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET full_name = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND tenant_id = $2`,
		u.ID, u.TenantID, u.FullName, u.Role, u.IsActive, u.UpdatedAt,
	)
	return execExpectOne(tag, err, "update user %s", u.ID)
}

func (s *Store) DeleteUser(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete user %s", id)
}

func (s *Store) CountUsers(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
