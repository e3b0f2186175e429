package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	wbotel "github.com/Strob0t/Workboard/internal/adapter/otel"
	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/audit"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/credential"
	"github.com/Strob0t/Workboard/internal/port/database"
)

// UserService manages the users of a tenant.
type UserService struct {
	store   database.Store
	hasher  credential.Hasher
	audit   *AuditService
	metrics *wbotel.Metrics
}

// NewUserService creates a new UserService.
func NewUserService(store database.Store, hasher credential.Hasher, auditSvc *AuditService) *UserService {
	return &UserService{store: store, hasher: hasher, audit: auditSvc}
}

// SetMetrics sets the optional metrics instruments.
func (s *UserService) SetMetrics(m *wbotel.Metrics) {
	s.metrics = m
}

// Create adds a user to the principal's tenant, enforcing the tenant's
// user limit and per-tenant email uniqueness.
func (s *UserService) Create(ctx context.Context, p *user.Principal, req user.CreateRequest) (*user.User, error) {
	if err := user.Authorize(p, user.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.GetTenant(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	count, err := s.store.CountUsers(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count >= t.MaxUsers {
		s.metrics.CountQuotaRejection(ctx, audit.EntityUser)
		return nil, fmt.Errorf("%w: user limit of %d reached for this tenant", domain.ErrQuotaExceeded, t.MaxUsers)
	}

	_, err = s.store.GetUserByEmail(ctx, p.TenantID, req.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email already exists in this tenant", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	tenantID := p.TenantID
	u := &user.User{
		ID:           uuid.NewString(),
		TenantID:     &tenantID,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: email already exists in this tenant", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionCreateUser, audit.EntityUser, u.ID))
	return u, nil
}

// List returns the users of the principal's tenant.
func (s *UserService) List(ctx context.Context, p *user.Principal) ([]user.User, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	users, err := s.store.ListUsers(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update to a user of the principal's tenant.
// Admins cannot demote or deactivate themselves.
func (s *UserService) Update(ctx context.Context, p *user.Principal, id string, req user.UpdateRequest) (*user.User, error) {
	if err := user.Authorize(p, user.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if id == p.UserID && ((req.Role != nil && *req.Role != p.Role) || (req.IsActive != nil && !*req.IsActive)) {
		return nil, fmt.Errorf("%w: cannot change your own role or deactivate your own account", domain.ErrForbidden)
	}

	u, err := s.getUser(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	req.Apply(u)
	u.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionUpdateUser, audit.EntityUser, u.ID))
	return u, nil
}

// Delete removes a user of the principal's tenant. Admins cannot delete
// themselves.
func (s *UserService) Delete(ctx context.Context, p *user.Principal, id string) error {
	if err := user.Authorize(p, user.RoleTenantAdmin); err != nil {
		return err
	}
	if err := user.RequireTenant(p); err != nil {
		return err
	}
	if id == p.UserID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrForbidden)
	}

	if _, err := s.getUser(ctx, p.TenantID, id); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, p.TenantID, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: user still owns projects", domain.ErrConflict)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionDeleteUser, audit.EntityUser, id))
	return nil
}

func (s *UserService) getUser(ctx context.Context, tenantID, id string) (*user.User, error) {
	u, err := s.store.GetUser(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
