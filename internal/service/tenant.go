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
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/credential"
	"github.com/Strob0t/Workboard/internal/port/database"
)

// TenantService manages tenant onboarding and lookup.
type TenantService struct {
	store   database.Store
	hasher  credential.Hasher
	audit   *AuditService
	metrics *wbotel.Metrics
}

// NewTenantService creates a new TenantService.
func NewTenantService(store database.Store, hasher credential.Hasher, auditSvc *AuditService) *TenantService {
	return &TenantService{store: store, hasher: hasher, audit: auditSvc}
}

// SetMetrics sets the optional metrics instruments.
func (s *TenantService) SetMetrics(m *wbotel.Metrics) {
	s.metrics = m
}

// Register creates a tenant together with its first tenant_admin. Both rows
// are written in one transaction; nothing is persisted on failure.
func (s *TenantService) Register(ctx context.Context, req tenant.RegisterRequest, ip string) (*tenant.Registration, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := wbotel.StartRegistrationSpan(ctx, req.Subdomain)
	defer span.End()

	hash, err := s.hasher.Hash(req.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	t := tenant.New(uuid.NewString(), req.TenantName, req.Subdomain, now)
	tenantID := t.ID
	admin := &user.User{
		ID:           uuid.NewString(),
		TenantID:     &tenantID,
		Email:        req.AdminEmail,
		PasswordHash: hash,
		FullName:     req.AdminFullName,
		Role:         user.RoleTenantAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.RegisterTenant(ctx, t, admin); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: subdomain already exists", domain.ErrConflict)
		}
		return nil, fmt.Errorf("register tenant: %w", err)
	}

	s.metrics.CountTenantRegistered(ctx)
	s.audit.Record(ctx, audit.Entry{
		TenantID:   &tenantID,
		UserID:     &admin.ID,
		Action:     audit.ActionRegisterTenant,
		EntityType: audit.EntityTenant,
		EntityID:   t.ID,
		IPAddress:  ip,
	})

	return &tenant.Registration{
		TenantID:  t.ID,
		Subdomain: t.Subdomain,
		AdminUser: tenant.AdminUser{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Role:     string(admin.Role),
		},
	}, nil
}

// List returns all tenants, newest first. Only super_admin may list.
func (s *TenantService) List(ctx context.Context, p *user.Principal) ([]tenant.Tenant, error) {
	if err := user.Authorize(p, user.RoleSuperAdmin); err != nil {
		return nil, err
	}
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// Get returns a tenant with its live usage counts. Members of a tenant see
// only their own tenant; other ids are reported as not found.
func (s *TenantService) Get(ctx context.Context, p *user.Principal, id string) (*tenant.Details, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	if p.Role != user.RoleSuperAdmin && p.TenantID != id {
		return nil, fmt.Errorf("%w: tenant not found", domain.ErrNotFound)
	}

	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	users, err := s.store.CountUsers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	projects, err := s.store.CountProjects(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	return &tenant.Details{Tenant: *t, UserCount: users, ProjectCount: projects}, nil
}
