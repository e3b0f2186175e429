// Package service implements business logic on top of ports. Every
// operation takes the acting principal explicitly; the tenant scope of a
// request always comes from the principal, never from client input.
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
	"github.com/Strob0t/Workboard/internal/domain/project"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/database"
)

// ProjectService handles project business logic.
type ProjectService struct {
	store   database.Store
	audit   *AuditService
	metrics *wbotel.Metrics
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store database.Store, auditSvc *AuditService) *ProjectService {
	return &ProjectService{store: store, audit: auditSvc}
}

// SetMetrics sets the optional metrics instruments.
func (s *ProjectService) SetMetrics(m *wbotel.Metrics) {
	s.metrics = m
}

// Create creates a project in the principal's tenant, enforcing the
// tenant's project limit.
func (s *ProjectService) Create(ctx context.Context, p *user.Principal, req project.CreateRequest) (*project.Project, error) {
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
	count, err := s.store.CountProjects(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if count >= t.MaxProjects {
		s.metrics.CountQuotaRejection(ctx, audit.EntityProject)
		return nil, fmt.Errorf("%w: project limit of %d reached for this tenant", domain.ErrQuotaExceeded, t.MaxProjects)
	}

	now := time.Now().UTC()
	proj := &project.Project{
		ID:          uuid.NewString(),
		TenantID:    p.TenantID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProject(ctx, proj); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionCreateProject, audit.EntityProject, proj.ID))
	return proj, nil
}

// List returns the projects of the principal's tenant, newest first.
func (s *ProjectService) List(ctx context.Context, p *user.Principal) ([]project.Project, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx, p.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project of the principal's tenant.
func (s *ProjectService) Get(ctx context.Context, p *user.Principal, id string) (*project.Project, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	return s.getProject(ctx, p.TenantID, id)
}

// Update applies a partial update. Only a tenant_admin or the project's
// creator may modify it.
func (s *ProjectService) Update(ctx context.Context, p *user.Principal, id string, req project.UpdateRequest) (*project.Project, error) {
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	proj, err := s.getProject(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := canModify(p, proj); err != nil {
		return nil, err
	}

	req.Apply(proj)
	proj.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateProject(ctx, proj); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionUpdateProject, audit.EntityProject, proj.ID))
	return proj, nil
}

// Delete removes a project and, by cascade, its tasks. Only a tenant_admin
// or the project's creator may delete it.
func (s *ProjectService) Delete(ctx context.Context, p *user.Principal, id string) error {
	if err := user.RequireTenant(p); err != nil {
		return err
	}
	proj, err := s.getProject(ctx, p.TenantID, id)
	if err != nil {
		return err
	}
	if err := canModify(p, proj); err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, p.TenantID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: project not found", domain.ErrNotFound)
		}
		return fmt.Errorf("delete project: %w", err)
	}

	s.audit.Record(ctx, entryFor(p, audit.ActionDeleteProject, audit.EntityProject, id))
	return nil
}

func (s *ProjectService) getProject(ctx context.Context, tenantID, id string) (*project.Project, error) {
	proj, err := s.store.GetProject(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return proj, nil
}

func canModify(p *user.Principal, proj *project.Project) error {
	if p.IsTenantAdmin() || proj.CreatedBy == p.UserID {
		return nil
	}
	return fmt.Errorf("%w: only a tenant admin or the project creator may modify this project", domain.ErrForbidden)
}
