package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Strob0t/Workboard/internal/domain/project"
)

const projectColumns = `p.id, p.tenant_id, p.name, p.description, p.status, p.created_by, COALESCE(u.full_name, ''), p.created_at, p.updated_at`

const projectFrom = ` FROM projects p LEFT JOIN users u ON u.id = p.created_by`

func scanProject(row scannable) (project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &p.CreatorName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO projects (id, tenant_id, name, description, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.TenantID, p.Name, p.Description, p.Status, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return constraintWrap(err, "create project")
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, tenantID, id string) (*project.Project, error) {
	p, err := scanProject(s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+projectFrom+` WHERE p.id = $1 AND p.tenant_id = $2`, id, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get project %s", id)
	}
	return &p, nil
}

// ListProjects returns the tenant's projects, newest first.
func (s *Store) ListProjects(ctx context.Context, tenantID string) ([]project.Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+projectColumns+projectFrom+` WHERE p.tenant_id = $1 ORDER BY p.created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return orEmpty(projects), rows.Err()
}

// UpdateProject persists name, description and status and bumps updated_at.
func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE projects SET name = $3, description = $4, status = $5, updated_at = $6
		WHERE id = $1 AND tenant_id = $2`,
		p.ID, p.TenantID, p.Name, p.Description, p.Status, p.UpdatedAt,
	)
	return execExpectOne(tag, err, "update project %s", p.ID)
}

// DeleteProject removes the project; its tasks cascade.
func (s *Store) DeleteProject(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete project %s", id)
}

func (s *Store) CountProjects(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
