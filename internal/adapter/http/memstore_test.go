package http_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/audit"
	"github.com/Strob0t/Workboard/internal/domain/project"
	"github.com/Strob0t/Workboard/internal/domain/task"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/database"
)

var _ database.Store = (*memStore)(nil)

// memStore is a small in-memory database.Store for handler tests.
type memStore struct {
	mu       sync.Mutex
	tenants  []tenant.Tenant
	users    []user.User
	projects []project.Project
	tasks    []task.Task
	audits   []audit.Entry

	pingErr error
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) RegisterTenant(_ context.Context, t *tenant.Tenant, admin *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.tenants, func(x tenant.Tenant) bool { return x.Subdomain == t.Subdomain }) {
		return domain.ErrConflict
	}
	m.tenants = append(m.tenants, *t)
	m.users = append(m.users, *admin)
	return nil
}

func (m *memStore) findTenant(match func(tenant.Tenant) bool) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.tenants, match); i >= 0 {
		t := m.tenants[i]
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	return m.findTenant(func(t tenant.Tenant) bool { return t.ID == id })
}

func (m *memStore) GetTenantBySubdomain(_ context.Context, sub string) (*tenant.Tenant, error) {
	return m.findTenant(func(t tenant.Tenant) bool { return t.Subdomain == sub })
}

func (m *memStore) ListTenants(context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tenants), nil
}

func (m *memStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == u.Email && u.TenantID != nil && m.users[i].InTenant(*u.TenantID) {
			return domain.ErrConflict
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memStore) findUser(match func(user.User) bool) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.users, match); i >= 0 {
		u := m.users[i]
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetUser(_ context.Context, tenantID, id string) (*user.User, error) {
	return m.findUser(func(u user.User) bool { return u.ID == id && u.InTenant(tenantID) })
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*user.User, error) {
	return m.findUser(func(u user.User) bool { return u.ID == id })
}

func (m *memStore) GetUserByEmail(_ context.Context, tenantID, email string) (*user.User, error) {
	return m.findUser(func(u user.User) bool { return u.Email == email && u.InTenant(tenantID) })
}

func (m *memStore) GetSuperAdminByEmail(_ context.Context, email string) (*user.User, error) {
	return m.findUser(func(u user.User) bool { return u.Email == email && u.Role == user.RoleSuperAdmin })
}

func (m *memStore) ListUsers(_ context.Context, tenantID string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []user.User{}
	for i := range m.users {
		if m.users[i].InTenant(tenantID) {
			out = append(out, m.users[i])
		}
	}
	return out, nil
}

func (m *memStore) UpdateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeleteUser(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.users)
	m.users = slices.DeleteFunc(m.users, func(u user.User) bool { return u.ID == id && u.InTenant(tenantID) })
	if len(m.users) == n {
		return domain.ErrNotFound
	}
	return nil
}

func (m *memStore) CountUsers(ctx context.Context, tenantID string) (int, error) {
	users, _ := m.ListUsers(ctx, tenantID)
	return len(users), nil
}

func (m *memStore) CreateProject(_ context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = append(m.projects, *p)
	return nil
}

func (m *memStore) GetProject(_ context.Context, tenantID, id string) (*project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID == id && m.projects[i].TenantID == tenantID {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListProjects(_ context.Context, tenantID string) ([]project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []project.Project{}
	for i := len(m.projects) - 1; i >= 0; i-- {
		if m.projects[i].TenantID == tenantID {
			out = append(out, m.projects[i])
		}
	}
	return out, nil
}

func (m *memStore) UpdateProject(_ context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID == p.ID && m.projects[i].TenantID == p.TenantID {
			m.projects[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeleteProject(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.projects)
	m.projects = slices.DeleteFunc(m.projects, func(p project.Project) bool { return p.ID == id && p.TenantID == tenantID })
	if len(m.projects) == n {
		return domain.ErrNotFound
	}
	m.tasks = slices.DeleteFunc(m.tasks, func(t task.Task) bool { return t.ProjectID == id })
	return nil
}

func (m *memStore) CountProjects(ctx context.Context, tenantID string) (int, error) {
	projects, _ := m.ListProjects(ctx, tenantID)
	return len(projects), nil
}

func (m *memStore) CreateTask(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, *t)
	return nil
}

func (m *memStore) GetTask(_ context.Context, tenantID, id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].TenantID == tenantID {
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListTasks(_ context.Context, tenantID, projectID string, f task.Filter) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []task.Task{}
	for _, t := range m.tasks {
		switch {
		case t.TenantID != tenantID || t.ProjectID != projectID:
		case f.Status != "" && t.Status != f.Status:
		case f.Priority != "" && t.Priority != f.Priority:
		case f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo):
		default:
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) UpdateTask(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID && m.tasks[i].TenantID == t.TenantID {
			m.tasks[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) UpdateTaskStatus(_ context.Context, tenantID, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].TenantID == tenantID {
			m.tasks[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeleteTask(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.tasks)
	m.tasks = slices.DeleteFunc(m.tasks, func(t task.Task) bool { return t.ID == id && t.TenantID == tenantID })
	if len(m.tasks) == n {
		return domain.ErrNotFound
	}
	return nil
}

func (m *memStore) AppendAudit(_ context.Context, e *audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		return errors.New("audit entry without id")
	}
	m.audits = append(m.audits, *e)
	return nil
}

func (m *memStore) ListAudit(_ context.Context, tenantID string, limit int) ([]audit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []audit.Entry{}
	for i := len(m.audits) - 1; i >= 0 && len(out) < limit; i-- {
		if m.audits[i].TenantID != nil && *m.audits[i].TenantID == tenantID {
			out = append(out, m.audits[i])
		}
	}
	return out, nil
}
