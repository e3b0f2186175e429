package service

import (
	"context"
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

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is an in-memory implementation of database.Store for testing.
// Rows are kept in insertion order.
type mockStore struct {
	mu       sync.Mutex
	tenants  []tenant.Tenant
	users    []user.User
	projects []project.Project
	tasks    []task.Task
	audits   []audit.Entry

	// Error hooks, set these to inject failures.
	registerErr      error
	createUserErr    error
	createProjectErr error
	createTaskErr    error
	appendAuditErr   error
	getTenantCalls   int
	bySubdomainCalls int
}

func (m *mockStore) Ping(context.Context) error { return nil }

// --- Tenants ---

func (m *mockStore) RegisterTenant(_ context.Context, t *tenant.Tenant, admin *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	for i := range m.tenants {
		if m.tenants[i].Subdomain == t.Subdomain {
			return domain.ErrConflict
		}
	}
	m.tenants = append(m.tenants, *t)
	m.users = append(m.users, *admin)
	return nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getTenantCalls++
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetTenantBySubdomain(_ context.Context, subdomain string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySubdomainCalls++
	for i := range m.tenants {
		if m.tenants[i].Subdomain == subdomain {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenants(context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.tenants)
	slices.Reverse(out)
	return out, nil
}

// --- Users ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createUserErr != nil {
		return m.createUserErr
	}
	for i := range m.users {
		if m.users[i].Email == u.Email && sameTenant(m.users[i].TenantID, u.TenantID) {
			return domain.ErrConflict
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func sameTenant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockStore) GetUser(_ context.Context, tenantID, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].InTenant(tenantID) {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, tenantID, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email && m.users[i].InTenant(tenantID) {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetSuperAdminByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email && m.users[i].Role == user.RoleSuperAdmin {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsers(_ context.Context, tenantID string) ([]user.User, error) {
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

func (m *mockStore) UpdateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == u.ID && sameTenant(m.users[i].TenantID, u.TenantID) {
			m.users[i] = *u
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteUser(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].InTenant(tenantID) {
			m.users = slices.Delete(m.users, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CountUsers(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.users {
		if m.users[i].InTenant(tenantID) {
			n++
		}
	}
	return n, nil
}

// --- Projects ---

func (m *mockStore) CreateProject(_ context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createProjectErr != nil {
		return m.createProjectErr
	}
	m.projects = append(m.projects, *p)
	return nil
}

func (m *mockStore) GetProject(_ context.Context, tenantID, id string) (*project.Project, error) {
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

func (m *mockStore) ListProjects(_ context.Context, tenantID string) ([]project.Project, error) {
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

func (m *mockStore) UpdateProject(_ context.Context, p *project.Project) error {
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

func (m *mockStore) DeleteProject(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID == id && m.projects[i].TenantID == tenantID {
			m.projects = slices.Delete(m.projects, i, i+1)
			m.tasks = slices.DeleteFunc(m.tasks, func(t task.Task) bool { return t.ProjectID == id })
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CountProjects(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.projects {
		if m.projects[i].TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// --- Tasks ---

func (m *mockStore) CreateTask(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createTaskErr != nil {
		return m.createTaskErr
	}
	m.tasks = append(m.tasks, *t)
	return nil
}

func (m *mockStore) GetTask(_ context.Context, tenantID, id string) (*task.Task, error) {
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

func (m *mockStore) ListTasks(_ context.Context, tenantID, projectID string, f task.Filter) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []task.Task{}
	for _, t := range m.tasks {
		if t.TenantID != tenantID || t.ProjectID != projectID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockStore) UpdateTask(_ context.Context, t *task.Task) error {
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

func (m *mockStore) UpdateTaskStatus(_ context.Context, tenantID, id, status string) error {
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

func (m *mockStore) DeleteTask(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id && m.tasks[i].TenantID == tenantID {
			m.tasks = slices.Delete(m.tasks, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Audit ---

func (m *mockStore) AppendAudit(_ context.Context, e *audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendAuditErr != nil {
		return m.appendAuditErr
	}
	m.audits = append(m.audits, *e)
	return nil
}

func (m *mockStore) ListAudit(_ context.Context, tenantID string, limit int) ([]audit.Entry, error) {
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

// lastAudit returns the most recent audit entry or nil.
func (m *mockStore) lastAudit() *audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.audits) == 0 {
		return nil
	}
	e := m.audits[len(m.audits)-1]
	return &e
}

func (m *mockStore) auditCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.audits)
}
