package service

import (
	"context"
	"testing"
	"time"

	"github.com/Strob0t/Workboard/internal/adapter/bcrypt"
	"github.com/Strob0t/Workboard/internal/adapter/jwt"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
)

const testPassword = "Password123"

type fixture struct {
	store    *mockStore
	audit    *AuditService
	auth     *AuthService
	tenants  *TenantService
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &mockStore{}
	hasher := bcrypt.New(4) // low cost for fast tests
	auditSvc := NewAuditService(store)
	return &fixture{
		store:    store,
		audit:    auditSvc,
		auth:     NewAuthService(store, hasher, jwt.New("test-secret-key-must-be-long-enough", "workboard-test"), 24*time.Hour),
		tenants:  NewTenantService(store, hasher, auditSvc),
		users:    NewUserService(store, hasher, auditSvc),
		projects: NewProjectService(store, auditSvc),
		tasks:    NewTaskService(store, auditSvc),
	}
}

// register onboards a tenant and returns the principal of its first admin.
func (f *fixture) register(t *testing.T, subdomain string) *user.Principal {
	t.Helper()
	reg, err := f.tenants.Register(context.Background(), tenant.RegisterRequest{
		TenantName:    "Tenant " + subdomain,
		Subdomain:     subdomain,
		AdminEmail:    "admin@" + subdomain + ".test",
		AdminPassword: testPassword,
		AdminFullName: "Admin " + subdomain,
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("register %s: %v", subdomain, err)
	}
	return &user.Principal{
		TenantID:  reg.TenantID,
		UserID:    reg.AdminUser.ID,
		Role:      user.RoleTenantAdmin,
		IPAddress: "10.0.0.1",
	}
}

// addUser creates a plain user in admin's tenant and returns its principal.
func (f *fixture) addUser(t *testing.T, admin *user.Principal, email string) *user.Principal {
	t.Helper()
	u, err := f.users.Create(context.Background(), admin, user.CreateRequest{
		Email:    email,
		Password: testPassword,
		FullName: "User " + email,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &user.Principal{TenantID: admin.TenantID, UserID: u.ID, Role: u.Role}
}

func superAdmin() *user.Principal {
	return &user.Principal{UserID: "root", Role: user.RoleSuperAdmin}
}
