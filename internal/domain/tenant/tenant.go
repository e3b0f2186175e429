// Package tenant defines the tenant domain model for multi-tenancy.
package tenant

import (
	"strings"
	"time"

	"github.com/Strob0t/Workboard/internal/domain"
)

// Status is the lifecycle state of a tenant.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Plan is the subscription tier a tenant is on.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Registration always starts on the free tier with these limits.
const (
	DefaultMaxUsers    = 5
	DefaultMaxProjects = 3
)

// Tenant is an isolated organization owning its own users, projects and tasks.
// Subdomain is globally unique and never changes after registration.
type Tenant struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Subdomain        string    `json:"subdomain"`
	Status           Status    `json:"status"`
	SubscriptionPlan Plan      `json:"subscriptionPlan"`
	MaxUsers         int       `json:"maxUsers"`
	MaxProjects      int       `json:"maxProjects"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Active reports whether members of the tenant may sign in.
func (t *Tenant) Active() bool {
	return t.Status == StatusActive
}

// New returns a tenant with the registration defaults applied.
func New(id, name, subdomain string, now time.Time) *Tenant {
	return &Tenant{
		ID:               id,
		Name:             name,
		Subdomain:        subdomain,
		Status:           StatusActive,
		SubscriptionPlan: PlanFree,
		MaxUsers:         DefaultMaxUsers,
		MaxProjects:      DefaultMaxProjects,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Details is a tenant together with its live usage counts.
type Details struct {
	Tenant
	UserCount    int `json:"userCount"`
	ProjectCount int `json:"projectCount"`
}

// RegisterRequest is the input for onboarding a tenant with its first admin.
type RegisterRequest struct {
	TenantName    string `json:"tenantName" validate:"required,max=255"`
	Subdomain     string `json:"subdomain" validate:"required,subdomain"`
	AdminEmail    string `json:"adminEmail" validate:"required,email"`
	AdminPassword string `json:"adminPassword" validate:"required,min=8"` //nolint:gosec // request field, not a hardcoded secret
	AdminFullName string `json:"adminFullName" validate:"required,max=255"`
}

// Normalize trims whitespace and lowercases the subdomain and email.
func (r *RegisterRequest) Normalize() {
	r.TenantName = strings.TrimSpace(r.TenantName)
	r.Subdomain = strings.ToLower(strings.TrimSpace(r.Subdomain))
	r.AdminEmail = strings.ToLower(strings.TrimSpace(r.AdminEmail))
	r.AdminFullName = strings.TrimSpace(r.AdminFullName)
}

// Validate checks that all five registration fields are present and well formed.
func (r *RegisterRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// AdminUser is the sanitized first admin returned from registration.
type AdminUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Registration is the result of a successful tenant onboarding.
type Registration struct {
	TenantID  string    `json:"tenantId"`
	Subdomain string    `json:"subdomain"`
	AdminUser AdminUser `json:"adminUser"`
}
