package user

import (
	"fmt"

	"github.com/Strob0t/Workboard/internal/domain"
)

// Role represents the authorization level of a user.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleUser        Role = "user"
)

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// Principal is the authenticated actor for one request. It is rebuilt from a
// verified token on every request and never persisted. TenantID is empty for
// super_admin.
type Principal struct {
	TenantID  string
	UserID    string
	Role      Role
	IPAddress string
}

// HasTenant reports whether the principal is scoped to a tenant.
func (p *Principal) HasTenant() bool {
	return p.TenantID != ""
}

// IsTenantAdmin reports whether the principal administers its tenant.
func (p *Principal) IsTenantAdmin() bool {
	return p.Role == RoleTenantAdmin
}

// TenantRef returns the tenant id as a nullable reference.
func (p *Principal) TenantRef() *string {
	if p.TenantID == "" {
		return nil
	}
	id := p.TenantID
	return &id
}

// UserRef returns the user id as a nullable reference.
func (p *Principal) UserRef() *string {
	if p.UserID == "" {
		return nil
	}
	id := p.UserID
	return &id
}

// Authorize succeeds iff p holds one of roles.
func Authorize(p *Principal, roles ...Role) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s not permitted", domain.ErrForbidden, p.Role)
}

// RequireTenant fails with ErrForbidden for principals without a tenant.
func RequireTenant(p *Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if !p.HasTenant() {
		return fmt.Errorf("%w: tenant-scoped resource", domain.ErrForbidden)
	}
	return nil
}
