// Package user defines the user domain model for authentication and authorization.
package user

import (
	"strings"
	"time"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
)

// User is an account inside a tenant. TenantID is nil only for super_admin.
type User struct {
	ID           string    `json:"id"`
	TenantID     *string   `json:"tenantId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// InTenant reports whether the user belongs to the given tenant.
func (u *User) InTenant(tenantID string) bool {
	return u.TenantID != nil && *u.TenantID == tenantID
}

// CreateRequest is the input for a tenant admin adding a user.
type CreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"` //nolint:gosec // request field, not a hardcoded secret
	FullName string `json:"fullName" validate:"required,max=255"`
	Role     Role   `json:"role" validate:"omitempty,oneof=tenant_admin user"`
}

// Normalize lowercases the email and applies the default role.
func (r *CreateRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = RoleUser
	}
}

// Validate checks required fields. Only tenant_admin and user may be assigned.
func (r *CreateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// UpdateRequest is a partial update; nil fields keep their stored value.
type UpdateRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitnil,min=1,max=255"`
	Role     *Role   `json:"role,omitempty" validate:"omitempty,oneof=tenant_admin user"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Normalize trims a present full name.
func (r *UpdateRequest) Normalize() {
	if r.FullName != nil {
		name := strings.TrimSpace(*r.FullName)
		r.FullName = &name
	}
}

// Validate checks the fields that are present.
func (r *UpdateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// Apply merges the present fields onto u.
func (r *UpdateRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}

// LoginRequest is the input for authentication. TenantSubdomain is required
// for everyone except super_admin.
type LoginRequest struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"` //nolint:gosec // request field, not a hardcoded secret
	TenantSubdomain string `json:"tenantSubdomain"`
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`     //nolint:gosec // response field, not a hardcoded secret
	ExpiresIn int    `json:"expiresIn"` // seconds until the token expires
}

// Profile is the current user together with their tenant (nil for super_admin).
type Profile struct {
	User
	Tenant *tenant.Tenant `json:"tenant"`
}

// Claims are the identity fields embedded in a session token.
type Claims struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId,omitempty"`
	Role     Role   `json:"role"`
}
