package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	wbotel "github.com/Strob0t/Workboard/internal/adapter/otel"
	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/tenant"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/cache"
	"github.com/Strob0t/Workboard/internal/port/credential"
	"github.com/Strob0t/Workboard/internal/port/database"
	"github.com/Strob0t/Workboard/internal/port/token"
)

const subdomainCachePrefix = "tenant:subdomain:"

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)

// AuthService handles login, token verification and the current-user profile.
type AuthService struct {
	store    database.Store
	hasher   credential.Hasher
	tokens   token.Codec
	ttl      time.Duration
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *wbotel.Metrics
}

// NewAuthService creates a new authentication service. ttl is the lifetime of
// issued tokens.
func NewAuthService(store database.Store, hasher credential.Hasher, tokens token.Codec, ttl time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		ttl:    ttl,
	}
}

// SetCache enables the read-through cache for subdomain lookups.
func (s *AuthService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	s.cacheTTL = ttl
}

// SetMetrics sets the optional metrics instruments.
func (s *AuthService) SetMetrics(m *wbotel.Metrics) {
	s.metrics = m
}

// Authenticate verifies a raw session token and returns the principal it
// encodes. No store lookup is made.
func (s *AuthService) Authenticate(raw string) (*user.Principal, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthenticated)
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthenticated)
	}
	if claims.Role != user.RoleSuperAdmin && claims.TenantID == "" {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthenticated)
	}
	return &user.Principal{
		TenantID: claims.TenantID,
		UserID:   claims.UserID,
		Role:     claims.Role,
	}, nil
}

// Login verifies credentials and issues a session token. A super_admin is
// found by email alone; everyone else needs the tenant subdomain.
func (s *AuthService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	subdomain := strings.ToLower(strings.TrimSpace(req.TenantSubdomain))

	ctx, span := wbotel.StartLoginSpan(ctx, subdomain)
	defer span.End()

	u, t, err := s.findLoginUser(ctx, email, subdomain)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.metrics.CountLoginFailure(ctx, "unknown_user")
		}
		return nil, err
	}

	if err := s.hasher.Verify(u.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, credential.ErrMismatch) {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		s.metrics.CountLoginFailure(ctx, "bad_password")
		return nil, errInvalidCredentials
	}
	if !u.IsActive {
		s.metrics.CountLoginFailure(ctx, "inactive")
		return nil, fmt.Errorf("%w: account is disabled", domain.ErrUnauthenticated)
	}
	if t != nil && !t.Active() {
		s.metrics.CountLoginFailure(ctx, "tenant_suspended")
		return nil, fmt.Errorf("%w: tenant is suspended", domain.ErrForbidden)
	}

	claims := user.Claims{UserID: u.ID, Role: u.Role}
	if u.TenantID != nil {
		claims.TenantID = *u.TenantID
	}
	raw, err := s.tokens.Issue(claims, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &user.LoginResponse{
		User:      *u,
		Token:     raw,
		ExpiresIn: int(s.ttl.Seconds()),
	}, nil
}

func (s *AuthService) findLoginUser(ctx context.Context, email, subdomain string) (*user.User, *tenant.Tenant, error) {
	admin, err := s.store.GetSuperAdminByEmail(ctx, email)
	switch {
	case err == nil:
		return admin, nil, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, nil, fmt.Errorf("lookup super admin: %w", err)
	}

	if subdomain == "" {
		return nil, nil, domain.Validationf("tenantSubdomain is required")
	}

	t, err := s.tenantBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: tenant not found", domain.ErrNotFound)
		}
		return nil, nil, err
	}

	u, err := s.store.GetUserByEmail(ctx, t.ID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, errInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, t, nil
}

// tenantBySubdomain resolves a subdomain through the cache. Only the
// subdomain to id mapping is cached since it never changes; the tenant row
// itself is always read fresh so status changes apply immediately.
func (s *AuthService) tenantBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	if s.cache == nil {
		return s.store.GetTenantBySubdomain(ctx, subdomain)
	}

	key := subdomainCachePrefix + subdomain
	if id, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		t, err := s.store.GetTenant(ctx, string(id))
		if err == nil {
			return t, nil
		}
		_ = s.cache.Delete(ctx, key)
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	t, err := s.store.GetTenantBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, []byte(t.ID), s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "tenant cache set failed", "subdomain", subdomain, "error", err)
	}
	return t, nil
}

// Me returns the principal's user record and tenant. The tenant is nil for
// super_admin.
func (s *AuthService) Me(ctx context.Context, p *user.Principal) (*user.Profile, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := s.store.GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	profile := &user.Profile{User: *u}
	if u.TenantID != nil {
		t, err := s.store.GetTenant(ctx, *u.TenantID)
		if err != nil {
			return nil, fmt.Errorf("get tenant: %w", err)
		}
		profile.Tenant = t
	}
	return profile, nil
}

// SeedSuperAdmin creates the tenant-less super_admin account if no
// super_admin with that email exists yet. It reports whether a user was
// created.
func (s *AuthService) SeedSuperAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, domain.Validationf("email and password are required")
	}
	if len(password) < 8 {
		return false, domain.Validationf("password must be at least 8 characters")
	}
	if fullName == "" {
		fullName = "Super Admin"
	}

	_, err := s.store.GetSuperAdminByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return false, fmt.Errorf("lookup super admin: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         user.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("create super admin: %w", err)
	}
	slog.InfoContext(ctx, "super admin created", "email", email, "user_id", u.ID)
	return true, nil
}
