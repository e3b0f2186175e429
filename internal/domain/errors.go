// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrValidation indicates missing or malformed input.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated indicates a missing, invalid or expired token, or bad credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates the principal lacks the role or ownership required.
var ErrForbidden = errors.New("forbidden")

// ErrQuotaExceeded indicates a tenant limit (max users, max projects) was reached.
var ErrQuotaExceeded = errors.New("quota exceeded")

// ErrNotFound indicates the requested entity does not exist or belongs to another tenant.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness violation.
var ErrConflict = errors.New("conflict")
