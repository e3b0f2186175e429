// Package bcrypt implements the credential port with golang.org/x/crypto/bcrypt.
package bcrypt

import (
	"errors"
	"fmt"

	xbcrypt "golang.org/x/crypto/bcrypt"

	"github.com/Strob0t/Workboard/internal/port/credential"
)

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// New returns a Hasher. Costs outside bcrypt's range fall back to the default.
func New(cost int) *Hasher {
	if cost < xbcrypt.MinCost || cost > xbcrypt.MaxCost {
		cost = xbcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := xbcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify compares password against hash.
func (h *Hasher) Verify(hash, password string) error {
	err := xbcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, xbcrypt.ErrMismatchedHashAndPassword) {
		return credential.ErrMismatch
	}
	return fmt.Errorf("verify password: %w", err)
}

var _ credential.Hasher = (*Hasher)(nil)
