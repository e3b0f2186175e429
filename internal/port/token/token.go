// Package token defines the session token codec port.
package token

import (
	"errors"
	"time"

	"github.com/Strob0t/Workboard/internal/domain/user"
)

// ErrInvalid is returned for malformed, expired or badly signed tokens.
var ErrInvalid = errors.New("invalid token")

// Codec signs and verifies self-contained identity assertions.
type Codec interface {
	// Issue returns a signed token carrying claims that expires after ttl.
	Issue(claims user.Claims, ttl time.Duration) (string, error)
	// Verify checks signature and expiry and returns the embedded claims.
	Verify(raw string) (*user.Claims, error)
}
