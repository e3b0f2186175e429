// Package jwt implements the session token codec with HS256-signed JWTs.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/port/token"
)

var (
	// ErrInvalidSigningMethod is returned when a token is not signed with HMAC.
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	// ErrNoSigningKey is returned by Issue when the current key is empty.
	ErrNoSigningKey = errors.New("no signing key configured")
)

// KeyFunc returns the current signing key and the previous one, which is
// still accepted for verification during a rotation. previous may be nil.
type KeyFunc func() (current, previous []byte)

type claims struct {
	jwt.RegisteredClaims
	TenantID string    `json:"tenantId,omitempty"`
	Role     user.Role `json:"role"`
}

// Codec issues and verifies tokens with a shared secret.
type Codec struct {
	keys   KeyFunc
	issuer string
	now    func() time.Time
}

// New returns a Codec signing with a fixed secret and stamping issuer.
func New(secret, issuer string) *Codec {
	key := []byte(secret)
	return NewRotating(func() ([]byte, []byte) { return key, nil }, issuer)
}

// NewRotating returns a Codec that asks keys for the signing material on
// every call, so a reloaded secret applies without a restart.
func NewRotating(keys KeyFunc, issuer string) *Codec {
	return &Codec{keys: keys, issuer: issuer, now: time.Now}
}

// Issue signs c into a token that expires after ttl.
func (c *Codec) Issue(in user.Claims, ttl time.Duration) (string, error) {
	now := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   in.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		TenantID: in.TenantID,
		Role:     in.Role,
	})
	current, _ := c.keys()
	if len(current) == 0 {
		return "", ErrNoSigningKey
	}
	signed, err := tok.SignedString(current)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the embedded claims.
// A token whose signature fails against the current key is retried against
// the previous key.
func (c *Codec) Verify(raw string) (*user.Claims, error) {
	current, previous := c.keys()
	cl, err := c.parse(raw, current)
	if err != nil && len(previous) > 0 && errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		cl, err = c.parse(raw, previous)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", token.ErrInvalid, err)
	}
	return &user.Claims{UserID: cl.Subject, TenantID: cl.TenantID, Role: cl.Role}, nil
}

func (c *Codec) parse(raw string, key []byte) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return key, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, err
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || cl.Subject == "" {
		return nil, errors.New("malformed claims")
	}
	return cl, nil
}

var _ token.Codec = (*Codec)(nil)
