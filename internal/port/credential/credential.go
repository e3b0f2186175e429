// Package credential defines the one-way password hashing port.
package credential

import "errors"

// ErrMismatch is returned by Verify when the password does not match the hash.
var ErrMismatch = errors.New("credential mismatch")

// Hasher hashes and verifies passwords. Hashes are opaque to callers.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify returns nil on match and ErrMismatch otherwise.
	Verify(hash, password string) error
}
