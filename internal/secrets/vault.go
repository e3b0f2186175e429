// Package secrets holds reloadable secret values, such as the token signing
// keys, so they can be rotated without a restart.
package secrets

import (
	"fmt"
	"sync"
)

// Loader retrieves secrets from a source (env vars, file, remote vault, etc.).
type Loader func() (map[string]string, error)

// Vault holds secret values in memory and supports atomic reloading.
type Vault struct {
	mu       sync.RWMutex
	values   map[string]string
	loader   Loader
	required []string
}

// NewVault creates a Vault and loads it once. Every key in required must be
// present and non-empty, on the first load and on every reload.
func NewVault(loader Loader, required ...string) (*Vault, error) {
	v := &Vault{loader: loader, required: required}
	vals, err := v.load()
	if err != nil {
		return nil, fmt.Errorf("initial secret load: %w", err)
	}
	v.values = vals
	return v, nil
}

func (v *Vault) load() (map[string]string, error) {
	vals, err := v.loader()
	if err != nil {
		return nil, err
	}
	for _, k := range v.required {
		if vals[k] == "" {
			return nil, fmt.Errorf("secret %s is not set", k)
		}
	}
	return vals, nil
}

// Get returns the secret for key, or an empty string if not found.
func (v *Vault) Get(key string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.values[key]
}

// Bytes returns the secret for key as a byte slice, or nil if not found.
func (v *Vault) Bytes(key string) []byte {
	if s := v.Get(key); s != "" {
		return []byte(s)
	}
	return nil
}

// Reload calls the loader and swaps in the new values atomically.
// On any error the existing values are kept.
func (v *Vault) Reload() error {
	newVals, err := v.load()
	if err != nil {
		return fmt.Errorf("reload secrets: %w", err)
	}
	v.mu.Lock()
	v.values = newVals
	v.mu.Unlock()
	return nil
}
