// Package tiered implements a two-level cache: an in-process L1 in front of
// a shared L2 that every API replica sees.
package tiered

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Strob0t/Workboard/internal/port/cache"
)

// Cache reads L1 first and falls back to L2, copying L2 hits into L1 for at
// most l1TTL. An unreachable L2 degrades to L1-only behavior and is logged;
// it never fails the caller.
type Cache struct {
	l1    cache.Cache
	l2    cache.Cache
	l1TTL time.Duration
}

// New creates a tiered cache.
func New(l1, l2 cache.Cache, l1TTL time.Duration) *Cache {
	return &Cache{l1: l1, l2: l2, l1TTL: l1TTL}
}

// Get checks L1, then L2.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if val, ok, err := c.l1.Get(ctx, key); err == nil && ok {
		return val, true, nil
	}

	val, ok, err := c.l2.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "shared cache get failed", "key", key, "error", err)
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}
	_ = c.l1.Set(ctx, key, val, c.l1TTL)
	return val, true, nil
}

// Set writes L2 then L1. Only an L1 failure is returned.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.l2.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "shared cache set failed", "key", key, "error", err)
	}
	return c.l1.Set(ctx, key, value, min(ttl, c.l1TTL))
}

// Delete removes the key from both levels.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return errors.Join(c.l1.Delete(ctx, key), c.l2.Delete(ctx, key))
}

var _ cache.Cache = (*Cache)(nil)
