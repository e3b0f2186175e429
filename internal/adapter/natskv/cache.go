// Package natskv implements the cache port on a NATS JetStream key-value
// bucket, shared by every API replica.
package natskv

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/Strob0t/Workboard/internal/port/cache"
)

// Cache wraps a JetStream KeyValue bucket. Entry lifetime is the bucket's
// TTL; the per-call ttl is ignored.
type Cache struct {
	kv jetstream.KeyValue
}

// New creates a KV-backed cache.
func New(kv jetstream.KeyValue) *Cache {
	return &Cache{kv: kv}
}

// EncodeKey maps an arbitrary cache key onto the KV key alphabet
// ([-/_=.a-zA-Z0-9]).
func EncodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get retrieves a value.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := c.kv.Get(ctx, EncodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value(), true, nil
}

// Set stores a value.
func (c *Cache) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	_, err := c.kv.Put(ctx, EncodeKey(key), value)
	return err
}

// Delete removes a value. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(ctx, EncodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

var _ cache.Cache = (*Cache)(nil)
