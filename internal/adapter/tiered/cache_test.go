package tiered_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Strob0t/Workboard/internal/adapter/tiered"
)

// memCache is a simple in-memory cache for testing.
type memCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func TestTiered_L1Hit(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, time.Minute)
	l1.data["tenant:subdomain:acme"] = []byte("t1")
	l2.err = errors.New("must not be consulted")

	val, ok, err := c.Get(context.Background(), "tenant:subdomain:acme")
	if err != nil || !ok || string(val) != "t1" {
		t.Fatalf("Get = %q, %v, %v", val, ok, err)
	}
}

func TestTiered_L2HitBackfillsL1(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, time.Minute)
	l2.data["idem:user:u1:/api/projects:k"] = []byte("cached")

	val, ok, err := c.Get(context.Background(), "idem:user:u1:/api/projects:k")
	if err != nil || !ok || string(val) != "cached" {
		t.Fatalf("Get = %q, %v, %v", val, ok, err)
	}
	if string(l1.data["idem:user:u1:/api/projects:k"]) != "cached" {
		t.Error("L2 hit should backfill L1")
	}
	if l1.ttls["idem:user:u1:/api/projects:k"] != time.Minute {
		t.Errorf("backfill ttl = %v", l1.ttls["idem:user:u1:/api/projects:k"])
	}
}

func TestTiered_SetCapsL1TTL(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, time.Minute)

	if err := c.Set(context.Background(), "k", []byte("v"), 24*time.Hour); err != nil {
		t.Fatal(err)
	}
	if l1.ttls["k"] != time.Minute {
		t.Errorf("L1 ttl = %v, want 1m", l1.ttls["k"])
	}
	if l2.ttls["k"] != 24*time.Hour {
		t.Errorf("L2 ttl = %v, want 24h", l2.ttls["k"])
	}
}

func TestTiered_L2FailureDegrades(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l2.err = errors.New("nats: connection closed")
	c := tiered.New(l1, l2, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set should tolerate L2 failure: %v", err)
	}
	val, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(val) != "v" {
		t.Fatalf("Get = %q, %v, %v", val, ok, err)
	}
	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss with L2 down = %v, %v", ok, err)
	}
}

func TestTiered_Delete(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, time.Minute)
	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), time.Minute)

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok := l1.data["k"]; ok {
		t.Error("L1 still holds key")
	}
	if _, ok := l2.data["k"]; ok {
		t.Error("L2 still holds key")
	}
}
