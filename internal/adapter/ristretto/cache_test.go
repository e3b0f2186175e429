package ristretto

import (
	"context"
	"testing"
	"time"
)

func TestCache_TTLExpires(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "tenant:acme", []byte(`{"id":"t1"}`), 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "tenant:acme"); !found {
		t.Fatal("expected hit before expiry")
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, found, _ := c.Get(ctx, "tenant:acme"); !found {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("entry did not expire")
}
