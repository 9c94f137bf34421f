package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "test:1", []byte(`{"id":1}`), time.Minute)

	got, ok := c.Get(ctx, "test:1")
	if !ok {
		t.Fatal("expected a hit for a freshly set key")
	}
	if string(got) != `{"id":1}` {
		t.Fatalf("value = %q, want the stored payload unchanged", got)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "test:1", []byte("v"), 30*time.Second)

	now = now.Add(29 * time.Second)
	if _, ok := c.Get(ctx, "test:1"); !ok {
		t.Fatal("entry must still be present before its TTL elapses")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get(ctx, "test:1"); ok {
		t.Fatal("entry must be absent after its TTL elapses")
	}
}

func TestMemoryCacheNoTTLDoesNotExpire(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "test:1", []byte("v"), 0)
	now = now.Add(24 * time.Hour)
	if _, ok := c.Get(ctx, "test:1"); !ok {
		t.Fatal("a zero-TTL entry must not expire")
	}
}

func TestMemoryCachePrefixInvalidation(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "test:1", []byte("a"), time.Minute)
	c.Set(ctx, "test-questions:1", []byte("b"), time.Minute)
	c.Set(ctx, "tests:list", []byte("c"), time.Minute)
	c.Set(ctx, "session:9", []byte("d"), time.Minute)

	c.Invalidate(ctx, "test*")

	for _, key := range []string{"test:1", "test-questions:1", "tests:list"} {
		if _, ok := c.Get(ctx, key); ok {
			t.Errorf("key %q should have been invalidated by the test* prefix", key)
		}
	}
	if _, ok := c.Get(ctx, "session:9"); !ok {
		t.Error("keys outside the prefix must survive invalidation")
	}
}

func TestMemoryCacheExactInvalidation(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "test:1", []byte("a"), time.Minute)
	c.Set(ctx, "test:12", []byte("b"), time.Minute)

	c.Invalidate(ctx, "test:1")

	if _, ok := c.Get(ctx, "test:1"); ok {
		t.Error("exact key should have been invalidated")
	}
	if _, ok := c.Get(ctx, "test:12"); !ok {
		t.Error("a different key must not be touched by an exact invalidation")
	}
}

func TestGetJSONRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type payload struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	in := payload{ID: 3, Title: "JLPT N5 Mock"}
	SetJSON(ctx, c, "test:3", in, time.Minute)

	var out payload
	if !GetJSON(ctx, c, "test:3", &out) {
		t.Fatal("expected a hit")
	}
	if out != in {
		t.Fatalf("decoded %+v, want %+v", out, in)
	}
}

func TestGetJSONCorruptEntryIsAMiss(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "test:3", []byte("{not json"), time.Minute)

	var out struct{ ID uint }
	if GetJSON(ctx, c, "test:3", &out) {
		t.Fatal("a corrupt entry must be treated as a miss")
	}
	// The poisoned entry is evicted so the next read-through repopulates.
	if _, ok := c.Get(ctx, "test:3"); ok {
		t.Error("corrupt entry should have been evicted")
	}
}
