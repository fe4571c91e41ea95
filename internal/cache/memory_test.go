package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheBasicOperations(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", val)
	}

	has, err := c.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "key1"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	_ = c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheClosed {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	src := []byte("original")
	_ = c.Set(ctx, "k", src, 0)
	src[0] = 'X'

	val, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "original" {
		t.Errorf("stored value mutated through caller slice: %s", val)
	}
	val[0] = 'Y'

	again, _ := c.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %s", again)
	}
}

func TestTypedCache(t *testing.T) {
	type sample struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	typed := NewTyped[sample](c, time.Hour)
	ctx := context.Background()

	if _, ok := typed.Get(ctx, "missing"); ok {
		t.Error("expected miss for absent key")
	}

	if err := typed.Set(ctx, "s", &sample{Name: "fade", Count: 3}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := typed.Get(ctx, "s")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Name != "fade" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}
