package storage

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_LRUEviction(t *testing.T) {
	cache := NewMemoryCache(2)

	cache.Set("a", 1)
	cache.Set("b", 2)
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("Expected a to be cached")
	}
	cache.Set("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Error("Expected b to be evicted as least recently used")
	}
	if v, ok := cache.Get("a"); !ok || v.(int) != 1 {
		t.Errorf("Expected a=1, got %v %v", v, ok)
	}

	keys := cache.Keys()
	if len(keys) != 2 || keys[0] != "a" {
		t.Errorf("Expected a to be most recent, got %v", keys)
	}

	stats := cache.Stats()
	if stats.Evicted != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evicted)
	}
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Expected 2 hits and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCacheWithTTL(10, time.Minute)
	defer cache.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", "v")
	now = now.Add(30 * time.Second)
	if _, ok := cache.Get("k"); !ok {
		t.Fatal("Expected k before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("k"); ok {
		t.Error("Expected k to expire")
	}
	if cache.Size() != 0 {
		t.Errorf("Expected expired item removed, size %d", cache.Size())
	}
}

func TestMemoryCache_CleanupExpired(t *testing.T) {
	cache := NewMemoryCacheWithTTL(10, time.Hour)
	defer cache.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	cache.Set("old", 1)
	now = now.Add(30 * time.Minute)
	cache.Set("new", 2)
	now = now.Add(45 * time.Minute)

	cache.cleanupExpired()
	if cache.Size() != 1 {
		t.Fatalf("Expected 1 item after sweep, got %d", cache.Size())
	}
	if _, ok := cache.Get("new"); !ok {
		t.Error("Expected new to survive the sweep")
	}
}

func TestBlobStore(t *testing.T) {
	store := NewBlobStore(4, 0)
	defer store.Close()

	if err := store.Put(Blob{}); err == nil {
		t.Error("Expected error for blob without id")
	}

	blob := Blob{ID: "x1", Filename: "campaign_x.csv", Data: []byte("a,b")}
	if err := store.Put(blob); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := store.Get("x1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Filename != blob.Filename || string(got.Data) != "a,b" {
		t.Errorf("Unexpected blob %+v", got)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
