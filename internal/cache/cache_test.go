// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time          { return time.Unix(0, c.nanos.Load()) }
func (c *fakeClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

func TestCacheBasicOperations(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(24*time.Hour, clock.Now)
	defer c.Close()

	c.Set("poster:19995", "https://image.tmdb.org/t/p/w500/a.jpg")

	clock.Advance(23 * time.Hour)
	if _, exists := c.Get("poster:19995"); !exists {
		t.Error("Expected entry to exist before TTL elapses")
	}

	clock.Advance(2 * time.Hour)
	if _, exists := c.Get("poster:19995"); exists {
		t.Error("Expected entry to be expired after TTL")
	}

	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be removed on read, got %d entries", c.Len())
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Hour, clock.Now)
	defer c.Close()

	c.SetWithTTL("short", 1, time.Minute)
	c.Set("long", 2)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short-lived entry to expire")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Expected long entry = 2, got %v (exists=%v)", v, ok)
	}
}

func TestCacheSetRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Hour, clock.Now)
	defer c.Close()

	c.Set("k", "v1")
	clock.Advance(50 * time.Minute)
	c.Set("k", "v2")
	clock.Advance(50 * time.Minute)

	v, ok := c.Get("k")
	if !ok || v != "v2" {
		t.Errorf("Expected refreshed entry v2, got %v (exists=%v)", v, ok)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}

	// Deleting a missing key is not an eviction.
	c.Delete("missing")
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Expected evictions to stay at 1, got %d", stats.Evictions)
	}
}

func TestCacheClear(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Clear()

	for _, key := range []string{"key1", "key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestCacheCleanup(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Minute, clock.Now)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("c", 3, time.Hour)

	clock.Advance(2 * time.Minute)
	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after cleanup, got %d", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 2 {
		t.Errorf("Expected 2 evictions, got %d", stats.Evictions)
	}
	if !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("Expected LastCleanup %v, got %v", clock.Now(), stats.LastCleanup)
	}
}

func TestCacheStats(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	if c.HitRate() != 0 {
		t.Errorf("Expected 0 hit rate on empty cache, got %f", c.HitRate())
	}

	c.Set("key1", "value1")
	c.Get("key1")
	c.Get("key1")
	c.Get("key1")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 3 {
		t.Errorf("Expected 3 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("Expected 1 key, got %d", stats.TotalKeys)
	}
	if c.HitRate() != 75.0 {
		t.Errorf("Expected 75%% hit rate, got %f", c.HitRate())
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	c := New(time.Minute)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("poster:%d", n%5)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 5 {
		t.Errorf("Expected 5 keys, got %d", c.Len())
	}
}

func TestNewCacher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default type", Config{TTL: time.Minute}, false},
		{"memory", Config{Type: TypeMemory}, false},
		{"badger in-memory", Config{Type: TypeBadger, TTL: time.Minute}, false},
		{"unknown", Config{Type: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCacher(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCacher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()

			c.Set("k", "v")
			if v, ok := c.Get("k"); !ok || v != "v" {
				t.Errorf("Get() = %v, %v; want v, true", v, ok)
			}
		})
	}
}

func TestBadgerCacheOperations(t *testing.T) {
	c, err := OpenBadger("", time.Hour)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer c.Close()

	c.Set("poster:1", "https://image.tmdb.org/t/p/w500/x.jpg")
	v, ok := c.Get("poster:1")
	if !ok {
		t.Fatal("Expected poster:1 to exist")
	}
	if s, _ := v.(string); s != "https://image.tmdb.org/t/p/w500/x.jpg" {
		t.Errorf("Get() = %v, want poster URL", v)
	}

	if _, ok := c.Get("poster:2"); ok {
		t.Error("Expected poster:2 to be missing")
	}

	c.Delete("poster:1")
	if _, ok := c.Get("poster:1"); ok {
		t.Error("Expected poster:1 to be deleted")
	}

	c.Set("a", "1")
	c.Set("b", "2")
	if stats := c.GetStats(); stats.TotalKeys != 2 {
		t.Errorf("Expected 2 keys, got %d", stats.TotalKeys)
	}

	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("Expected cache to be cleared")
	}

	stats := c.GetStats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 3 {
		t.Errorf("Expected 3 misses, got %d", stats.Misses)
	}
}

func TestBadgerCacheExpiry(t *testing.T) {
	c, err := OpenBadger("", time.Hour)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer c.Close()

	// Badger TTLs have one-second resolution.
	c.SetWithTTL("short", "v", time.Second)
	time.Sleep(2100 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestBadgerCachePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	c, err := OpenBadger(dir, time.Hour)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	c.Set("poster:42", "https://image.tmdb.org/t/p/w500/42.jpg")
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(dir, time.Hour)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	if v, ok := reopened.Get("poster:42"); !ok || v != "https://image.tmdb.org/t/p/w500/42.jpg" {
		t.Errorf("Get() after reopen = %v, %v", v, ok)
	}
}

func TestBadgerCacheCollectGarbage(t *testing.T) {
	t.Run("in-memory has nothing to collect", func(t *testing.T) {
		c, err := OpenBadger("", time.Hour)
		if err != nil {
			t.Fatalf("OpenBadger() error = %v", err)
		}
		defer c.Close()

		freed, err := c.CollectGarbage(0.5)
		if err != nil || freed {
			t.Errorf("CollectGarbage() = %v, %v; want false, nil", freed, err)
		}
	})

	t.Run("fresh on-disk cache has nothing to rewrite", func(t *testing.T) {
		c, err := OpenBadger(t.TempDir(), time.Hour)
		if err != nil {
			t.Fatalf("OpenBadger() error = %v", err)
		}
		defer c.Close()

		c.Set("poster:1", "https://image.tmdb.org/t/p/w500/1.jpg")
		if _, err := c.CollectGarbage(0.5); err != nil {
			t.Errorf("CollectGarbage() error = %v", err)
		}
	})
}
