package cache

import (
	"fmt"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c := New[string, int](4)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	c.Put("a", 1)
	c.Put("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](3)
	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")

	// Touch 1 so 2 becomes the eviction candidate.
	c.Get(1)
	c.Put(4, "four")

	if _, ok := c.Get(2); ok {
		t.Error("least recently used entry survived eviction")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted, want kept", k)
		}
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestCachePutUpdatesExisting(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	// The update refreshed a's recency: c evicts b next.
	c.Put("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction after a was refreshed")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	c.Put("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("cache unusable after Clear: %d, %v", v, ok)
	}
}

func TestCacheStats(t *testing.T) {
	c := New[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Get(1)
	c.Get(9)
	c.Put(3, 3)

	hits, misses, evictions := c.Stats()
	if hits != 1 || misses != 1 || evictions != 1 {
		t.Errorf("Stats() = %d, %d, %d, want 1, 1, 1", hits, misses, evictions)
	}
}

func TestCacheCapacityOne(t *testing.T) {
	c := New[int, int](1)
	for i := 0; i < 10; i++ {
		c.Put(i, i*i)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if v, ok := c.Get(9); !ok || v != 81 {
		t.Errorf("Get(9) = %d, %v, want 81, true", v, ok)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string, int](256)
	for i := 0; i < 256; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key-128")
	}
}
