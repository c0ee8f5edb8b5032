package cache

import (
	"sync"
	"testing"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")
	if _, ok := c.Get(1); !ok { // 1 is now the most recent
		t.Fatal("1 missing")
	}
	c.Put(3, "three")

	if _, ok := c.Get(2); ok {
		t.Error("2 should have been evicted")
	}
	for _, k := range []int{1, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%d missing", k)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if s := c.Stats(); s.Evictions != 1 || s.Misses != 1 || s.Hits != 3 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestLRUPutReplaces(t *testing.T) {
	c := New[string, int](4)
	c.Put("a", 1)
	c.Put("a", 2)
	if v, _ := c.Get("a"); v != 2 || c.Len() != 1 {
		t.Errorf("Get = %d, Len = %d", v, c.Len())
	}
}

func TestLRUUnbounded(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Put(i, i)
	}
	if c.Len() != 1000 || c.Stats().Evictions != 0 {
		t.Errorf("Len = %d, Stats = %+v", c.Len(), c.Stats())
	}
}

func TestLRUConcurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (g*31 + i) % 40
				c.Put(k, k*2)
				if v, ok := c.Get(k); ok && v != k*2 {
					t.Errorf("Get(%d) = %d", k, v)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func BenchmarkLRUHit(b *testing.B) {
	c := New[int, int](256)
	for i := range 256 {
		c.Put(i, i)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i & 255)
	}
}
