package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close, want 2", ran)
	}
}

func TestWorkerPool_ForEach(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	for _, n := range []int{1, 2, 3, 7, 64} {
		seen := make([]int32, n)
		var mu sync.Mutex
		calls := 0
		pool.ForEach(n, func(lo, hi int) {
			mu.Lock()
			calls++
			mu.Unlock()
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, v := range seen {
			if v != 1 {
				t.Errorf("n=%d: index %d visited %d times", n, i, v)
			}
		}
		if calls > 3 {
			t.Errorf("n=%d: %d ranges, want at most 3", n, calls)
		}
	}

	pool.ForEach(0, func(lo, hi int) { t.Error("ForEach(0) called fn") })
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	var ran atomic.Int32
	pool.ForEach(10, func(lo, hi int) { ran.Add(int32(hi - lo)) })
	if ran.Load() != 10 {
		t.Errorf("ForEach after Close covered %d items, want 10", ran.Load())
	}
}

func TestWorkerPool_UnevenWork(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var done atomic.Int32
	work := make([]func(), 16)
	for i := range work {
		d := time.Duration(i%4) * time.Millisecond
		work[i] = func() {
			time.Sleep(d)
			done.Add(1)
		}
	}
	pool.ExecuteAll(work)

	if got := done.Load(); got != 16 {
		t.Errorf("done = %d, want 16", got)
	}
}
