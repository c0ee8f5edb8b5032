package tiling

import (
	"sync/atomic"

	"github.com/gogpu/tilefb/internal/parallel"
)

// Converter tiles frames of one fixed layout.
//
// With more than one worker, block rows are converted concurrently; the
// output is identical to the sequential path because every block row
// owns a disjoint range of the destination.
//
// A Converter may be used by one goroutine at a time.
type Converter struct {
	layout Layout
	pool   *parallel.WorkerPool
	closed atomic.Bool
}

// NewConverter validates l and returns a converter for it. workers <= 1
// converts on the calling goroutine.
func NewConverter(l Layout, workers int) (*Converter, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	c := &Converter{layout: l}
	if workers > 1 && l.HeightBlocks() > 1 {
		c.pool = parallel.NewWorkerPool(workers)
	}
	return c, nil
}

// Layout returns the layout the converter was created with.
func (c *Converter) Layout() Layout {
	return c.layout
}

// Workers returns the number of goroutines used per frame.
func (c *Converter) Workers() int {
	if c.pool == nil {
		return 1
	}
	return c.pool.Workers()
}

// Tile converts src into dst. See the package-level Tile.
func (c *Converter) Tile(dst, src []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	l := c.layout
	if err := checkBuffers(l, len(dst), len(src)); err != nil {
		return err
	}
	if c.pool == nil {
		tileRows(dst, src, l, 0, l.HeightBlocks())
		return nil
	}
	c.pool.ForEach(l.HeightBlocks(), func(lo, hi int) {
		tileRows(dst, src, l, lo, hi)
	})
	return nil
}

// Close stops the worker pool. It is safe to call more than once.
func (c *Converter) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
