package display

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilefb"
	"github.com/gogpu/tilefb/tiling"
)

type slotState uint8

const (
	slotFree slotState = iota
	slotDequeued
	slotQueued
	slotScanout
)

func (s slotState) String() string {
	switch s {
	case slotFree:
		return "free"
	case slotDequeued:
		return "dequeued"
	case slotQueued:
		return "queued"
	default:
		return "scanout"
	}
}

type slot struct {
	data  []byte
	state slotState
	fence tilefb.Fence
}

// Stats counts what a layer has done since creation.
type Stats struct {
	Presented    uint64 // buffers flipped to scanout
	Dropped      uint64 // queued buffers replaced before a flip
	Cancelled    uint64
	Flushes      uint64
	FlushedBytes uint64
}

// Layer is one scan-out plane of a Device. It is safe for concurrent
// use.
type Layer struct {
	dev  *Device
	name string
	id   uint32
	cfg  tilefb.Config

	mu      sync.Mutex
	cond    *sync.Cond
	slots   []slot
	next    int
	queue   []int // submitted slots, oldest first
	scanout int   // -1 before the first flip
	closed  bool
	stats   Stats
}

func newLayer(d *Device, name string, id uint32, cfg tilefb.Config) *Layer {
	if cfg.Buffers == 0 {
		cfg.Buffers = 2
	}
	l := &Layer{
		dev:     d,
		name:    name,
		id:      id,
		cfg:     cfg,
		slots:   make([]slot, cfg.Buffers),
		scanout: -1,
	}
	l.cond = sync.NewCond(&l.mu)
	size := cfg.BufferSize()
	for i := range l.slots {
		l.slots[i].data = make([]byte, size)
	}
	return l
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Syncpoint returns the syncpoint ID the layer's fences refer to.
func (l *Layer) Syncpoint() uint32 { return l.id }

// Config returns the surface configuration the layer was created with,
// ready to pass to tilefb.New.
func (l *Layer) Config() tilefb.Config { return l.cfg }

// Acquire hands out the next free slot, blocking while every slot is in
// use. A single-buffer layer renders into its front buffer: once nothing
// is queued, the slot on scanout is handed out again, fenced to the next
// vblank.
func (l *Layer) Acquire() (tilefb.Buffer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		if l.closed {
			return tilefb.Buffer{}, ErrClosed
		}
		for k := range l.slots {
			i := (l.next + k) % len(l.slots)
			s := &l.slots[i]
			if s.state != slotFree {
				continue
			}
			s.state = slotDequeued
			l.next = (i + 1) % len(l.slots)
			buf := tilefb.Buffer{Data: s.data, Slot: i}
			if s.fence.ID != 0 {
				buf.Fences.Count = 1
				buf.Fences.Fences[0] = s.fence
			}
			return buf, nil
		}
		if len(l.slots) == 1 && l.scanout == 0 && len(l.queue) == 0 && l.slots[0].state == slotScanout {
			s := &l.slots[0]
			s.state = slotDequeued
			s.fence = tilefb.Fence{ID: l.id, Value: uint32(l.dev.VBlank() + 1)}
			buf := tilefb.Buffer{Data: s.data, Slot: 0}
			buf.Fences.Count = 1
			buf.Fences.Fences[0] = s.fence
			return buf, nil
		}
		l.cond.Wait()
	}
}

// Submit queues a dequeued slot. Fifo layers present every queued slot,
// one per vblank. Mailbox and Immediate layers keep only the newest: a
// buffer already queued and not yet flipped is dropped. With
// PresentModeImmediate the flip happens at once.
func (l *Layer) Submit(i int, _ tilefb.MultiFence) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.own(i, "submit"); err != nil {
		return err
	}
	switch l.cfg.PresentMode {
	case gputypes.PresentModeMailbox, gputypes.PresentModeImmediate:
		for _, q := range l.queue {
			l.slots[q].state = slotFree
			l.stats.Dropped++
			l.dev.log.Debug("display: queued buffer dropped", "layer", l.name, "slot", q)
		}
		l.queue = l.queue[:0]
	}
	l.slots[i].state = slotQueued
	l.queue = append(l.queue, i)
	if l.cfg.PresentMode == gputypes.PresentModeImmediate {
		l.flipLocked(l.dev.VBlank())
	}
	l.cond.Broadcast()
	return nil
}

// Cancel returns a dequeued slot unpresented. Its fence is kept. A
// front buffer goes back to scanout.
func (l *Layer) Cancel(i int, _ tilefb.MultiFence) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.own(i, "cancel"); err != nil {
		return err
	}
	if i == l.scanout {
		l.slots[i].state = slotScanout
	} else {
		l.slots[i].state = slotFree
	}
	l.stats.Cancelled++
	l.cond.Broadcast()
	return nil
}

func (l *Layer) own(i int, op string) error {
	if l.closed {
		return ErrClosed
	}
	if i < 0 || i >= len(l.slots) {
		return fmt.Errorf("%w: %s slot %d out of range", ErrBadSlot, op, i)
	}
	if st := l.slots[i].state; st != slotDequeued {
		return fmt.Errorf("%w: %s slot %d is %v", ErrBadSlot, op, i, st)
	}
	return nil
}

// WaitFences blocks until every fence is signaled. All fences refer to
// the device vblank counter.
func (l *Layer) WaitFences(f tilefb.MultiFence, timeout time.Duration) error {
	var target uint64
	for _, fc := range f.Active() {
		target = max(target, uint64(fc.Value))
	}
	if target == 0 {
		return nil
	}
	return l.dev.waitUntil(target, timeout)
}

// WaitVsync blocks until the next device vblank.
func (l *Layer) WaitVsync(timeout time.Duration) error {
	return l.dev.WaitVsync(timeout)
}

// FlushRange records a cache flush. Software buffers are coherent.
func (l *Layer) FlushRange(b []byte) {
	l.mu.Lock()
	l.stats.Flushes++
	l.stats.FlushedBytes += uint64(len(b))
	l.mu.Unlock()
}

func (l *Layer) flip(n uint64) {
	l.mu.Lock()
	l.flipLocked(n)
	l.mu.Unlock()
}

// flipLocked moves the oldest queued slot to scanout. The slot leaving
// scanout is free again, fenced until the vblank after n.
func (l *Layer) flipLocked(n uint64) {
	if len(l.queue) == 0 {
		return
	}
	next := l.queue[0]
	l.queue = l.queue[1:]
	if l.scanout >= 0 && l.scanout != next {
		s := &l.slots[l.scanout]
		s.state = slotFree
		s.fence = tilefb.Fence{ID: l.id, Value: uint32(n + 1)}
	}
	l.slots[next].state = slotScanout
	l.scanout = next
	l.stats.Presented++
	l.cond.Broadcast()
}

// Stats returns a copy of the layer counters.
func (l *Layer) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Snapshot decodes the buffer on scanout. It reports false before the
// first flip.
func (l *Layer) Snapshot() (*image.NRGBA, bool) {
	l.mu.Lock()
	if l.scanout < 0 {
		l.mu.Unlock()
		return nil, false
	}
	layout := l.cfg.Layout()
	linear := make([]byte, layout.LinearSize())
	err := tiling.Untile(linear, l.slots[l.scanout].data, layout)
	l.mu.Unlock()
	if err != nil {
		return nil, false
	}

	w, h := l.cfg.Width, l.cfg.Height
	bpp := l.cfg.Format.BytesPerPixel()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		row := linear[y*layout.Stride:]
		for x := range w {
			c := l.cfg.Format.Load(row[x*bpp:])
			o := img.PixOffset(x, y)
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = c.R, c.G, c.B, c.A
		}
	}
	return img, true
}

func (l *Layer) close() {
	l.mu.Lock()
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()
}

var (
	_ tilefb.SwapChain    = (*Layer)(nil)
	_ tilefb.CacheFlusher = (*Layer)(nil)
	_ tilefb.Canceler     = (*Layer)(nil)
)
