package display

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/tilefb"
)

// Option configures a Device.
type Option func(*Device)

// WithRefreshRate starts a vblank ticker at hz. Zero, the default,
// leaves the device in manual mode.
func WithRefreshRate(hz float64) Option {
	return func(d *Device) {
		if hz > 0 {
			d.period = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithLogger sets the device logger. The default is tilefb.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.log = l
	}
}

// Device is a software display engine.
//
// Layer lookups take a read lock and may run concurrently; creating and
// destroying layers takes the write lock.
type Device struct {
	mu      sync.RWMutex
	layers  map[string]*Layer
	nextID  uint32
	log     *slog.Logger
	period  time.Duration
	closing sync.Once
	done    chan struct{}
	wg      sync.WaitGroup

	step   sync.Mutex
	vmu    sync.Mutex
	vblank uint64
	tick   chan struct{} // closed and replaced on every vblank
}

// NewDevice creates a device and, with a refresh rate, starts its
// vblank ticker.
func NewDevice(opts ...Option) *Device {
	d := &Device{
		layers: make(map[string]*Layer),
		nextID: 1,
		done:   make(chan struct{}),
		tick:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = tilefb.Logger()
	}
	if d.period > 0 {
		d.wg.Add(1)
		go d.run()
	}
	d.log.Info("display: device created", "period", d.period)
	return d
}

func (d *Device) run() {
	defer d.wg.Done()
	t := time.NewTicker(d.period)
	defer t.Stop()
	for {
		select {
		case <-d.done:
			return
		case <-t.C:
			d.Step()
		}
	}
}

// Step signals one vertical blanking interval: every layer flips to its
// queued buffer and waiters on the new count are released. It returns
// the new vblank count.
func (d *Device) Step() uint64 {
	d.step.Lock()
	defer d.step.Unlock()

	// Layers flip before the count moves, so a released vsync waiter
	// always sees the new scanout buffer.
	n := d.VBlank() + 1
	d.mu.RLock()
	for _, l := range d.layers {
		l.flip(n)
	}
	d.mu.RUnlock()

	d.vmu.Lock()
	d.vblank = n
	close(d.tick)
	d.tick = make(chan struct{})
	d.vmu.Unlock()
	return n
}

// VBlank returns the number of vblanks so far.
func (d *Device) VBlank() uint64 {
	d.vmu.Lock()
	defer d.vmu.Unlock()
	return d.vblank
}

// waitUntil blocks until the vblank count reaches v. A negative timeout
// waits forever.
func (d *Device) waitUntil(v uint64, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	for {
		d.vmu.Lock()
		reached, ch := d.vblank >= v, d.tick
		d.vmu.Unlock()
		if reached {
			return nil
		}
		select {
		case <-ch:
		case <-expired:
			return ErrTimeout
		case <-d.done:
			return ErrClosed
		}
	}
}

// WaitVsync blocks until the next vblank.
func (d *Device) WaitVsync(timeout time.Duration) error {
	return d.waitUntil(d.VBlank()+1, timeout)
}

// CreateLayer adds a layer named name with cfg.Buffers tiled buffers.
func (d *Device) CreateLayer(name string, cfg tilefb.Config) (*Layer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.done:
		return nil, ErrClosed
	default:
	}
	if _, ok := d.layers[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrLayerExists, name)
	}

	l := newLayer(d, name, d.nextID, cfg)
	d.nextID++
	d.layers[name] = l
	d.log.Info("display: layer created",
		"name", name,
		"syncpoint", l.id,
		"buffers", len(l.slots),
		"buffer_size", l.cfg.BufferSize())
	return l, nil
}

// DestroyLayer closes and removes the named layer. Goroutines blocked in
// its Acquire return ErrClosed.
func (d *Device) DestroyLayer(name string) error {
	d.mu.Lock()
	l, ok := d.layers[name]
	delete(d.layers, name)
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNoLayer, name)
	}
	l.close()
	d.log.Info("display: layer destroyed", "name", name)
	return nil
}

// Layer returns the named layer.
func (d *Device) Layer(name string) (*Layer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	l, ok := d.layers[name]
	return l, ok
}

// Layers returns the layer names in sorted order.
func (d *Device) Layers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Sorted(maps.Keys(d.layers))
}

// Close stops the ticker and closes every layer. It is safe to call
// more than once.
func (d *Device) Close() error {
	d.closing.Do(func() {
		close(d.done)
		d.wg.Wait()

		d.mu.Lock()
		layers := d.layers
		d.layers = make(map[string]*Layer)
		d.mu.Unlock()

		for _, l := range layers {
			l.close()
		}
		d.log.Info("display: device closed", "vblank", d.VBlank())
	})
	return nil
}
