// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilefb

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/tilefb/canvas"
	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/tiling"
)

// FrameState is the position of a Compositor in its frame cycle.
type FrameState uint8

const (
	// StateIdle means no slot is held.
	StateIdle FrameState = iota

	// StateAcquired means a slot is held and the canvas is being drawn.
	StateAcquired
)

func (s FrameState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquired:
		return "Acquired"
	default:
		return fmt.Sprintf("FrameState(%d)", uint8(s))
	}
}

// Compositor renders frames into a linear scratch canvas and presents
// them through a SwapChain in block-linear form.
//
// A Compositor belongs to one render goroutine; its methods must not be
// called concurrently.
type Compositor struct {
	chain    SwapChain
	flusher  CacheFlusher
	canceler Canceler
	cfg      Config
	layout   tiling.Layout
	conv     *tiling.Converter
	canvas   *canvas.Canvas
	opts     options
	log      *slog.Logger

	state  FrameState
	cur    Buffer
	frames uint64
	closed bool
}

// New validates cfg and prepares a compositor for chain. The scratch
// canvas is allocated once here and reused by every frame.
func New(chain SwapChain, cfg Config, opts ...Option) (*Compositor, error) {
	if chain == nil {
		return nil, ErrNilSwapChain
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	layout := cfg.Layout()
	cv, err := canvas.NewPadded(cfg.Width, cfg.Height, cfg.Stride, layout.AlignedHeight(), cfg.Format)
	if err != nil {
		return nil, &ConfigError{Field: "Stride", Value: cfg.Stride, Reason: err.Error()}
	}
	conv, err := tiling.NewConverter(layout, o.workers)
	if err != nil {
		return nil, err
	}

	c := &Compositor{
		chain:  chain,
		cfg:    cfg,
		layout: layout,
		conv:   conv,
		canvas: cv,
		opts:   o,
		log:    o.logger,
	}
	if c.log == nil {
		c.log = Logger()
	}
	switch {
	case o.flusher != nil:
		c.flusher = o.flusher
	default:
		if f, ok := chain.(CacheFlusher); ok {
			c.flusher = f
		} else {
			c.flusher = nopFlusher{}
		}
	}
	c.canceler, _ = chain.(Canceler)

	c.log.Info("tilefb: compositor created",
		"width", cfg.Width,
		"height", cfg.Height,
		"stride", cfg.Stride,
		"format", cfg.Format,
		"block", cfg.BlockHeight,
		"tiled_size", layout.TiledSize(),
		"workers", conv.Workers())
	return c, nil
}

// BeginFrame acquires the next swap-chain slot, waits until the display
// engine has released it and returns the canvas to draw into. The
// canvas keeps the previous frame's contents.
func (c *Compositor) BeginFrame() (*canvas.Canvas, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.state != StateIdle {
		return nil, ErrFrameInProgress
	}

	buf, err := c.chain.Acquire()
	if err != nil {
		return nil, &FrameError{Op: "acquire", Slot: -1, Err: err}
	}
	if len(buf.Data) < c.layout.TiledSize() {
		c.handBack(buf)
		return nil, &FrameError{
			Op:   "acquire",
			Slot: buf.Slot,
			Err:  fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(buf.Data), c.layout.TiledSize()),
		}
	}
	if err := c.chain.WaitFences(buf.Fences, c.opts.fenceTimeout); err != nil {
		c.handBack(buf)
		return nil, &FrameError{Op: "wait fences", Slot: buf.Slot, Err: err}
	}

	c.cur = buf
	c.state = StateAcquired
	c.log.Debug("tilefb: frame begun", "slot", buf.Slot, "frame", c.frames)
	return c.canvas, nil
}

// EndFrame converts the canvas into the acquired slot, flushes the
// written range, submits the slot and, unless the present mode is
// Immediate or Mailbox, waits for vertical sync.
//
// The frame is over once EndFrame returns, whatever the outcome.
func (c *Compositor) EndFrame() error {
	if c.state != StateAcquired {
		return ErrNoFrame
	}
	buf := c.cur
	c.cur = Buffer{}
	c.state = StateIdle

	dst := buf.Data[:c.layout.TiledSize()]
	if err := c.conv.Tile(dst, c.canvas.Bytes()); err != nil {
		c.handBack(buf)
		return fmt.Errorf("tilefb: tile: %w", err)
	}
	c.flusher.FlushRange(dst)

	if err := c.chain.Submit(buf.Slot, buf.Fences); err != nil {
		c.handBack(buf)
		return &FrameError{Op: "submit", Slot: buf.Slot, Err: err}
	}
	c.frames++
	c.log.Debug("tilefb: frame submitted", "slot", buf.Slot, "frame", c.frames)

	if !c.cfg.WaitsForVsync() {
		return nil
	}
	if err := c.chain.WaitVsync(c.opts.vsyncTimeout); err != nil {
		return &FrameError{Op: "wait vsync", Slot: buf.Slot, Err: err}
	}
	return nil
}

// CancelFrame abandons the open frame without presenting it. The slot
// goes back to the swap chain when it implements Canceler.
func (c *Compositor) CancelFrame() error {
	if c.state != StateAcquired {
		return ErrNoFrame
	}
	buf := c.cur
	c.cur = Buffer{}
	c.state = StateIdle
	c.log.Debug("tilefb: frame cancelled", "slot", buf.Slot)
	if c.canceler == nil {
		return nil
	}
	if err := c.canceler.Cancel(buf.Slot, buf.Fences); err != nil {
		return &FrameError{Op: "cancel", Slot: buf.Slot, Err: err}
	}
	return nil
}

// Render runs one full frame: BeginFrame, an optional Clear, draw and
// EndFrame. An error from draw cancels the frame and is returned as is.
func (c *Compositor) Render(clear *pixel.Color, draw func(*canvas.Canvas) error) error {
	cv, err := c.BeginFrame()
	if err != nil {
		return err
	}
	if clear != nil {
		cv.Clear(*clear)
	}
	if draw != nil {
		if err := draw(cv); err != nil {
			if cerr := c.CancelFrame(); cerr != nil {
				return errors.Join(err, cerr)
			}
			return err
		}
	}
	return c.EndFrame()
}

// WaitVsync blocks until the next vertical blanking interval.
func (c *Compositor) WaitVsync() error {
	if c.closed {
		return ErrClosed
	}
	if err := c.chain.WaitVsync(c.opts.vsyncTimeout); err != nil {
		return &FrameError{Op: "wait vsync", Slot: -1, Err: err}
	}
	return nil
}

// handBack returns an acquired slot that will not be submitted.
func (c *Compositor) handBack(buf Buffer) {
	c.log.Warn("tilefb: frame aborted", "slot", buf.Slot)
	if c.canceler == nil {
		return
	}
	if err := c.canceler.Cancel(buf.Slot, buf.Fences); err != nil {
		c.log.Warn("tilefb: slot hand-back failed", "slot", buf.Slot, "err", err)
	}
}

// Canvas returns the scratch canvas. Its contents persist across frames.
func (c *Compositor) Canvas() *canvas.Canvas { return c.canvas }

// Config returns the configuration with defaults applied.
func (c *Compositor) Config() Config { return c.cfg }

// Layout returns the block-linear layout of the swap-chain buffers.
func (c *Compositor) Layout() tiling.Layout { return c.layout }

// State returns the current frame state.
func (c *Compositor) State() FrameState { return c.state }

// Frames returns the number of frames submitted.
func (c *Compositor) Frames() uint64 { return c.frames }

// Close cancels any open frame, stops tiling workers and releases the
// scratch canvas. It is safe to call more than once.
func (c *Compositor) Close() error {
	if c.closed {
		return nil
	}
	var err error
	if c.state == StateAcquired {
		err = c.CancelFrame()
	}
	c.closed = true
	c.conv.Close()
	c.canvas.Release()
	c.log.Info("tilefb: compositor closed", "frames", c.frames)
	return err
}
