package tilefb

import (
	"errors"
	"fmt"
)

// Sentinel errors for the frame cycle.
var (
	// ErrNoFrame is returned by EndFrame and CancelFrame without an open
	// frame.
	ErrNoFrame = errors.New("tilefb: no frame in progress")

	// ErrFrameInProgress is returned by BeginFrame while a frame is open.
	ErrFrameInProgress = errors.New("tilefb: frame already in progress")

	// ErrBufferTooSmall is returned when an acquired slot cannot hold the
	// tiled frame.
	ErrBufferTooSmall = errors.New("tilefb: swap-chain buffer too small")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("tilefb: compositor closed")

	// ErrNilSwapChain is returned by New without a swap chain.
	ErrNilSwapChain = errors.New("tilefb: nil swap chain")
)

// ConfigError reports a Config field that cannot work with the display
// engine.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tilefb: invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}

// FrameError wraps a swap-chain failure with the step that failed.
type FrameError struct {
	Op   string // "acquire", "wait fences", "submit", "wait vsync"
	Slot int    // -1 before a slot is known
	Err  error
}

func (e *FrameError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("tilefb: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("tilefb: %s (slot %d): %v", e.Op, e.Slot, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
