package tilefb

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/tiling"
)

// Config describes one scan-out surface.
type Config struct {
	// Width and Height are the visible size in pixels.
	Width, Height int

	// Stride is the row pitch in bytes. Zero selects the smallest pitch
	// that is a multiple of the GOB width.
	Stride int

	// Format is the pixel encoding of the scan-out buffers.
	Format pixel.Format

	// BlockHeight is the log2 of the GOBs stacked in one block. The zero
	// value is tiling.OneGOB.
	BlockHeight tiling.BlockHeight

	// PresentMode selects whether EndFrame waits for vblank. Undefined
	// behaves as Fifo.
	PresentMode gputypes.PresentMode

	// Buffers is the swap-chain depth reported to the surface
	// configuration. Zero means 2.
	Buffers int
}

func (c Config) withDefaults() Config {
	if c.Stride == 0 && c.Width > 0 && c.Format.Valid() {
		c.Stride = tiling.Pitch(c.Width, c.Format.BytesPerPixel())
	}
	if c.PresentMode == gputypes.PresentModeUndefined {
		c.PresentMode = gputypes.PresentModeFifo
	}
	if c.Buffers == 0 {
		c.Buffers = 2
	}
	return c
}

// Validate reports the first field that cannot be used, as a
// *ConfigError. Defaults are applied first.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "Width", Value: c.Width, Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "Height", Value: c.Height, Reason: "must be positive"}
	case !c.Format.Valid():
		return &ConfigError{Field: "Format", Value: c.Format, Reason: "unsupported pixel format"}
	case c.Stride < c.Width*c.Format.BytesPerPixel():
		return &ConfigError{Field: "Stride", Value: c.Stride, Reason: "shorter than a row of pixels"}
	case c.Stride%tiling.GOBWidth != 0:
		return &ConfigError{Field: "Stride", Value: c.Stride, Reason: "not a multiple of the GOB width"}
	case !c.BlockHeight.Valid():
		return &ConfigError{Field: "BlockHeight", Value: c.BlockHeight, Reason: "must be 1, 2, 4, 8, 16 or 32 GOBs"}
	case c.PresentMode > gputypes.PresentModeMailbox:
		return &ConfigError{Field: "PresentMode", Value: c.PresentMode, Reason: "unknown present mode"}
	case c.Buffers < 1:
		return &ConfigError{Field: "Buffers", Value: c.Buffers, Reason: "need at least one buffer"}
	}
	return c.Layout().Validate()
}

// Layout returns the block-linear layout of the scan-out buffers.
func (c Config) Layout() tiling.Layout {
	c = c.withDefaults()
	return tiling.Layout{Stride: c.Stride, Height: c.Height, Block: c.BlockHeight}
}

// BufferSize is the number of bytes a swap-chain slot must hold.
func (c Config) BufferSize() int {
	return c.Layout().TiledSize()
}

// WaitsForVsync reports whether EndFrame blocks on vertical sync.
func (c Config) WaitsForVsync() bool {
	switch c.withDefaults().PresentMode {
	case gputypes.PresentModeImmediate, gputypes.PresentModeMailbox:
		return false
	}
	return true
}

// SurfaceConfiguration describes the surface in WebGPU terms, for hosts
// that mirror it into a GPU swap chain.
func (c Config) SurfaceConfiguration() gputypes.SurfaceConfiguration {
	c = c.withDefaults()
	return gputypes.SurfaceConfiguration{
		Usage:                      gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopyDst,
		Format:                     c.Format.TextureFormat(),
		Width:                      uint32(c.Width),
		Height:                     uint32(c.Height),
		PresentMode:                c.PresentMode,
		DesiredMaximumFrameLatency: uint32(c.Buffers),
		AlphaMode:                  gputypes.CompositeAlphaModeOpaque,
	}
}
