package pixel

import (
	"encoding/binary"
	"strconv"

	"github.com/gogpu/gputypes"
)

// Format is the in-memory layout of one pixel.
type Format uint8

const (
	// FormatRGBA8888 stores four bytes per pixel in memory order R, G, B, A
	// (the A8B8G8R8 word on a little-endian bus).
	FormatRGBA8888 Format = iota

	// FormatRGBA4444 stores two bytes per pixel, four bits per channel,
	// with red in the lowest nibble and alpha in the highest.
	FormatRGBA4444
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatRGBA8888 || f == FormatRGBA4444
}

// BytesPerPixel returns the storage size of one pixel.
func (f Format) BytesPerPixel() int {
	if f == FormatRGBA4444 {
		return 2
	}
	return 4
}

// Pack converts c into the format's pixel word.
func (f Format) Pack(c Color) uint32 {
	if f == FormatRGBA4444 {
		return uint32(c.R>>4) | uint32(c.G>>4)<<4 | uint32(c.B>>4)<<8 | uint32(c.A>>4)<<12
	}
	return c.EncodeABGR()
}

// Unpack is the inverse of Pack. Four-bit channels are expanded so that
// 0xF becomes 0xFF.
func (f Format) Unpack(v uint32) Color {
	if f == FormatRGBA4444 {
		return Color{
			R: uint8(v&0xF) * 17,
			G: uint8(v>>4&0xF) * 17,
			B: uint8(v>>8&0xF) * 17,
			A: uint8(v>>12&0xF) * 17,
		}
	}
	return FromABGR(v)
}

// Store writes c at the start of b. b must hold at least BytesPerPixel bytes.
func (f Format) Store(b []byte, c Color) {
	if f == FormatRGBA4444 {
		binary.LittleEndian.PutUint16(b, uint16(f.Pack(c)))
		return
	}
	binary.LittleEndian.PutUint32(b, c.EncodeABGR())
}

// Load reads the pixel at the start of b.
func (f Format) Load(b []byte) Color {
	if f == FormatRGBA4444 {
		return f.Unpack(uint32(binary.LittleEndian.Uint16(b)))
	}
	return FromABGR(binary.LittleEndian.Uint32(b))
}

// TextureFormat returns the matching GPU texture format, or
// TextureFormatUndefined when the format has no WebGPU equivalent.
func (f Format) TextureFormat() gputypes.TextureFormat {
	if f == FormatRGBA8888 {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return gputypes.TextureFormatUndefined
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGBA4444:
		return "RGBA4444"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat returns the format named s ("RGBA8888" or "RGBA4444").
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "RGBA8888", "rgba8888", "rgba8":
		return FormatRGBA8888, true
	case "RGBA4444", "rgba4444", "rgba4":
		return FormatRGBA4444, true
	}
	return 0, false
}
