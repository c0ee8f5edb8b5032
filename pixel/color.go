package pixel

import "image/color"

// Color is a non-premultiplied color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color from all four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// decode splits raw into its bytes, least significant first.
func decode(raw uint32) (b0, b1, b2, b3 uint8) {
	return uint8(raw), uint8(raw >> 8), uint8(raw >> 16), uint8(raw >> 24)
}

// FromRGBA unpacks a value whose lowest byte is alpha, followed by
// blue, green and red.
func FromRGBA(raw uint32) Color {
	a, b, g, r := decode(raw)
	return Color{R: r, G: g, B: b, A: a}
}

// FromABGR unpacks a value whose lowest byte is red, followed by green,
// blue and alpha. This is the hardware A8B8G8R8 word as read from memory
// on a little-endian machine.
func FromABGR(raw uint32) Color {
	r, g, b, a := decode(raw)
	return Color{R: r, G: g, B: b, A: a}
}

// EncodeRGBA is the inverse of FromRGBA.
func (c Color) EncodeRGBA() uint32 {
	return uint32(c.A) | uint32(c.B)<<8 | uint32(c.G)<<16 | uint32(c.R)<<24
}

// EncodeABGR is the inverse of FromABGR.
func (c Color) EncodeABGR() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// BlendWith composites c over bg using c's alpha. The result is opaque.
//
// Each channel is computed as (fg*a + bg*(255-a)) / 255 with integer
// truncation, so an opaque c returns c and a transparent c returns the
// color channels of bg.
func (c Color) BlendWith(bg Color) Color {
	a := uint32(c.A)
	inv := 255 - a
	return Color{
		R: uint8((uint32(c.R)*a + uint32(bg.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(bg.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(bg.B)*inv) / 255),
		A: 255,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Quantize4 returns the color a 4-bit-per-channel surface stores for c.
func (c Color) Quantize4() Color {
	return Color{R: (c.R >> 4) * 17, G: (c.G >> 4) * 17, B: (c.B >> 4) * 17, A: (c.A >> 4) * 17}
}

// Lerp interpolates between c and other; t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return other
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B), A: mix(c.A, other.A)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ToRGBA returns the channels unchanged as a color.RGBA, the form TinyGo
// display drivers take. Translucent colors are not premultiplied.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Model converts arbitrary colors to Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// Hex parses a color from a hex string.
// Supports "RGB", "RGBA", "RRGGBB" and "RRGGBBAA", with an optional
// leading '#'. Malformed input yields opaque black.
func Hex(s string) Color {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	var v [4]uint32
	v[3] = 255
	switch len(s) {
	case 3, 4:
		for i := range len(s) {
			v[i] = parseHex(s[i:i+1]) * 17
		}
	case 6, 8:
		for i := range len(s) / 2 {
			v[i] = parseHex(s[2*i : 2*i+2])
		}
	default:
		return Black
	}
	return Color{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: uint8(v[3])}
}

func parseHex(s string) uint32 {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0
		}
	}
	return val
}
