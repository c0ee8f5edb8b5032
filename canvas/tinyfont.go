package canvas

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/gogpu/tilefb/pixel"
)

// Displayer adapts a Canvas to drivers.Displayer so TinyGo drawing code
// (tinyfont, tinydraw) can target it. SetPixel clips and combines per
// the adapter's blend mode. Display is a no-op: presenting is the
// compositor's job.
type Displayer struct {
	c    *Canvas
	mode pixel.BlendMode
}

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer returns an adapter drawing with mode.
func (c *Canvas) Displayer(mode pixel.BlendMode) *Displayer {
	return &Displayer{c: c, mode: mode}
}

// Size implements drivers.Displayer.
func (d *Displayer) Size() (x, y int16) {
	return int16(min(d.c.width, 0x7fff)), int16(min(d.c.height, 0x7fff))
}

// SetPixel implements drivers.Displayer. The color is taken as
// non-premultiplied.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	px, py := int(x), int(y)
	if px < 0 || py < 0 || px >= d.c.width || py >= d.c.height {
		return
	}
	d.c.DrawPixel(px, py, pixel.RGBA(c.R, c.G, c.B, c.A), d.mode)
}

// Display implements drivers.Displayer.
func (d *Displayer) Display() error {
	return nil
}

// DrawTinyText draws one line of s with any tinyfont font. (x, y) is the
// start of the baseline, as in tinyfont.WriteLine. tinyfont works in
// int16 coordinates; an origin outside that range, or right of the
// canvas, draws nothing.
func (c *Canvas) DrawTinyText(font tinyfont.Fonter, s string, col pixel.Color, x, y int, mode pixel.BlendMode) {
	if x < math.MinInt16 || x > math.MaxInt16 || y < math.MinInt16 || y > math.MaxInt16 || x >= c.width {
		return
	}
	tinyfont.WriteLine(c.Displayer(mode), font, int16(x), int16(y), s, col.ToRGBA())
}

// Font8x8 is the built-in bitmap font as a tinyfont.Fonter. The glyph
// baseline is the seventh row, so the last row hangs below it. It is
// safe for concurrent use.
var Font8x8 tinyfont.Fonter = font8x8Fonter{}

type font8x8Fonter struct{}

func (font8x8Fonter) GetGlyph(r rune) tinyfont.Glypher { return glyph8x8(r) }
func (font8x8Fonter) GetYAdvance() uint8               { return BitmapGlyphSize }

type glyph8x8 rune

func (g glyph8x8) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	rows, ok := Glyph8x8(rune(g))
	if !ok {
		return
	}
	for row, bits := range rows {
		for col := int16(0); bits != 0; col++ {
			if bits&1 != 0 {
				display.SetPixel(x+col, y-6+int16(row), c)
			}
			bits >>= 1
		}
	}
}

func (g glyph8x8) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     rune(g),
		Width:    BitmapGlyphSize,
		Height:   BitmapGlyphSize,
		XAdvance: BitmapGlyphSize,
		XOffset:  0,
		YOffset:  -6,
	}
}
