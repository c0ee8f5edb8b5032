package canvas

import (
	"image"
	"math"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/tilefb/internal/cache"
	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/text"
)

// BitmapGlyphSize is the cell size of the built-in bitmap font.
const BitmapGlyphSize = 8

// DrawBitmapText draws s with the built-in 8x8 font, each font pixel
// scaled to a scale x scale square. The first glyph's top-left corner is
// (x, y). '\n' and '\r' start a new line at x, 8*scale further down.
// Runes the font does not cover are skipped without advancing.
func (c *Canvas) DrawBitmapText(s string, col pixel.Color, scale, x, y int, mode pixel.BlendMode) {
	if scale <= 0 {
		return
	}
	step := BitmapGlyphSize * scale
	penX, penY := x, y
	for _, r := range s {
		if r == '\n' || r == '\r' {
			penX = x
			penY = satAdd(penY, step)
			continue
		}
		rows, ok := Glyph8x8(r)
		if !ok {
			continue
		}
		c.drawBitmapGlyph(rows, col, scale, penX, penY, mode)
		penX = satAdd(penX, step)
	}
}

func (c *Canvas) drawBitmapGlyph(rows [8]byte, col pixel.Color, scale, x, y int, mode pixel.BlendMode) {
	for gy, bits := range rows {
		for gx := 0; bits != 0; gx++ {
			if bits&1 != 0 {
				c.DrawRect(satAdd(x, gx*scale), satAdd(y, gy*scale), scale, scale, col, mode)
			}
			bits >>= 1
		}
	}
}

// DrawFontText lays out s with an outline font at size pixels per em and
// draws it with coverage antialiasing.
//
// The first baseline is at y plus the face's ascent; each line break
// moves down by ascent plus line gap. Kerning is applied between
// neighboring glyphs. A non-space glyph that would end past the right
// edge of the canvas starts a new line at x. Coverage scales the alpha of
// col before the pixel is combined per mode.
//
// Rasterized glyphs are cached per canvas, keyed by face.ID().
func (c *Canvas) DrawFontText(face text.Face, s string, col pixel.Color, size float64, x, y int, mode pixel.BlendMode) {
	if face == nil || size <= 0 {
		return
	}
	m := face.Metrics(size)
	lineAdvance := m.LineAdvance()
	left := float64(x)
	penX, baseline := left, float64(y)+m.Ascent

	var prev text.GlyphID
	hasPrev := false
	for _, r := range norm.NFC.String(s) {
		if r == '\n' {
			penX = left
			baseline += lineAdvance
			hasPrev = false
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		gid, ok := face.GlyphIndex(r)
		if !ok {
			hasPrev = false
			continue
		}

		kern := 0.0
		if hasPrev {
			kern = face.Kern(prev, gid, size)
		}
		adv := face.Advance(gid, size)
		if !unicode.IsSpace(r) && penX > left && penX+kern+adv > float64(c.width) {
			penX = left
			baseline += lineAdvance
		} else {
			penX += kern
		}

		if !unicode.IsSpace(r) {
			c.drawGlyph(face, gid, size, penX, baseline, col, mode)
		}
		penX += adv
		prev, hasPrev = gid, true
	}
}

// glyphCacheSize bounds the rasterized masks a canvas keeps.
const glyphCacheSize = 512

// subpixel is the number of horizontal and vertical glyph positions per
// pixel that get their own cached mask.
const subpixel = 64

// glyphKey identifies a mask rasterized with its origin at
// (fx/subpixel, fy/subpixel).
type glyphKey struct {
	face   text.FaceID
	gid    text.GlyphID
	size   float64
	fx, fy uint8
}

// GlyphCacheStats reports on the canvas glyph mask cache.
type GlyphCacheStats struct {
	Masks     int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// GlyphCacheStats returns the glyph cache counters. They are zero until
// the first DrawFontText.
func (c *Canvas) GlyphCacheStats() GlyphCacheStats {
	if c.glyphs == nil {
		return GlyphCacheStats{}
	}
	s := c.glyphs.Stats()
	return GlyphCacheStats{Masks: c.glyphs.Len(), Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions}
}

// splitSubpixel returns the integer pixel and the quantized fraction of v.
func splitSubpixel(v float64) (int, uint8) {
	i := math.Floor(v)
	f := math.Round((v - i) * subpixel)
	if f >= subpixel {
		return int(i) + 1, 0
	}
	return int(i), uint8(f)
}

func (c *Canvas) drawGlyph(face text.Face, gid text.GlyphID, size, x, y float64, col pixel.Color, mode pixel.BlendMode) {
	ix, fx := splitSubpixel(x)
	iy, fy := splitSubpixel(y)
	key := glyphKey{face: face.ID(), gid: gid, size: size, fx: fx, fy: fy}

	if c.glyphs == nil {
		c.glyphs = cache.New[glyphKey, *image.Alpha](glyphCacheSize)
	}
	mask, ok := c.glyphs.Get(key)
	if !ok {
		o, err := face.Outline(gid, size)
		if err != nil || o.Empty() {
			return
		}
		// Skip the rasterizer for glyphs entirely off the canvas.
		if !o.Bounds(x, y).Overlaps(c.Bounds()) {
			return
		}
		mask = text.Rasterize(o, float64(fx)/subpixel, float64(fy)/subpixel)
		c.glyphs.Put(key, mask)
	}
	if mask == nil {
		return
	}
	placed := *mask
	placed.Rect = mask.Rect.Add(image.Pt(ix, iy))
	c.drawMask(&placed, col, mode)
}

// drawMask draws col through a coverage mask positioned in canvas
// coordinates. Zero coverage and off-canvas pixels are skipped.
func (c *Canvas) drawMask(mask *image.Alpha, col pixel.Color, mode pixel.BlendMode) {
	r := mask.Rect.Intersect(c.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			a := mask.Pix[mask.PixOffset(px, py)]
			if a == 0 {
				continue
			}
			c.DrawPixel(px, py, col.WithAlpha(uint8(uint32(col.A)*uint32(a)/255)), mode)
		}
	}
}

// MeasureBitmapText returns the size in pixels of s drawn with
// DrawBitmapText at scale.
func MeasureBitmapText(s string, scale int) (w, h int) {
	if s == "" || scale <= 0 {
		return 0, 0
	}
	line, lines := 0, 1
	for _, r := range s {
		if r == '\n' || r == '\r' {
			w = max(w, line)
			line = 0
			lines++
			continue
		}
		if _, ok := Glyph8x8(r); ok {
			line++
		}
	}
	w = max(w, line)
	return w * BitmapGlyphSize * scale, lines * BitmapGlyphSize * scale
}
