package canvas

import (
	"errors"
	"fmt"
	"image"

	"honnef.co/go/safeish"

	"github.com/gogpu/tilefb/internal/cache"
	"github.com/gogpu/tilefb/pixel"
)

// ErrBadGeometry is returned by NewPadded for an impossible buffer shape.
var ErrBadGeometry = errors.New("canvas: bad geometry")

// Canvas is a linear pixel buffer plus drawing operations.
//
// The buffer is stride bytes wide and rows tall, which may exceed the
// logical width and height; the extra bytes are padding that Clear also
// fills. Pixel words are stored in host byte order, which matches the
// little-endian memory order the display engine reads.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width  int
	height int
	stride int // bytes
	rows   int
	pitch  int // stride in pixels
	format pixel.Format

	words    []uint32
	pix16    []uint16
	buf      []byte
	released bool

	glyphs *cache.LRU[glyphKey, *image.Alpha] // created on first DrawFontText
}

// New creates a canvas with the tightest word-aligned stride.
func New(width, height int, format pixel.Format) *Canvas {
	bpp := format.BytesPerPixel()
	stride := (max(width, 0)*bpp + 3) &^ 3
	c, err := NewPadded(width, height, stride, height, format)
	if err != nil {
		panic(err)
	}
	return c
}

// NewPadded creates a canvas whose buffer is stride bytes by rows rows,
// for surfaces that need alignment beyond the logical size.
func NewPadded(width, height, stride, rows int, format pixel.Format) (*Canvas, error) {
	bpp := format.BytesPerPixel()
	switch {
	case !format.Valid():
		return nil, fmt.Errorf("%w: unknown format %v", ErrBadGeometry, format)
	case width < 0 || height < 0:
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrBadGeometry, width, height)
	case stride%4 != 0:
		return nil, fmt.Errorf("%w: stride %d is not a multiple of 4", ErrBadGeometry, stride)
	case stride < width*bpp:
		return nil, fmt.Errorf("%w: stride %d is smaller than %d pixels of %d bytes", ErrBadGeometry, stride, width, bpp)
	case rows < height:
		return nil, fmt.Errorf("%w: %d rows cannot hold height %d", ErrBadGeometry, rows, height)
	}

	c := &Canvas{
		width:  width,
		height: height,
		stride: stride,
		rows:   rows,
		pitch:  stride / bpp,
		format: format,
		words:  make([]uint32, stride/4*rows),
	}
	c.buf = safeish.SliceCast[[]byte](c.words)
	if format == pixel.FormatRGBA4444 {
		c.pix16 = safeish.SliceCast[[]uint16](c.words)
	}
	return c, nil
}

// Width returns the logical width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the logical height in pixels.
func (c *Canvas) Height() int { return c.height }

// Stride returns the row pitch in bytes.
func (c *Canvas) Stride() int { return c.stride }

// Rows returns the number of rows in the buffer, padding included.
func (c *Canvas) Rows() int { return c.rows }

// Format returns the pixel format.
func (c *Canvas) Format() pixel.Format { return c.format }

// Bytes returns the raw buffer, stride*rows bytes. The slice aliases the
// canvas and is nil after Release.
func (c *Canvas) Bytes() []byte { return c.buf }

// Bounds returns the logical rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Release drops the buffer. Drawing on a released canvas panics.
// Release is safe to call more than once.
func (c *Canvas) Release() {
	c.words, c.pix16, c.buf = nil, nil, nil
	c.glyphs = nil
	c.released = true
}

// Released reports whether Release was called.
func (c *Canvas) Released() bool {
	return c.released
}

// Clear sets every pixel of the buffer, padding included, to col.
func (c *Canvas) Clear(col pixel.Color) {
	w := c.format.Pack(col)
	if c.format == pixel.FormatRGBA4444 {
		w |= w << 16
	}
	fillWords(c.words, w)
}

// fillWords sets every element of s to v, doubling the filled prefix.
func fillWords(s []uint32, v uint32) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for n := 1; n < len(s); n *= 2 {
		copy(s[n:], s[:n])
	}
}

func (c *Canvas) load(i int) pixel.Color {
	if c.pix16 != nil {
		return c.format.Unpack(uint32(c.pix16[i]))
	}
	return pixel.FromABGR(c.words[i])
}

func (c *Canvas) store(i int, col pixel.Color) {
	if c.pix16 != nil {
		c.pix16[i] = uint16(c.format.Pack(col))
		return
	}
	c.words[i] = col.EncodeABGR()
}

// SetPixel overwrites the pixel at (x, y). It does not clip.
func (c *Canvas) SetPixel(x, y int, col pixel.Color) {
	c.store(y*c.pitch+x, col)
}

// DrawPixel writes col at (x, y) combined per mode. It does not clip.
func (c *Canvas) DrawPixel(x, y int, col pixel.Color, mode pixel.BlendMode) {
	i := y*c.pitch + x
	if mode == pixel.BlendNone {
		c.store(i, col)
		return
	}
	c.store(i, mode.Apply(col, c.load(i)))
}

// DrawPixelBlended draws col over the existing pixel at (x, y). It does
// not clip.
func (c *Canvas) DrawPixelBlended(x, y int, col pixel.Color) {
	i := y*c.pitch + x
	c.store(i, col.BlendWith(c.load(i)))
}

// Pixel returns the pixel at (x, y), or Transparent outside the canvas.
func (c *Canvas) Pixel(x, y int) pixel.Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return pixel.Transparent
	}
	return c.load(y*c.pitch + x)
}
