package canvas

import (
	"math"

	"github.com/gogpu/tilefb/pixel"
)

// satAdd returns a+b clamped to the int range.
func satAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// clip intersects [x, x+w) x [y, y+h) with the canvas. ok is false when
// nothing is left.
func (c *Canvas) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(satAdd(x, w), c.width), min(satAdd(y, h), c.height)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

// DrawRect fills [x, x+w) x [y, y+h), clipped to the canvas.
func (c *Canvas) DrawRect(x, y, w, h int, col pixel.Color, mode pixel.BlendMode) {
	x0, y0, x1, y1, ok := c.clip(x, y, w, h)
	if !ok {
		return
	}
	if mode == pixel.BlendNone {
		c.fillRect(x0, y0, x1, y1, col)
		return
	}
	for py := y0; py < y1; py++ {
		row := py * c.pitch
		for px := x0; px < x1; px++ {
			i := row + px
			c.store(i, mode.Apply(col, c.load(i)))
		}
	}
}

// fillRect overwrites an already clipped rectangle.
func (c *Canvas) fillRect(x0, y0, x1, y1 int, col pixel.Color) {
	v := c.format.Pack(col)
	if c.pix16 != nil {
		p := uint16(v)
		for py := y0; py < y1; py++ {
			row := c.pix16[py*c.pitch+x0 : py*c.pitch+x1]
			for i := range row {
				row[i] = p
			}
		}
		return
	}
	for py := y0; py < y1; py++ {
		fillWords(c.words[py*c.pitch+x0:py*c.pitch+x1], v)
	}
}

// hline draws the inclusive span [x0, x1] on row y, clipped.
func (c *Canvas) hline(x0, x1, y int, col pixel.Color, mode pixel.BlendMode) {
	if x1 < x0 {
		return
	}
	c.DrawRect(x0, y, satAdd(x1-x0, 1), 1, col, mode)
}
