package canvas

import (
	"math"

	"github.com/gogpu/tilefb/pixel"
)

// maxRadius bounds radii so that r*r stays well inside int64.
const maxRadius = 1 << 30

// span returns the half-width of row dy of a circle of radius r, using
// the midpoint criterion x*x + dy*dy <= r*r + r.
func span(r, dy int) int {
	n := r*r + r - dy*dy
	if n < 0 {
		return -1
	}
	s := int(math.Sqrt(float64(n)))
	for s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}

// rowRange returns the canvas rows a circle at cy with radius r touches.
func (c *Canvas) rowRange(cy, r int) (y0, y1 int) {
	return max(satAdd(cy, -r), 0), min(satAdd(cy, r), c.height-1)
}

// DrawCircleFilled fills the disc of radius r centered on (cx, cy).
// Each covered pixel is written once; pixels off the canvas are skipped.
func (c *Canvas) DrawCircleFilled(cx, cy, r int, col pixel.Color, mode pixel.BlendMode) {
	if r < 0 {
		return
	}
	r = min(r, maxRadius)
	y0, y1 := c.rowRange(cy, r)
	for y := y0; y <= y1; y++ {
		xo := span(r, y-cy)
		c.hline(satAdd(cx, -xo), satAdd(cx, xo), y, col, mode)
	}
}

// DrawCircleOutline draws a ring of the given thickness whose outer edge
// has radius r. A thickness that reaches the center fills the disc.
func (c *Canvas) DrawCircleOutline(cx, cy, r, thickness int, col pixel.Color, mode pixel.BlendMode) {
	if r < 0 {
		return
	}
	r = min(r, maxRadius)
	thickness = max(thickness, 1)
	ri := r - thickness
	if ri < 0 {
		c.DrawCircleFilled(cx, cy, r, col, mode)
		return
	}

	y0, y1 := c.rowRange(cy, r)
	for y := y0; y <= y1; y++ {
		dy := y - cy
		xo := span(r, dy)
		if dy < -ri || dy > ri {
			c.hline(satAdd(cx, -xo), satAdd(cx, xo), y, col, mode)
			continue
		}
		xi := min(span(ri, dy), xo-1)
		c.hline(satAdd(cx, -xo), satAdd(cx, -xi-1), y, col, mode)
		c.hline(satAdd(cx, xi+1), satAdd(cx, xo), y, col, mode)
	}
}
