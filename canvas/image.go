package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/tilefb/pixel"
)

var _ draw.Image = (*Canvas)(nil)

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return pixel.Model
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.Pixel(x, y)
}

// Set implements the draw.Image interface. Points off the canvas are
// ignored.
func (c *Canvas) Set(x, y int, col color.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.SetPixel(x, y, pixel.FromColor(col))
}

// ToImage copies the logical area into a new *image.NRGBA.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(c.Bounds())
	for y := range c.height {
		row := img.Pix[y*img.Stride:]
		for x := range c.width {
			p := c.load(y*c.pitch + x)
			i := x * 4
			row[i+0] = p.R
			row[i+1] = p.G
			row[i+2] = p.B
			row[i+3] = p.A
		}
	}
	return img
}
