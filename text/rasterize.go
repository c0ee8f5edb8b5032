package text

import (
	"image"

	"golang.org/x/image/vector"
)

// Rasterize fills o, placed with its origin at (x, y), into a coverage
// mask. The mask's Rect is expressed in the same coordinates as (x, y),
// so mask.AlphaAt(px, py) is the coverage of pixel (px, py). Empty
// outlines return nil.
func Rasterize(o Outline, x, y float64) *image.Alpha {
	b := o.Bounds(x, y)
	if b.Empty() {
		return nil
	}

	w, h := b.Dx(), b.Dy()
	dx := float32(x - float64(b.Min.X))
	dy := float32(y - float64(b.Min.Y))

	z := vector.NewRasterizer(w, h)
	open := false
	for _, s := range o.Segments {
		a := s.Args
		switch s.Op {
		case MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(float32(a[0].X)+dx, float32(a[0].Y)+dy)
			open = true
		case LineTo:
			z.LineTo(float32(a[0].X)+dx, float32(a[0].Y)+dy)
		case QuadTo:
			z.QuadTo(
				float32(a[0].X)+dx, float32(a[0].Y)+dy,
				float32(a[1].X)+dx, float32(a[1].Y)+dy,
			)
		case CubeTo:
			z.CubeTo(
				float32(a[0].X)+dx, float32(a[0].Y)+dy,
				float32(a[1].X)+dx, float32(a[1].Y)+dy,
				float32(a[2].X)+dx, float32(a[2].Y)+dy,
			)
		}
	}
	if open {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = b
	return mask
}
