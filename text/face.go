package text

import (
	"image"
	"math"
	"sync/atomic"
)

// GlyphID identifies a glyph inside one font.
type GlyphID uint32

// Metrics holds the vertical metrics of a face at one size, in pixels.
// Descent is positive below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// LineAdvance returns the distance between two baselines.
func (m Metrics) LineAdvance() float64 {
	return m.Ascent + m.LineGap
}

// FaceID identifies one Face. Zero is never assigned.
type FaceID uint64

var lastFaceID atomic.Uint64

// NewFaceID returns an ID no other call has returned. Face
// implementations outside this package take their ID from here.
func NewFaceID() FaceID {
	return FaceID(lastFaceID.Add(1))
}

// Face is a parsed outline font.
//
// Implementations are safe for concurrent use.
type Face interface {
	// ID identifies the face for the lifetime of the process. Caches
	// key rasterized glyphs on it, so two faces must never share one.
	ID() FaceID

	// Metrics returns the vertical metrics at size pixels per em.
	Metrics(size float64) Metrics

	// GlyphIndex maps r to a glyph. ok is false when the font has no
	// glyph for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Advance returns the horizontal advance of gid in pixels.
	Advance(gid GlyphID, size float64) float64

	// Kern returns the horizontal adjustment between left and right in
	// pixels; negative values bring the glyphs closer.
	Kern(left, right GlyphID, size float64) float64

	// Outline returns the glyph path in pixels, relative to the pen
	// position on the baseline, with y increasing down.
	Outline(gid GlyphID, size float64) (Outline, error)
}

// SegmentOp is a path operator.
type SegmentOp uint8

// Path operators.
const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Segment is one path command. Args holds one point for MoveTo and
// LineTo, two for QuadTo and three for CubeTo.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

func (s Segment) points() []Point {
	switch s.Op {
	case QuadTo:
		return s.Args[:2]
	case CubeTo:
		return s.Args[:3]
	default:
		return s.Args[:1]
	}
}

// Outline is a glyph path.
type Outline struct {
	Segments []Segment
}

// Empty reports whether the outline draws nothing.
func (o Outline) Empty() bool {
	return len(o.Segments) == 0
}

// Bounds returns the integer rectangle covering every point of the
// outline once translated by (x, y). Control points are included, so the
// result may be slightly larger than the ink.
func (o Outline) Bounds(x, y float64) image.Rectangle {
	if o.Empty() {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range o.Segments {
		for _, p := range s.points() {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return image.Rect(
		int(math.Floor(minX+x)), int(math.Floor(minY+y)),
		int(math.Ceil(maxX+x)), int(math.Ceil(maxY+y)),
	)
}
