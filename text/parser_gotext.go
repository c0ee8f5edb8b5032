package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// gotextFace implements Face using github.com/go-text/typesetting.
// font.Face caches per-instance state and is not safe for concurrent
// use, so every call holds mu.
type gotextFace struct {
	id   FaceID
	mu   sync.Mutex
	face *font.Face
	upem float64
}

func parseGoText(data []byte) (Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &gotextFace{id: NewFaceID(), face: face, upem: upem}, nil
}

func (f *gotextFace) scale(size float64) float64 {
	return size / f.upem
}

// ID implements Face.ID.
func (f *gotextFace) ID() FaceID { return f.id }

// Metrics implements Face.Metrics.
func (f *gotextFace) Metrics(size float64) Metrics {
	f.mu.Lock()
	ext, ok := f.face.FontHExtents()
	f.mu.Unlock()
	if !ok {
		return Metrics{}
	}
	s := f.scale(size)
	return Metrics{
		Ascent:  float64(ext.Ascender) * s,
		Descent: -float64(ext.Descender) * s,
		LineGap: max(float64(ext.LineGap)*s, 0),
	}
}

// GlyphIndex implements Face.GlyphIndex.
func (f *gotextFace) GlyphIndex(r rune) (GlyphID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Advance implements Face.Advance.
func (f *gotextFace) Advance(gid GlyphID, size float64) float64 {
	f.mu.Lock()
	adv := f.face.HorizontalAdvance(font.GID(gid))
	f.mu.Unlock()
	return float64(adv) * f.scale(size)
}

// Kern implements Face.Kern using the pair tables of the legacy 'kern'
// table. GPOS kerning needs a shaper and is not consulted.
func (f *gotextFace) Kern(left, right GlyphID, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, st := range f.face.Kern {
		pairs, ok := st.Data.(font.SimpleKerns)
		if !ok {
			continue
		}
		if v := pairs.KernPair(font.GID(left), font.GID(right)); v != 0 {
			return float64(v) * f.scale(size)
		}
	}
	return 0
}

// Outline implements Face.Outline.
func (f *gotextFace) Outline(gid GlyphID, size float64) (Outline, error) {
	f.mu.Lock()
	data := f.face.GlyphData(font.GID(gid))
	f.mu.Unlock()

	if data == nil {
		return Outline{}, nil
	}
	g, ok := data.(font.GlyphOutline)
	if !ok {
		return Outline{}, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	s := f.scale(size)
	out := Outline{Segments: make([]Segment, len(g.Segments))}
	for i, seg := range g.Segments {
		o := Segment{Op: fromOTOp(seg.Op)}
		for j, p := range seg.Args {
			// Font units grow up; outlines here grow down.
			o.Args[j] = Point{X: float64(p.X) * s, Y: -float64(p.Y) * s}
		}
		out.Segments[i] = o
	}
	return out, nil
}

func fromOTOp(op ot.SegmentOp) SegmentOp {
	switch op {
	case ot.SegmentOpLineTo:
		return LineTo
	case ot.SegmentOpQuadTo:
		return QuadTo
	case ot.SegmentOpCubeTo:
		return CubeTo
	default:
		return MoveTo
	}
}
