package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageFace implements Face using golang.org/x/image/font/sfnt.
// sfnt.Font is safe for concurrent use as long as every goroutine brings
// its own Buffer, which the pool provides.
type ximageFace struct {
	id   FaceID
	font *opentype.Font
	bufs sync.Pool
}

func parseXImage(data []byte) (Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face := &ximageFace{id: NewFaceID(), font: f}
	face.bufs.New = func() any { return new(sfnt.Buffer) }
	return face, nil
}

func (f *ximageFace) buffer() *sfnt.Buffer {
	return f.bufs.Get().(*sfnt.Buffer)
}

func (f *ximageFace) release(b *sfnt.Buffer) {
	f.bufs.Put(b)
}

// ID implements Face.ID.
func (f *ximageFace) ID() FaceID { return f.id }

// Metrics implements Face.Metrics.
func (f *ximageFace) Metrics(size float64) Metrics {
	buf := f.buffer()
	defer f.release(buf)

	m, err := f.font.Metrics(buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: max(fixedToFloat64(m.Height)-ascent-descent, 0),
	}
}

// GlyphIndex implements Face.GlyphIndex.
func (f *ximageFace) GlyphIndex(r rune) (GlyphID, bool) {
	buf := f.buffer()
	defer f.release(buf)

	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// Advance implements Face.Advance.
func (f *ximageFace) Advance(gid GlyphID, size float64) float64 {
	buf := f.buffer()
	defer f.release(buf)

	adv, err := f.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv)
}

// Kern implements Face.Kern. Fonts without a kern table return 0.
func (f *ximageFace) Kern(left, right GlyphID, size float64) float64 {
	buf := f.buffer()
	defer f.release(buf)

	k, err := f.font.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(k)
}

// Outline implements Face.Outline.
func (f *ximageFace) Outline(gid GlyphID, size float64) (Outline, error) {
	buf := f.buffer()
	defer f.release(buf)

	segs, err := f.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), toFixed(size), nil)
	if err != nil {
		return Outline{}, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	out := Outline{Segments: make([]Segment, len(segs))}
	for i, s := range segs {
		seg := Segment{Op: SegmentOp(s.Op)}
		for j := range s.Args {
			seg.Args[j] = Point{X: fixedToFloat64(s.Args[j].X), Y: fixedToFloat64(s.Args[j].Y)}
		}
		out.Segments[i] = seg
	}
	return out, nil
}

func toFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
