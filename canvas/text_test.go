package canvas

import (
	"bytes"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/text"
)

func TestDrawBitmapText_Newline(t *testing.T) {
	const x, y, s = 3, 5, 2

	got := New(64, 64, pixel.FormatRGBA8888)
	got.Clear(pixel.White)
	got.DrawBitmapText("A\nB", pixel.Black, s, x, y, pixel.BlendNone)

	want := New(64, 64, pixel.FormatRGBA8888)
	want.Clear(pixel.White)
	want.DrawBitmapText("A", pixel.Black, s, x, y, pixel.BlendNone)
	want.DrawBitmapText("B", pixel.Black, s, x, y+8*s, pixel.BlendNone)

	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		t.Error(`"A\nB" does not place B at (x, y+8*scale)`)
	}

	cr := New(64, 64, pixel.FormatRGBA8888)
	cr.Clear(pixel.White)
	cr.DrawBitmapText("A\rB", pixel.Black, s, x, y, pixel.BlendNone)
	if !bytes.Equal(cr.Bytes(), want.Bytes()) {
		t.Error(`"A\rB" should behave like "A\nB"`)
	}
}

func TestDrawBitmapText_GlyphBits(t *testing.T) {
	c := New(8, 8, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawBitmapText("A", pixel.Black, 1, 0, 0, pixel.BlendNone)

	rows, _ := Glyph8x8('A')
	for y, bits := range rows {
		for x := range 8 {
			want := pixel.White
			if bits&(1<<x) != 0 {
				want = pixel.Black
			}
			if got := c.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestDrawBitmapText_Scale(t *testing.T) {
	c := New(16, 16, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawBitmapText("_", pixel.Black, 2, 0, 0, pixel.BlendNone)
	// '_' is the full bottom row, scaled to rows 14 and 15.
	for x := range 16 {
		if c.Pixel(x, 14) != pixel.Black || c.Pixel(x, 15) != pixel.Black {
			t.Fatalf("column %d of the underscore is not filled", x)
		}
	}
	if got := countColor(c, pixel.Black); got != 32 {
		t.Errorf("black pixels = %d, want 32", got)
	}
}

func TestDrawBitmapText_UnmappedSkipped(t *testing.T) {
	a := New(40, 8, pixel.FormatRGBA8888)
	a.DrawBitmapText("AéB", pixel.Red, 1, 0, 0, pixel.BlendNone)
	b := New(40, 8, pixel.FormatRGBA8888)
	b.DrawBitmapText("AB", pixel.Red, 1, 0, 0, pixel.BlendNone)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("unmapped rune should be skipped without advancing")
	}
}

func TestDrawBitmapText_Clipped(t *testing.T) {
	c := New(8, 8, pixel.FormatRGBA8888)
	c.DrawBitmapText("WWWW", pixel.Red, 3, -5, -5, pixel.BlendNone)
	c.DrawBitmapText("x", pixel.Red, 0, 0, 0, pixel.BlendNone)
}

func TestMeasureBitmapText(t *testing.T) {
	w, h := MeasureBitmapText("ab\nabcd", 2)
	if w != 64 || h != 32 {
		t.Errorf("Measure = %dx%d, want 64x32", w, h)
	}
	if w, h := MeasureBitmapText("", 1); w != 0 || h != 0 {
		t.Errorf("Measure(empty) = %dx%d", w, h)
	}
}

func loadFace(t *testing.T) text.Face {
	t.Helper()
	f, err := text.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// inkRows returns the first and last rows holding a non-white pixel.
func inkRows(c *Canvas) (first, last int) {
	first, last = -1, -1
	for y := range c.Height() {
		for x := range c.Width() {
			if c.Pixel(x, y) != pixel.White {
				if first < 0 {
					first = y
				}
				last = y
				break
			}
		}
	}
	return first, last
}

func TestDrawFontText_Baseline(t *testing.T) {
	face := loadFace(t)
	const size = 32.0
	m := face.Metrics(size)

	c := New(200, 100, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawFontText(face, "H", pixel.Black, size, 10, 20, pixel.BlendDestination)

	first, last := inkRows(c)
	if first < 0 {
		t.Fatal("nothing drawn")
	}
	baseline := 20 + int(m.Ascent)
	if last > baseline+1 || last < baseline-2 {
		t.Errorf("last ink row = %d, want near baseline %d", last, baseline)
	}
	if first < 20 {
		t.Errorf("first ink row = %d, above the text origin", first)
	}
}

func TestDrawFontText_Antialiased(t *testing.T) {
	face := loadFace(t)
	c := New(100, 60, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawFontText(face, "O", pixel.Black, 40, 5, 5, pixel.BlendDestination)

	solid, partial := 0, 0
	for y := range c.Height() {
		for x := range c.Width() {
			switch p := c.Pixel(x, y); {
			case p == pixel.Black:
				solid++
			case p != pixel.White:
				partial++
			}
		}
	}
	if solid == 0 || partial == 0 {
		t.Errorf("solid = %d, partial = %d; want both", solid, partial)
	}
}

func TestDrawFontText_Newline(t *testing.T) {
	face := loadFace(t)
	const size = 20.0
	adv := face.Metrics(size).LineAdvance()

	one := New(80, 120, pixel.FormatRGBA8888)
	one.Clear(pixel.White)
	one.DrawFontText(face, "T", pixel.Black, size, 0, 0, pixel.BlendDestination)
	f1, _ := inkRows(one)

	two := New(80, 120, pixel.FormatRGBA8888)
	two.Clear(pixel.White)
	two.DrawFontText(face, "\nT", pixel.Black, size, 0, 0, pixel.BlendDestination)
	f2, _ := inkRows(two)

	if d := float64(f2 - f1); d < adv-1 || d > adv+1 {
		t.Errorf("second line starts %v rows lower, want about %v", d, adv)
	}
}

func TestDrawFontText_Wraps(t *testing.T) {
	face := loadFace(t)
	c := New(60, 200, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawFontText(face, "WWWWWWWW", pixel.Black, 20, 0, 0, pixel.BlendDestination)

	_, last := inkRows(c)
	if last < int(face.Metrics(20).LineAdvance())+5 {
		t.Errorf("last ink row = %d; text did not wrap", last)
	}
	// Nothing is drawn past the right edge because glyphs wrap first.
	for y := range c.Height() {
		if c.Pixel(59, y) == pixel.Black {
			t.Fatalf("solid ink in the last column at row %d", y)
		}
	}
}

func TestDrawFontText_NoFace(t *testing.T) {
	c := New(10, 10, pixel.FormatRGBA8888)
	c.Clear(pixel.White)
	c.DrawFontText(nil, "x", pixel.Black, 10, 0, 0, pixel.BlendNone)
	c.DrawFontText(loadFace(t), "x", pixel.Black, 0, 0, 0, pixel.BlendNone)
	if _, last := inkRows(c); last >= 0 {
		t.Error("no-op calls drew something")
	}
}

func TestDrawTinyText_MatchesBitmapText(t *testing.T) {
	a := New(40, 16, pixel.FormatRGBA8888)
	a.Clear(pixel.White)
	a.DrawTinyText(Font8x8, "Hg", pixel.Black, 2, 3+6, pixel.BlendNone)

	b := New(40, 16, pixel.FormatRGBA8888)
	b.Clear(pixel.White)
	b.DrawBitmapText("Hg", pixel.Black, 1, 2, 3, pixel.BlendNone)

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("tinyfont rendering of Font8x8 differs from DrawBitmapText")
	}
}

func TestDrawTinyText_FarOffCanvas(t *testing.T) {
	c := New(64, 16, pixel.FormatRGBA8888)
	for _, p := range [][2]int{
		{65536 + 8, 8},
		{8, 65536 + 8},
		{-65536 + 8, 8},
		{math.MaxInt, math.MinInt},
		{64, 8},
	} {
		c.DrawTinyText(Font8x8, "H", pixel.White, p[0], p[1], pixel.BlendNone)
	}
	for _, b := range c.Bytes() {
		if b != 0 {
			t.Fatal("text placed off the canvas was drawn")
		}
	}
}

func TestDisplayer(t *testing.T) {
	c := New(4, 3, pixel.FormatRGBA8888)
	d := c.Displayer(pixel.BlendNone)
	if w, h := d.Size(); w != 4 || h != 3 {
		t.Errorf("Size = %d,%d", w, h)
	}
	d.SetPixel(1, 1, pixel.Red.ToRGBA())
	d.SetPixel(-1, 9, pixel.Red.ToRGBA())
	if c.Pixel(1, 1) != pixel.Red {
		t.Error("SetPixel did not draw")
	}
	if err := d.Display(); err != nil {
		t.Errorf("Display = %v", err)
	}
}

func TestDrawFontText_GlyphCache(t *testing.T) {
	face := loadFace(t)
	c := New(160, 40, pixel.FormatRGBA8888)

	c.Clear(pixel.White)
	c.DrawFontText(face, "Hello", pixel.Black, 18, 3, 4, pixel.BlendDestination)
	first := bytes.Clone(c.Bytes())
	misses := c.GlyphCacheStats().Misses
	if misses == 0 {
		t.Fatal("first draw recorded no misses")
	}

	c.Clear(pixel.White)
	c.DrawFontText(face, "Hello", pixel.Black, 18, 3, 4, pixel.BlendDestination)
	if !bytes.Equal(first, c.Bytes()) {
		t.Error("cached redraw differs from first draw")
	}
	s := c.GlyphCacheStats()
	if s.Misses != misses || s.Hits < 5 || s.Masks == 0 {
		t.Errorf("second draw: Stats = %+v, first draw misses %d", s, misses)
	}
}

// taggedFace is a Face value that cannot be used as a map key.
type taggedFace struct {
	text.Face
	tags []string
}

func TestDrawFontText_NonComparableFace(t *testing.T) {
	face := loadFace(t)
	a := New(120, 40, pixel.FormatRGBA8888)
	b := New(120, 40, pixel.FormatRGBA8888)
	a.Clear(pixel.White)
	b.Clear(pixel.White)
	a.DrawFontText(face, "Go", pixel.Black, 20, 2, 2, pixel.BlendDestination)
	b.DrawFontText(taggedFace{Face: face, tags: []string{"ui"}}, "Go", pixel.Black, 20, 2, 2, pixel.BlendDestination)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("wrapped face draws differently")
	}
}

func TestDrawFontText_IntegerShift(t *testing.T) {
	face := loadFace(t)
	a := New(80, 60, pixel.FormatRGBA8888)
	b := New(80, 60, pixel.FormatRGBA8888)
	a.Clear(pixel.White)
	b.Clear(pixel.White)
	a.DrawFontText(face, "g", pixel.Black, 24, 10, 10, pixel.BlendDestination)
	b.DrawFontText(face, "g", pixel.Black, 24, 13, 15, pixel.BlendDestination)

	for y := range 40 {
		for x := range 60 {
			if pa, pb := a.Pixel(x, y), b.Pixel(x+3, y+5); pa != pb {
				t.Fatalf("a(%d,%d) = %v, b shifted = %v", x, y, pa, pb)
			}
		}
	}
}

func TestSplitSubpixel(t *testing.T) {
	tests := []struct {
		v    float64
		i    int
		frac uint8
	}{
		{0, 0, 0},
		{2.5, 2, 32},
		{2.999, 3, 0},
		{-0.5, -1, 32},
		{7.25, 7, 16},
	}
	for _, tt := range tests {
		if i, f := splitSubpixel(tt.v); i != tt.i || f != tt.frac {
			t.Errorf("splitSubpixel(%v) = %d, %d; want %d, %d", tt.v, i, f, tt.i, tt.frac)
		}
	}
}
