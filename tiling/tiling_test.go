package tiling

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

func randomBuffer(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	return b
}

func TestGOBCells(t *testing.T) {
	// Cells 0..15 cover the left half of the GOB in 2x2 groups; cell 16
	// starts the right half.
	want := map[int]cell{
		0: {0, 0}, 1: {0, 1}, 2: {16, 0}, 3: {16, 1},
		4: {0, 2}, 5: {0, 3}, 6: {16, 2}, 7: {16, 3},
		8: {0, 4}, 12: {0, 6}, 15: {16, 7},
		16: {32, 0}, 18: {48, 0}, 31: {48, 7},
	}
	for i, c := range want {
		if gobCells[i] != c {
			t.Errorf("cell %d = %+v, want %+v", i, gobCells[i], c)
		}
	}

	// Every 16-byte cell of the GOB is covered exactly once.
	seen := map[cell]bool{}
	for _, c := range gobCells {
		if c.x%cellSize != 0 || c.x >= GOBWidth || c.y >= GOBHeight {
			t.Fatalf("cell %+v outside GOB", c)
		}
		if seen[c] {
			t.Fatalf("cell %+v repeated", c)
		}
		seen[c] = true
	}
	if len(seen) != cellsPerGOB {
		t.Errorf("covered %d cells, want %d", len(seen), cellsPerGOB)
	}
}

func TestLayout_Geometry(t *testing.T) {
	tests := []struct {
		name                  string
		l                     Layout
		wb, hb, aligned, size int
	}{
		{"1280x720 16gob", Layout{Stride: 5120, Height: 720, Block: SixteenGOBs}, 80, 6, 720, 80 * 6 * 16 * 512},
		{"256x256 2gob", Layout{Stride: 1024, Height: 256, Block: TwoGOBs}, 16, 16, 256, 16 * 16 * 2 * 512},
		{"partial", Layout{Stride: 64, Height: 13, Block: TwoGOBs}, 1, 1, 16, 1024},
		{"one row", Layout{Stride: 128, Height: 1, Block: OneGOB}, 2, 1, 8, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.l.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got := tt.l.WidthBlocks(); got != tt.wb {
				t.Errorf("WidthBlocks = %d, want %d", got, tt.wb)
			}
			if got := tt.l.HeightBlocks(); got != tt.hb {
				t.Errorf("HeightBlocks = %d, want %d", got, tt.hb)
			}
			if got := tt.l.AlignedHeight(); got != tt.aligned {
				t.Errorf("AlignedHeight = %d, want %d", got, tt.aligned)
			}
			if got := tt.l.TiledSize(); got != tt.size {
				t.Errorf("TiledSize = %d, want %d", got, tt.size)
			}
		})
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		l     Layout
		field string
	}{
		{Layout{Stride: 0, Height: 8}, "Stride"},
		{Layout{Stride: 100, Height: 8}, "Stride"},
		{Layout{Stride: 64, Height: 0}, "Height"},
		{Layout{Stride: 64, Height: 8, Block: 6}, "Block"},
	}
	for _, tt := range tests {
		err := tt.l.Validate()
		var le *LayoutError
		if !errors.As(err, &le) {
			t.Errorf("Validate(%+v) = %v, want *LayoutError", tt.l, err)
			continue
		}
		if le.Field != tt.field {
			t.Errorf("Validate(%+v) field = %s, want %s", tt.l, le.Field, tt.field)
		}
	}
}

func TestPitchAndAlign(t *testing.T) {
	if got := Pitch(1280, 4); got != 5120 {
		t.Errorf("Pitch(1280, 4) = %d", got)
	}
	if got := Pitch(100, 4); got != 448 {
		t.Errorf("Pitch(100, 4) = %d, want 448", got)
	}
	if got := Pitch(33, 2); got != 128 {
		t.Errorf("Pitch(33, 2) = %d, want 128", got)
	}
	if got := AlignUp(uint32(9), 8); got != 16 {
		t.Errorf("AlignUp(9, 8) = %d", got)
	}
	if got := AlignUp(16, 8); got != 16 {
		t.Errorf("AlignUp(16, 8) = %d", got)
	}
}

func TestBlockHeight(t *testing.T) {
	for b := OneGOB; b <= ThirtyTwoGOBs; b++ {
		if b.Rows() != 8*b.GOBs() {
			t.Errorf("%v: Rows = %d, GOBs = %d", b, b.Rows(), b.GOBs())
		}
		got, ok := BlockHeightFromGOBs(b.GOBs())
		if !ok || got != b {
			t.Errorf("BlockHeightFromGOBs(%d) = %v, %v", b.GOBs(), got, ok)
		}
	}
	if _, ok := BlockHeightFromGOBs(3); ok {
		t.Error("BlockHeightFromGOBs(3) should fail")
	}
	if got := FourGOBs.String(); got != "4GOB" {
		t.Errorf("String = %q", got)
	}
}

func TestTileUntile_RoundTrip(t *testing.T) {
	for b := OneGOB; b <= ThirtyTwoGOBs; b++ {
		for _, h := range []int{1, 7, 8, 13, 64, 100} {
			l := Layout{Stride: 192, Height: h, Block: b}
			src := randomBuffer(l.LinearSize(), uint64(h)<<8|uint64(b))
			tiled := make([]byte, l.TiledSize())
			if err := Tile(tiled, src, l); err != nil {
				t.Fatalf("Tile(%v, h=%d): %v", b, h, err)
			}
			back := make([]byte, l.LinearSize())
			if err := Untile(back, tiled, l); err != nil {
				t.Fatalf("Untile(%v, h=%d): %v", b, h, err)
			}
			logical := l.Stride * h
			if !bytes.Equal(back[:logical], src[:logical]) {
				t.Errorf("round trip mismatch for block %v height %d", b, h)
			}
		}
	}
}

func TestTile_Deterministic(t *testing.T) {
	l := Layout{Stride: 256, Height: 50, Block: FourGOBs}
	src := randomBuffer(l.LinearSize(), 7)

	a := make([]byte, l.TiledSize())
	b := make([]byte, l.TiledSize())
	if err := Tile(a, src, l); err != nil {
		t.Fatal(err)
	}
	if err := Tile(b, src, l); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Tile is not deterministic")
	}
}

func TestTile_SkippedGOBsUntouched(t *testing.T) {
	// Height 8 with 4-GOB blocks: only the first GOB of each column is
	// inside the image.
	l := Layout{Stride: 128, Height: 8, Block: FourGOBs}
	src := randomBuffer(l.LinearSize(), 3)
	dst := bytes.Repeat([]byte{0xAB}, l.TiledSize())

	if err := Tile(dst, src, l); err != nil {
		t.Fatal(err)
	}
	for col := range l.WidthBlocks() {
		block := dst[col*4*GOBSize : (col+1)*4*GOBSize]
		for i, v := range block[GOBSize:] {
			if v != 0xAB {
				t.Fatalf("column %d byte %d of skipped GOBs = %#x, want 0xab", col, GOBSize+i, v)
			}
		}
	}
}

func TestTile_FirstGOBLayout(t *testing.T) {
	l := Layout{Stride: 64, Height: 8, Block: OneGOB}
	src := make([]byte, l.LinearSize())
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, l.TiledSize())
	if err := Tile(dst, src, l); err != nil {
		t.Fatal(err)
	}
	// Cell 1 is row 1, bytes 0..15.
	if !bytes.Equal(dst[16:32], src[64:80]) {
		t.Errorf("cell 1 = % x, want row 1 bytes 0..15", dst[16:32])
	}
	// Cell 2 is row 0, bytes 16..31.
	if !bytes.Equal(dst[32:48], src[16:32]) {
		t.Errorf("cell 2 = % x, want row 0 bytes 16..31", dst[32:48])
	}
}

func TestTile_BufferErrors(t *testing.T) {
	l := Layout{Stride: 64, Height: 16, Block: TwoGOBs}

	err := Tile(make([]byte, l.TiledSize()-1), make([]byte, l.LinearSize()), l)
	if !errors.Is(err, ErrDestinationTooSmall) {
		t.Errorf("short dst: err = %v, want ErrDestinationTooSmall", err)
	}
	err = Tile(make([]byte, l.TiledSize()), make([]byte, l.LinearSize()-1), l)
	if !errors.Is(err, ErrSourceTooSmall) {
		t.Errorf("short src: err = %v, want ErrSourceTooSmall", err)
	}
	var le *LayoutError
	err = Tile(nil, nil, Layout{Stride: 65, Height: 1})
	if !errors.As(err, &le) {
		t.Errorf("bad layout: err = %v, want *LayoutError", err)
	}
}

func TestConverter_MatchesSequential(t *testing.T) {
	l := Layout{Stride: 1024, Height: 250, Block: TwoGOBs}
	src := randomBuffer(l.LinearSize(), 11)

	want := make([]byte, l.TiledSize())
	if err := Tile(want, src, l); err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{0, 1, 3, 8} {
		c, err := NewConverter(l, workers)
		if err != nil {
			t.Fatal(err)
		}
		got := make([]byte, l.TiledSize())
		if err := c.Tile(got, src); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("workers=%d: output differs from sequential Tile", workers)
		}
		c.Close()
		c.Close()
		if err := c.Tile(got, src); !errors.Is(err, ErrClosed) {
			t.Errorf("Tile after Close = %v, want ErrClosed", err)
		}
	}
}

func TestNewConverter_InvalidLayout(t *testing.T) {
	if _, err := NewConverter(Layout{Stride: 32, Height: 8}, 2); err == nil {
		t.Error("NewConverter accepted a stride that is not GOB aligned")
	}
}

func BenchmarkTile_1280x720(b *testing.B) {
	l := Layout{Stride: Pitch(1280, 4), Height: 720, Block: SixteenGOBs}
	src := randomBuffer(l.LinearSize(), 1)
	dst := make([]byte, l.TiledSize())
	b.SetBytes(int64(l.LinearSize()))
	b.ResetTimer()
	for range b.N {
		_ = Tile(dst, src, l)
	}
}

func BenchmarkConverter_1280x720_Parallel(b *testing.B) {
	l := Layout{Stride: Pitch(1280, 4), Height: 720, Block: FourGOBs}
	c, err := NewConverter(l, 4)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	src := randomBuffer(l.LinearSize(), 1)
	dst := make([]byte, l.TiledSize())
	b.SetBytes(int64(l.LinearSize()))
	b.ResetTimer()
	for range b.N {
		_ = c.Tile(dst, src)
	}
}
