package tiling

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

// GOB geometry.
const (
	GOBWidth  = 64  // bytes per GOB row
	GOBHeight = 8   // rows per GOB
	GOBSize   = 512 // GOBWidth * GOBHeight
)

// BlockHeight is the log2 of the number of GOBs stacked in one block.
// It must match the value the display engine was configured with.
type BlockHeight uint8

// Block heights supported by the display engine.
const (
	OneGOB BlockHeight = iota
	TwoGOBs
	FourGOBs
	EightGOBs
	SixteenGOBs
	ThirtyTwoGOBs
)

// Valid reports whether b is a supported block height.
func (b BlockHeight) Valid() bool {
	return b <= ThirtyTwoGOBs
}

// GOBs returns the number of GOBs per block.
func (b BlockHeight) GOBs() int {
	return 1 << b
}

// Rows returns the block height in pixel rows.
func (b BlockHeight) Rows() int {
	return GOBHeight << b
}

func (b BlockHeight) String() string {
	if !b.Valid() {
		return "BlockHeight(" + strconv.Itoa(int(b)) + ")"
	}
	return strconv.Itoa(b.GOBs()) + "GOB"
}

// BlockHeightFromGOBs returns the block height holding n GOBs.
// n must be a power of two between 1 and 32.
func BlockHeightFromGOBs(n int) (BlockHeight, bool) {
	for b := OneGOB; b <= ThirtyTwoGOBs; b++ {
		if b.GOBs() == n {
			return b, true
		}
	}
	return 0, false
}

// Layout describes the geometry shared by a linear buffer and its tiled
// counterpart.
type Layout struct {
	// Stride is the linear row pitch in bytes. It must be a multiple of
	// GOBWidth.
	Stride int

	// Height is the logical height in rows.
	Height int

	// Block is the block height the tiled buffer uses.
	Block BlockHeight
}

// Validate reports the first problem with l, as a *LayoutError.
func (l Layout) Validate() error {
	switch {
	case l.Stride <= 0:
		return &LayoutError{Field: "Stride", Value: l.Stride, Reason: "must be positive"}
	case l.Stride%GOBWidth != 0:
		return &LayoutError{Field: "Stride", Value: l.Stride, Reason: "must be a multiple of 64 bytes"}
	case l.Height <= 0:
		return &LayoutError{Field: "Height", Value: l.Height, Reason: "must be positive"}
	case !l.Block.Valid():
		return &LayoutError{Field: "Block", Value: int(l.Block), Reason: "log2 must be between 0 and 5"}
	}
	return nil
}

// WidthBlocks returns the number of block columns.
func (l Layout) WidthBlocks() int {
	return l.Stride / GOBWidth
}

// HeightBlocks returns the number of block rows, including a partial
// last row.
func (l Layout) HeightBlocks() int {
	return (l.Height + l.Block.Rows() - 1) >> (3 + l.Block)
}

// AlignedHeight returns Height rounded up to whole GOB rows. A linear
// buffer must provide this many rows because a GOB is always read whole.
func (l Layout) AlignedHeight() int {
	return AlignUp(l.Height, GOBHeight)
}

// LinearSize returns the minimum linear buffer size in bytes.
func (l Layout) LinearSize() int {
	return l.Stride * l.AlignedHeight()
}

// TiledSize returns the size in bytes of the tiled buffer, whole blocks
// included.
func (l Layout) TiledSize() int {
	return l.WidthBlocks() * l.HeightBlocks() * l.Block.GOBs() * GOBSize
}

// blockRowSize returns the tiled bytes covered by one row of blocks.
func (l Layout) blockRowSize() int {
	return l.WidthBlocks() * l.Block.GOBs() * GOBSize
}

// Pitch returns the row pitch for width pixels of bytesPerPixel bytes,
// aligned to whole GOBs.
func Pitch(width, bytesPerPixel int) int {
	return AlignUp(width*bytesPerPixel, GOBWidth)
}

// AlignUp rounds v up to the next multiple of a. a must be positive.
func AlignUp[T constraints.Integer](v, a T) T {
	return (v + a - 1) / a * a
}
