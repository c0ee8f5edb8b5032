package tiling

import "fmt"

const (
	cellSize    = 16
	cellsPerGOB = GOBSize / cellSize
)

// cell is the position of a 16-byte cell inside a GOB, in bytes (x) and
// rows (y).
type cell struct {
	x, y int
}

// gobCells maps the i-th stored cell of a GOB to its linear position.
var gobCells = func() (t [cellsPerGOB]cell) {
	for i := range cellsPerGOB {
		t[i] = cell{
			x: ((i << 3) & 0x10) | ((i << 1) & 0x20),
			y: ((i >> 1) & 0x6) | (i & 0x1),
		}
	}
	return t
}()

// CellOffset returns the linear byte offset, relative to the GOB's
// top-left byte, of the i-th stored 16-byte cell.
func CellOffset(i, stride int) int {
	c := gobCells[i]
	return c.y*stride + c.x
}

// Tile writes the block-linear form of src into dst.
//
// Only GOBs whose first row lies inside l.Height are written; the rest of
// dst keeps its previous contents. dst must hold l.TiledSize() bytes and
// src l.LinearSize() bytes.
func Tile(dst, src []byte, l Layout) error {
	if err := checkBuffers(l, len(dst), len(src)); err != nil {
		return err
	}
	tileRows(dst, src, l, 0, l.HeightBlocks())
	return nil
}

// Untile is the inverse of Tile: it writes the linear form of the tiled
// src into dst. dst must hold l.LinearSize() bytes and src
// l.TiledSize() bytes. Rows of dst past l.Height are left unchanged.
func Untile(dst, src []byte, l Layout) error {
	if err := checkBuffers(l, len(src), len(dst)); err != nil {
		return err
	}
	untileRows(dst, src, l, 0, l.HeightBlocks())
	return nil
}

func checkBuffers(l Layout, tiled, linear int) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if need := l.TiledSize(); tiled < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrDestinationTooSmall, tiled, need)
	}
	if need := l.LinearSize(); linear < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrSourceTooSmall, linear, need)
	}
	return nil
}

// tileRows converts block rows [lo, hi). Distinct row ranges write
// disjoint parts of dst.
func tileRows(dst, src []byte, l Layout, lo, hi int) {
	gobs := l.Block.GOBs()
	cols := l.WidthBlocks()
	out := lo * l.blockRowSize()

	for by := lo; by < hi; by++ {
		for bx := range cols {
			for g := range gobs {
				y := (by*gobs + g) * GOBHeight
				if y < l.Height {
					swizzleGOB(dst[out:out+GOBSize], src[y*l.Stride+bx*GOBWidth:], l.Stride)
				}
				out += GOBSize
			}
		}
	}
}

func untileRows(dst, src []byte, l Layout, lo, hi int) {
	gobs := l.Block.GOBs()
	cols := l.WidthBlocks()
	in := lo * l.blockRowSize()

	for by := lo; by < hi; by++ {
		for bx := range cols {
			for g := range gobs {
				y := (by*gobs + g) * GOBHeight
				if y < l.Height {
					unswizzleGOB(dst[y*l.Stride+bx*GOBWidth:], src[in:in+GOBSize], l.Stride, l.Height-y)
				}
				in += GOBSize
			}
		}
	}
}

func swizzleGOB(gob, src []byte, stride int) {
	for i, c := range &gobCells {
		off := c.y*stride + c.x
		copy(gob[i*cellSize:(i+1)*cellSize], src[off:off+cellSize])
	}
}

// unswizzleGOB restores at most rows rows of one GOB.
func unswizzleGOB(dst, gob []byte, stride, rows int) {
	for i, c := range &gobCells {
		if c.y >= rows {
			continue
		}
		off := c.y*stride + c.x
		copy(dst[off:off+cellSize], gob[i*cellSize:(i+1)*cellSize])
	}
}
