// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tiling converts between linear (row-major) pixel buffers and
// the block-linear layout scanned out by the display engine.
//
// The unit of tiling is the GOB, 64 bytes wide and 8 rows tall. Inside a
// GOB the 32 cells of 16 bytes are stored in a fixed swizzled order.
// GOBs are stacked vertically into blocks whose height is a power of two
// (see [BlockHeight]); blocks are laid out left to right, then top to
// bottom.
//
// Usage:
//
//	l := tiling.Layout{Stride: tiling.Pitch(1280, 4), Height: 720, Block: tiling.FourGOBs}
//	dst := make([]byte, l.TiledSize())
//	if err := tiling.Tile(dst, linear, l); err != nil {
//	    return err
//	}
//
// A [Converter] binds a layout once and can spread block rows over a
// worker pool.
package tiling
