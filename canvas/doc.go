// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas is an immediate-mode software rasterizer over a linear
// pixel buffer.
//
// A Canvas owns one buffer for its whole life. Drawing operations never
// fail: geometry outside the canvas is clipped, degenerate shapes are
// no-ops. The single-pixel primitives (SetPixel, DrawPixel,
// DrawPixelBlended) skip bounds checks beyond Go's own slice checks and
// are meant for callers that clip themselves.
//
// Example:
//
//	c := canvas.New(320, 240, pixel.FormatRGBA8888)
//	c.Clear(pixel.White)
//	c.DrawRect(10, 10, 100, 40, pixel.Red, pixel.BlendNone)
//	c.DrawBitmapText("hello", pixel.Black, 2, 12, 60, pixel.BlendDestination)
package canvas
