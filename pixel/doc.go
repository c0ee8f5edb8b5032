// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixel defines the 8-bit color model used by the framebuffer
// canvas: channel packing in the two byte orders the display engine
// understands, alpha blending, and the storage formats a surface can use.
//
// Colors are plain values. Packing helpers never fail; out-of-range
// conversions simply truncate.
package pixel
