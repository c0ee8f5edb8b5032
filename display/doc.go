// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package display is a software model of a display engine that scans out
// block-linear buffers.
//
// A [Device] owns a vertical blanking counter, which doubles as the
// syncpoint every fence refers to, and a set of named [Layer]s. Each
// layer is a swap chain of tiled buffers and implements
// [tilefb.SwapChain], [tilefb.CacheFlusher] and [tilefb.Canceler], so a
// compositor can present into it exactly as it would into hardware.
//
// Slot lifecycle:
//
//	free --Acquire--> dequeued --Submit--> queued --vblank--> scanout
//	  ^                  |                                      |
//	  +------Cancel------+                                      |
//	  +------- next flip, fence = flip vblank + 1 --------------+
//
// Fifo layers flip their queued slots in submission order, one per
// vblank; Mailbox and Immediate layers keep only the newest. A layer with
// a single buffer hands its scanout slot back out once nothing is queued,
// fenced to the next vblank.
//
// A device created with a refresh rate of zero never ticks by itself;
// call [Device.Step] to signal a vblank. Tests use this to step the
// engine deterministically.
package display
