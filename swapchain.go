// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilefb

import "time"

// WaitForever disables the timeout of a fence or vsync wait.
const WaitForever time.Duration = -1

// MaxFences is the capacity of a MultiFence.
const MaxFences = 4

// Fence is a syncpoint threshold: it is signaled once syncpoint ID
// reaches Value.
type Fence struct {
	ID    uint32
	Value uint32
}

// MultiFence is a set of up to MaxFences fences that must all be
// signaled.
type MultiFence struct {
	Count  int
	Fences [MaxFences]Fence
}

// Active returns the used fences.
func (m MultiFence) Active() []Fence {
	return m.Fences[:min(max(m.Count, 0), MaxFences)]
}

// Buffer is a swap-chain slot lent to the compositor between Acquire and
// Submit. Data is the slot's tiled memory; it must not be touched after
// the slot is submitted.
type Buffer struct {
	Data   []byte
	Slot   int
	Fences MultiFence
}

// SwapChain is the display-side collaborator: a rotating pool of
// scan-out buffers.
//
// Errors are returned as is; the compositor wraps them but never
// interprets or retries them.
type SwapChain interface {
	// Acquire returns the next free slot, blocking until one is free.
	Acquire() (Buffer, error)

	// Submit queues slot for scan-out once fences are signaled.
	Submit(slot int, fences MultiFence) error

	// WaitFences blocks until every fence is signaled or the timeout
	// (WaitForever for none) expires.
	WaitFences(fences MultiFence, timeout time.Duration) error

	// WaitVsync blocks until the next vertical blanking interval.
	WaitVsync(timeout time.Duration) error
}

// CacheFlusher makes CPU writes to b visible to the display engine.
type CacheFlusher interface {
	FlushRange(b []byte)
}

// Canceler is implemented by swap chains that can take back an acquired
// slot without presenting it.
type Canceler interface {
	Cancel(slot int, fences MultiFence) error
}

type nopFlusher struct{}

func (nopFlusher) FlushRange([]byte) {}
