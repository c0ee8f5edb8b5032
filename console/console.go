// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package console

import (
	"sync"
	"unicode/utf8"

	"github.com/gogpu/tilefb"
	"github.com/gogpu/tilefb/canvas"
	"github.com/gogpu/tilefb/pixel"
)

// DefaultHistory is the number of lines kept when WithHistory is not
// given.
const DefaultHistory = 1000

const tabWidth = 8

// Option configures a Console.
type Option func(*Console)

// WithScale draws every font pixel as an n×n square. The default is 1.
func WithScale(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.scale = n
		}
	}
}

// WithHistory bounds the scrollback to n committed lines.
func WithHistory(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.history = n
		}
	}
}

// WithColors sets the text and background colors.
func WithColors(fg, bg pixel.Color) Option {
	return func(c *Console) {
		c.fg, c.bg = fg, bg
	}
}

// Console is a scrollback text buffer. It is safe for concurrent use.
type Console struct {
	mu      sync.Mutex
	cols    int
	rows    int
	scale   int
	history int
	fg, bg  pixel.Color

	lines   []string // committed lines, oldest first
	cur     []rune
	offset  int // lines scrolled back from the bottom
	pending []byte
	p       parser
}

// New creates a console of cols×rows character cells.
func New(cols, rows int, opts ...Option) *Console {
	c := &Console{
		cols:    max(cols, 1),
		rows:    max(rows, 1),
		scale:   1,
		history: DefaultHistory,
		fg:      pixel.White,
		bg:      pixel.Black,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForSize creates a console filling a width×height pixel surface.
func ForSize(width, height int, opts ...Option) *Console {
	c := New(1, 1, opts...)
	cell := canvas.BitmapGlyphSize * c.scale
	c.cols = max(width/cell, 1)
	c.rows = max(height/cell, 1)
	return c
}

// Size returns the console size in character cells.
func (c *Console) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Write appends p to the console. UTF-8 sequences split across calls
// are reassembled. New output scrolls the view back to the bottom.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := p
	if len(c.pending) > 0 {
		buf = append(c.pending, p...)
		c.pending = nil
	}
	for len(buf) > 0 {
		if !utf8.FullRune(buf) {
			c.pending = append([]byte(nil), buf...)
			break
		}
		r, size := utf8.DecodeRune(buf)
		buf = buf[size:]
		c.p.feed(c, r)
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

func (c *Console) print(r rune) {
	c.offset = 0
	if len(c.cur) == c.cols {
		c.commit()
	}
	c.cur = append(c.cur, r)
}

func (c *Console) control(r rune) {
	switch r {
	case '\n':
		c.commit()
	case '\r':
		c.cur = c.cur[:0]
	case '\b':
		if len(c.cur) > 0 {
			c.cur = c.cur[:len(c.cur)-1]
		}
	case '\t':
		n := tabWidth - len(c.cur)%tabWidth
		for range n {
			c.print(' ')
		}
	}
}

func (c *Console) csi(final rune, params []int) {
	switch final {
	case 'A':
		c.scrollLocked(arg(params, 0, 1))
	case 'B':
		c.scrollLocked(-arg(params, 0, 1))
	case 'J':
		if arg(params, 0, 0) == 2 {
			c.clearLocked()
		}
	default:
		tilefb.Logger().Debug("console: ignored CSI sequence", "final", string(final), "params", params)
	}
}

func (c *Console) commit() {
	c.offset = 0
	c.lines = append(c.lines, string(c.cur))
	c.cur = c.cur[:0]
	if excess := len(c.lines) - c.history; excess > 0 {
		c.lines = append(c.lines[:0], c.lines[excess:]...)
	}
}

// ScrollUp moves the view n lines back into the history.
func (c *Console) ScrollUp(n int) {
	c.mu.Lock()
	c.scrollLocked(n)
	c.mu.Unlock()
}

// ScrollDown moves the view n lines toward the newest output.
func (c *Console) ScrollDown(n int) {
	c.mu.Lock()
	c.scrollLocked(-n)
	c.mu.Unlock()
}

func (c *Console) scrollLocked(n int) {
	limit := max(len(c.lines)+1-c.rows, 0)
	c.offset = min(max(c.offset+n, 0), limit)
}

// Offset returns how many lines the view is scrolled back.
func (c *Console) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Clear drops the history and the current line.
func (c *Console) Clear() {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
}

func (c *Console) clearLocked() {
	c.lines = c.lines[:0]
	c.cur = c.cur[:0]
	c.offset = 0
}

// Len returns the number of committed lines held.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns the visible lines, top first. The line being written is
// the last one when the view is at the bottom.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := len(c.lines) + 1
	end := total - c.offset
	start := max(end-c.rows, 0)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == len(c.lines) {
			out = append(out, string(c.cur))
		} else {
			out = append(out, c.lines[i])
		}
	}
	return out
}

// Draw paints the console with its top-left corner at (x, y).
func (c *Console) Draw(cv *canvas.Canvas, x, y int) {
	lines := c.Lines()
	cell := canvas.BitmapGlyphSize * c.scale
	cv.DrawRect(x, y, c.cols*cell, c.rows*cell, c.bg, pixel.BlendDestination)
	for i, line := range lines {
		cv.DrawBitmapText(line, c.fg, c.scale, x, y+i*cell, pixel.BlendDestination)
	}
}

// Render presents the console as one full frame of comp.
func (c *Console) Render(comp *tilefb.Compositor) error {
	bg := c.bg
	return comp.Render(&bg, func(cv *canvas.Canvas) error {
		c.Draw(cv, 0, 0)
		return nil
	})
}
