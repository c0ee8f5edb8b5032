package main

import (
	"fmt"

	"github.com/gogpu/tilefb/canvas"
	"github.com/gogpu/tilefb/console"
	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/text"
)

type square struct {
	x, y, dx, dy, size int
	col                pixel.Color
}

type scene struct {
	w, h    int
	face    text.Face
	con     *console.Console
	squares []square
	top     pixel.Color
	bottom  pixel.Color
}

func newScene(w, h int, face text.Face, con *console.Console) *scene {
	return &scene{
		w:    w,
		h:    h,
		face: face,
		con:  con,
		squares: []square{
			{x: 10, y: 40, dx: 3, dy: 2, size: 48, col: pixel.RGBA(255, 80, 80, 200)},
			{x: 200, y: 120, dx: -2, dy: 3, size: 64, col: pixel.RGBA(80, 255, 80, 160)},
			{x: 400, y: 60, dx: 4, dy: -3, size: 32, col: pixel.RGBA(80, 120, 255, 220)},
		},
		top:    pixel.Hex("#1a2740"),
		bottom: pixel.Hex("#5a3d6e"),
	}
}

func (s *scene) drawFunc(frame int) func(*canvas.Canvas) error {
	return func(c *canvas.Canvas) error {
		s.gradient(c)
		s.circles(c, frame)
		s.move()
		for _, sq := range s.squares {
			c.DrawRect(sq.x, sq.y, sq.size, sq.size, sq.col, pixel.BlendDestination)
		}
		c.DrawFontText(s.face, "tilefb: block-linear scan-out", pixel.White, 28, 16, 8, pixel.BlendDestination)
		c.DrawBitmapText(fmt.Sprintf("frame %05d", frame), pixel.Hex("#ffd166"), 2, 16, 56, pixel.BlendNone)
		c.DrawTinyText(canvas.Font8x8, "tinyfont 8x8", pixel.Hex("#06d6a0"), 16, 88, pixel.BlendNone)

		_, rows := s.con.Size()
		s.con.Draw(c, 0, s.h-rows*canvas.BitmapGlyphSize*2)
		return nil
	}
}

func (s *scene) gradient(c *canvas.Canvas) {
	for y := range s.h {
		col := s.top.Lerp(s.bottom, float64(y)/float64(max(s.h-1, 1)))
		c.DrawRect(0, y, s.w, 1, col, pixel.BlendNone)
	}
}

func (s *scene) circles(c *canvas.Canvas, frame int) {
	cx, cy := s.w*3/4, s.h/2
	r := 40 + (frame % 40)
	c.DrawCircleFilled(cx, cy, r, pixel.RGBA(255, 200, 0, 96), pixel.BlendDestination)
	c.DrawCircleOutline(cx, cy, r+10, 4, pixel.White, pixel.BlendNone)
}

func (s *scene) move() {
	for i := range s.squares {
		sq := &s.squares[i]
		sq.x += sq.dx
		sq.y += sq.dy
		if sq.x < 0 || sq.x+sq.size > s.w {
			sq.dx = -sq.dx
			sq.x = min(max(sq.x, 0), s.w-sq.size)
		}
		if sq.y < 0 || sq.y+sq.size > s.h {
			sq.dy = -sq.dy
			sq.y = min(max(sq.y, 0), s.h-sq.size)
		}
	}
}
