package preview

import (
	"errors"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// errQuit ends RunGame without reporting a failure.
var errQuit = errors.New("preview: quit")

// WindowOptions configures RunWindow.
type WindowOptions struct {
	Title  string
	Width  int // logical frame size
	Height int
	Scale  int // window pixels per frame pixel, default 2
	TPS    int // steps per second, default 60
}

// RunWindow opens a desktop window that calls step once per tick and
// shows src. It blocks until the window is closed, Escape is pressed or
// step fails.
func RunWindow(src Source, step StepFunc, opts WindowOptions) error {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	g := &windowGame{src: src, step: step, w: opts.Width, h: opts.Height}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width*opts.Scale, opts.Height*opts.Scale)
	ebiten.SetTPS(opts.TPS)
	err := ebiten.RunGame(g)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

type windowGame struct {
	src  Source
	step StepFunc
	w, h int
	rgba *image.RGBA
	tex  *ebiten.Image
}

func (g *windowGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	frame, ok := g.src.Snapshot()
	if !ok {
		return
	}
	b := frame.Bounds()
	if g.rgba == nil || g.rgba.Bounds() != b {
		g.rgba = image.NewRGBA(b)
		if g.tex != nil {
			g.tex.Deallocate()
		}
		g.tex = ebiten.NewImage(b.Dx(), b.Dy())
	}
	// ebiten takes premultiplied pixels.
	draw.Draw(g.rgba, b, frame, b.Min, draw.Src)
	g.tex.WritePixels(g.rgba.Pix)
	screen.DrawImage(g.tex, nil)
}

func (g *windowGame) Layout(int, int) (int, int) {
	return g.w, g.h
}
