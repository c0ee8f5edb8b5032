package preview

import (
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the top half of a cell in the foreground color, so
// every cell shows two vertically stacked pixels.
const halfBlock = '▀'

// cellWriter is the part of tcell.Screen the renderer needs.
type cellWriter interface {
	Size() (int, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// paintHalfBlocks scales img to the cell grid of s with nearest-pixel
// sampling, two pixel rows per text row.
func paintHalfBlocks(s cellWriter, img *image.NRGBA) {
	cols, rows := s.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	b := img.Bounds()
	for cy := range rows {
		for cx := range cols {
			x := b.Min.X + cx*b.Dx()/cols
			top := b.Min.Y + (2*cy)*b.Dy()/(2*rows)
			bot := b.Min.Y + (2*cy+1)*b.Dy()/(2*rows)
			style := tcell.StyleDefault.
				Foreground(cellColor(img, x, top)).
				Background(cellColor(img, x, bot))
			s.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

func cellColor(img *image.NRGBA, x, y int) tcell.Color {
	o := img.PixOffset(x, y)
	p := img.Pix[o : o+4 : o+4]
	return tcell.NewRGBColor(int32(p[0]), int32(p[1]), int32(p[2]))
}

// RunTerminal shows src in the terminal at fps frames per second,
// calling step before each refresh. Escape, Ctrl-C or q quits.
func RunTerminal(src Source, step StepFunc, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return nil
		case <-ticker.C:
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		if img, ok := src.Snapshot(); ok {
			paintHalfBlocks(screen, img)
			screen.Show()
		}
	}
}
