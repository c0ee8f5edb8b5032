// Command fbdemo renders an animated scene through a software display
// engine, the same way it would reach block-linear scan-out hardware.
//
// By default it runs headless for a fixed number of frames and writes the
// last scanned-out frame to a PNG file. -window opens a desktop window and
// -term draws into the terminal instead.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/tilefb"
	"github.com/gogpu/tilefb/console"
	"github.com/gogpu/tilefb/display"
	"github.com/gogpu/tilefb/internal/preview"
	"github.com/gogpu/tilefb/pixel"
	"github.com/gogpu/tilefb/text"
	"github.com/gogpu/tilefb/tiling"
)

func main() {
	var (
		width   = flag.Int("width", 640, "surface width")
		height  = flag.Int("height", 360, "surface height")
		buffers = flag.Int("buffers", 3, "swap-chain depth")
		block   = flag.Int("block", 4, "GOBs per block (1, 2, 4, 8, 16 or 32)")
		format  = flag.String("format", "RGBA8888", "pixel format (RGBA8888 or RGBA4444)")
		frames  = flag.Int("frames", 120, "frames to render headless")
		hz      = flag.Float64("hz", 240, "display refresh rate")
		font    = flag.String("font", "", "TrueType font file (default Go Regular)")
		backend = flag.String("backend", text.DefaultBackend, "font backend (ximage or gotext)")
		workers = flag.Int("workers", 1, "tiling goroutines")
		output  = flag.String("out", "fbdemo.png", "PNG written after the run, empty to skip")
		window  = flag.Bool("window", false, "show frames in a desktop window")
		term    = flag.Bool("term", false, "show frames in the terminal")
		verbose = flag.Bool("v", false, "log frame lifecycle")
	)
	flag.Parse()

	if *verbose {
		tilefb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	bh, ok := tiling.BlockHeightFromGOBs(*block)
	if !ok {
		log.Fatalf("invalid -block %d", *block)
	}
	pf, ok := pixel.ParseFormat(*format)
	if !ok {
		log.Fatalf("invalid -format %q", *format)
	}
	face, err := loadFace(*font, *backend)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	dev := display.NewDevice(display.WithRefreshRate(*hz))
	defer dev.Close()

	layer, err := dev.CreateLayer("main", tilefb.Config{
		Width:       *width,
		Height:      *height,
		Format:      pf,
		BlockHeight: bh,
		Buffers:     *buffers,
	})
	if err != nil {
		log.Fatalf("Failed to create layer: %v", err)
	}
	comp, err := tilefb.New(layer, layer.Config(),
		tilefb.WithWorkers(*workers),
		tilefb.WithFenceTimeout(time.Second),
		tilefb.WithVsyncTimeout(time.Second),
	)
	if err != nil {
		log.Fatalf("Failed to create compositor: %v", err)
	}
	defer comp.Close()

	con := console.New(*width/16, 4, console.WithScale(2), console.WithHistory(64),
		console.WithColors(pixel.RGB(0xC0, 0xFF, 0xC0), pixel.RGBA(0, 0, 0, 0xA0)))
	sc := newScene(*width, *height, face, con)

	frame := 0
	start := time.Now()
	step := func() error {
		if frame%30 == 0 {
			fmt.Fprintf(con, "frame %d, vblank %d\n", frame, dev.VBlank())
		}
		err := comp.Render(nil, sc.drawFunc(frame))
		frame++
		return err
	}

	switch {
	case *window:
		err = preview.RunWindow(layer, step, preview.WindowOptions{
			Title:  "fbdemo",
			Width:  *width,
			Height: *height,
		})
	case *term:
		err = preview.RunTerminal(layer, step, 30)
	default:
		for frame < *frames && err == nil {
			err = step()
		}
	}
	if err != nil {
		log.Fatalf("Render failed at frame %d: %v", frame, err)
	}

	elapsed := time.Since(start)
	stats := layer.Stats()
	log.Printf("%d frames in %v (%.1f fps), %d presented, %d dropped",
		frame, elapsed.Round(time.Millisecond), float64(frame)/elapsed.Seconds(), stats.Presented, stats.Dropped)
	gs := comp.Canvas().GlyphCacheStats()
	log.Printf("glyph cache: %d masks, %d hits, %d misses", gs.Masks, gs.Hits, gs.Misses)

	if *output != "" {
		if err := savePNG(layer, *output); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Last frame saved to %s (%dx%d)\n", *output, *width, *height)
	}
}

func loadFace(path, backend string) (text.Face, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return text.Parse(data, text.WithBackend(backend))
}

func savePNG(layer *display.Layer, path string) error {
	img, ok := layer.Snapshot()
	if !ok {
		return fmt.Errorf("no frame on scan-out")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
