// Package tilefb presents software-rendered frames on a display engine
// that scans out block-linear (GOB tiled) buffers.
//
// # Overview
//
// A [Compositor] drives one on-screen layer. Every frame it
//
//  1. acquires a slot from the [SwapChain] and waits on the slot's fences,
//  2. hands out a linear [canvas.Canvas] for drawing,
//  3. converts the canvas into the slot's block-linear memory,
//  4. flushes CPU caches over the written range,
//  5. submits the slot with its fences and waits for vertical sync.
//
// Drawing never touches the tiled memory directly: the rasterizer needs
// random-access linear addressing, which the tiled layout does not give.
//
// # Quick Start
//
//	dev := display.NewDevice(display.WithRefreshRate(60))
//	defer dev.Close()
//	layer, err := dev.CreateLayer("main", tilefb.Config{Width: 1280, Height: 720, Buffers: 3})
//	if err != nil {
//	    return err
//	}
//
//	comp, err := tilefb.New(layer, layer.Config())
//	if err != nil {
//	    return err
//	}
//	defer comp.Close()
//
//	white := pixel.White
//	err = comp.Render(&white, func(c *canvas.Canvas) error {
//	    c.DrawRect(10, 10, 100, 50, pixel.Red, pixel.BlendNone)
//	    return nil
//	})
//
// # Errors
//
// Swap-chain failures abort the frame and are returned wrapped; nothing
// is retried. Bad geometry is rejected by [New] with a [*ConfigError].
// Drawing operations never fail.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package tilefb
