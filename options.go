package tilefb

import (
	"log/slog"
	"time"
)

// Option configures a Compositor during creation.
//
// Example:
//
//	comp, err := tilefb.New(layer, cfg,
//	    tilefb.WithFenceTimeout(100*time.Millisecond),
//	    tilefb.WithWorkers(runtime.GOMAXPROCS(0)),
//	)
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	fenceTimeout time.Duration
	vsyncTimeout time.Duration
	flusher      CacheFlusher
	workers      int
	logger       *slog.Logger
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		fenceTimeout: WaitForever,
		vsyncTimeout: WaitForever,
		workers:      1,
	}
}

// WithFenceTimeout bounds how long BeginFrame waits on a slot's fences.
// The default is WaitForever.
func WithFenceTimeout(d time.Duration) Option {
	return func(o *options) {
		o.fenceTimeout = d
	}
}

// WithVsyncTimeout bounds the vertical sync wait of EndFrame and
// WaitVsync. The default is WaitForever.
func WithVsyncTimeout(d time.Duration) Option {
	return func(o *options) {
		o.vsyncTimeout = d
	}
}

// WithCacheFlusher sets the cache maintenance hook run over the tiled
// range before submit. Without it the swap chain is used when it
// implements CacheFlusher, otherwise flushing is a no-op.
func WithCacheFlusher(f CacheFlusher) Option {
	return func(o *options) {
		o.flusher = f
	}
}

// WithWorkers spreads tiling across n goroutines. Values below 2 keep
// tiling on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets a logger for this compositor only. Without it the
// package logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
