// Package preview shows scanned-out frames of a software display on the
// host, in a desktop window or in a terminal.
package preview

import "image"

// Source yields the frame currently on scan-out. display.Layer
// implements it.
type Source interface {
	Snapshot() (*image.NRGBA, bool)
}

// StepFunc advances the application by one frame. Returning an error
// ends the preview.
type StepFunc func() error
