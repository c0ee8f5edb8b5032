package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoOutline is returned for glyphs stored only as bitmaps or SVG.
	ErrNoOutline = errors.New("text: glyph has no outline")
)

// UnknownBackendError is returned when Parse is asked for a backend that
// was never registered.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("text: unknown font backend %q", e.Name)
}
