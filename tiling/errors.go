package tiling

import (
	"errors"
	"fmt"
)

// Sentinel errors for tiling.
var (
	// ErrDestinationTooSmall is returned when the destination cannot hold
	// the converted data.
	ErrDestinationTooSmall = errors.New("tiling: destination buffer too small")

	// ErrSourceTooSmall is returned when the source does not cover the
	// layout.
	ErrSourceTooSmall = errors.New("tiling: source buffer too small")

	// ErrClosed is returned by a Converter after Close.
	ErrClosed = errors.New("tiling: converter closed")
)

// LayoutError describes an invalid Layout field.
type LayoutError struct {
	Field  string
	Value  int
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("tiling: invalid layout %s=%d: %s", e.Field, e.Value, e.Reason)
}
