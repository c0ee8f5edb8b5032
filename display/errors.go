package display

import "errors"

var (
	// ErrClosed is returned once the device or layer has been closed.
	ErrClosed = errors.New("display: closed")

	// ErrTimeout is returned when a fence or vsync wait expires.
	ErrTimeout = errors.New("display: wait timed out")

	// ErrLayerExists is returned by CreateLayer for a name in use.
	ErrLayerExists = errors.New("display: layer already exists")

	// ErrNoLayer is returned for an unknown layer name.
	ErrNoLayer = errors.New("display: no such layer")

	// ErrBadSlot is returned when a slot is used out of turn.
	ErrBadSlot = errors.New("display: slot not owned by caller")
)
