package text

import (
	"maps"
	"slices"
	"sync"
)

// ParseFunc parses font data into a Face.
type ParseFunc func(data []byte) (Face, error)

// DefaultBackend is the backend used when Parse gets no WithBackend option.
const DefaultBackend = "ximage"

var (
	backendsMu sync.RWMutex
	backends   = map[string]ParseFunc{
		"ximage": parseXImage,
		"gotext": parseGoText,
	}
)

// RegisterBackend makes a parser available under name. Registering an
// existing name replaces it.
func RegisterBackend(name string, fn ParseFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	backend string
}

// WithBackend selects the parsing backend by name.
func WithBackend(name string) ParseOption {
	return func(o *parseOptions) {
		o.backend = name
	}
}

// Parse parses a TrueType or OpenType font.
func Parse(data []byte, opts ...ParseOption) (Face, error) {
	o := parseOptions{backend: DefaultBackend}
	for _, opt := range opts {
		opt(&o)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	backendsMu.RLock()
	fn, ok := backends[o.backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, &UnknownBackendError{Name: o.backend}
	}
	return fn(data)
}

// ParseGoText parses a font with the go-text backend.
func ParseGoText(data []byte) (Face, error) {
	return Parse(data, WithBackend("gotext"))
}
