package pixel

// BlendMode selects how a drawn color combines with the pixel under it.
type BlendMode uint8

const (
	// BlendNone overwrites the destination.
	BlendNone BlendMode = iota

	// BlendDestination draws the new color over the existing pixel.
	BlendDestination

	// BlendSource keeps the existing pixel on top and blends it over the
	// new color.
	BlendSource
)

// Apply combines src (the color being drawn) with dst (the pixel
// already stored).
func (m BlendMode) Apply(src, dst Color) Color {
	switch m {
	case BlendDestination:
		return src.BlendWith(dst)
	case BlendSource:
		return dst.BlendWith(src)
	default:
		return src
	}
}

func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "None"
	case BlendDestination:
		return "Destination"
	case BlendSource:
		return "Source"
	default:
		return "Unknown"
	}
}
