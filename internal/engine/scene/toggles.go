package scene

import "github.com/go-gl/gl/v4.1-core/gl"

// PolygonMode is how opaque geometry is rasterized.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// GL returns the GL enum for the mode.
func (m PolygonMode) GL() uint32 {
	switch m {
	case PolygonLine:
		return gl.LINE
	case PolygonPoint:
		return gl.POINT
	default:
		return gl.FILL
	}
}

func (m PolygonMode) String() string {
	switch m {
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	default:
		return "fill"
	}
}

// Toggles are the user-switchable scene flags. They change only on key
// events and are read once per frame.
type Toggles struct {
	Night   bool
	Shadows bool
	Polygon PolygonMode
}
