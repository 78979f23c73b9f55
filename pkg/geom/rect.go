package geom

import (
	"fmt"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// Flavor identifies the reference frame of a Rect.
type Flavor int

const (
	// Absolute coordinates are surface pixels with the center at (X, Y).
	Absolute Flavor = 0
	// Normalized coordinates keep X and Y in [-1, 1] along the shorter
	// surface side. One of W, H equals 2 when the rect covers the limiting
	// dimension.
	Normalized Flavor = 1
	// FrameShort places a container relative to the surface using the
	// shorter surface side as the unit for both axes.
	FrameShort Flavor = 6
	// FrameLong places a container relative to the surface using each
	// axis' own length as its unit.
	FrameLong Flavor = 7
	// DockRelative holds fractions of the enclosing frame, center at (X, Y).
	// Container members use it.
	DockRelative Flavor = 8
	// AreaRelative holds fractions of the enclosing frame, top-left at
	// (X, Y). Containers use it once resolved.
	AreaRelative Flavor = 9
)

// String returns a short name for the flavor.
func (f Flavor) String() string {
	switch f {
	case Absolute:
		return "absolute"
	case Normalized:
		return "normalized"
	case FrameShort:
		return "frame-short"
	case FrameLong:
		return "frame-long"
	case DockRelative:
		return "dock-relative"
	case AreaRelative:
		return "area-relative"
	}
	return fmt.Sprintf("flavor(%d)", int(f))
}

// ParseFlavor returns the flavor named by String. An empty name is
// AreaRelative, the usual flavor of a container in a scene file.
func ParseFlavor(name string) (Flavor, error) {
	if name == "" {
		return AreaRelative, nil
	}
	for _, f := range []Flavor{Absolute, Normalized, FrameShort, FrameLong, DockRelative, AreaRelative} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown flavor %q", name)
}

// Rect is a rectangle in center form tagged with its reference frame.
// W and H are full extents. For AreaRelative X and Y name the top-left corner.
type Rect struct {
	X, Y   float64
	W, H   float64
	Flavor Flavor
}

// Left returns the left edge of a center-form rect.
func (r Rect) Left() float64 { return r.X - r.W*0.5 }

// Right returns the right edge of a center-form rect.
func (r Rect) Right() float64 { return r.X + r.W*0.5 }

// Top returns the top edge of a center-form rect.
func (r Rect) Top() float64 { return r.Y - r.H*0.5 }

// Bottom returns the bottom edge of a center-form rect.
func (r Rect) Bottom() float64 { return r.Y + r.H*0.5 }

// Contains reports whether (x, y) lies within the rect's half extents,
// edges included.
func (r Rect) Contains(x, y float64) bool {
	return abs(x-r.X) <= r.W*0.5 && abs(y-r.Y) <= r.H*0.5
}

// ContainsOpen is Contains with the edges excluded.
func (r Rect) ContainsOpen(x, y float64) bool {
	return abs(x-r.X) < r.W*0.5 && abs(y-r.Y) < r.H*0.5
}

// String formats the rect for logs.
func (r Rect) String() string {
	return fmt.Sprintf("%s(%.4g,%.4g %.4gx%.4g)", r.Flavor, r.X, r.Y, r.W, r.H)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Surface is a snapshot of the rendering surface dimensions.
type Surface struct {
	W, H     float64
	DX, DY   float64 // half extents
	Scale    float64 // min(DX, DY)
	InvScale float64
}

// NewSurface derives half extents and the uniform normalized scale.
func NewSurface(w, h float64) Surface {
	s := Surface{W: w, H: h, DX: w * 0.5, DY: h * 0.5}
	s.Scale = min(s.DX, s.DY)
	if s.Scale > 0 {
		s.InvScale = 1 / s.Scale
	}
	return s
}

// Valid reports whether both extents are positive.
func (s Surface) Valid() bool { return s.W > 0 && s.H > 0 }

// NormalizedDelta converts a pixel delta into normalized units.
func (s Surface) NormalizedDelta(dx, dy float64) (float64, float64) {
	return dx * s.InvScale, dy * s.InvScale
}

// Rect returns the absolute rectangle covering the whole surface.
func (s Surface) Rect() Rect {
	return Rect{X: s.DX, Y: s.DY, W: s.W, H: s.H, Flavor: Absolute}
}
