package geom

import (
	"github.com/matzehuels/dockgrid/pkg/errors"
)

func unsupported(op string, f Flavor) error {
	return errors.New(errors.ErrCodeUnsupportedConversion, "%s: no mapping from %s", op, f)
}

func degenerate(op string, s Surface) error {
	return errors.New(errors.ErrCodeDegenerateGeometry, "%s: surface %gx%g", op, s.W, s.H)
}

// Absolute converts r to surface pixels.
//
// Normalized rects are scaled by s.Scale and offset by half the surface.
// DockRelative and AreaRelative rects are scaled by the surface width and
// height. FrameShort and FrameLong go through ResolveFrame. Absolute rects
// are returned unchanged.
func (r Rect) Absolute(s Surface) (Rect, error) {
	switch r.Flavor {
	case Absolute:
		return r, nil
	case Normalized:
		scale := s.Scale
		return Rect{
			X:      r.X*scale + s.W*0.5,
			Y:      r.Y*scale + s.H*0.5,
			W:      r.W * scale,
			H:      r.H * scale,
			Flavor: Absolute,
		}, nil
	case DockRelative:
		return Rect{
			X:      r.X * s.W,
			Y:      r.Y * s.H,
			W:      r.W * s.W,
			H:      r.H * s.H,
			Flavor: Absolute,
		}, nil
	case AreaRelative:
		return Rect{
			X:      (r.X + r.W*0.5) * s.W,
			Y:      (r.Y + r.H*0.5) * s.H,
			W:      r.W * s.W,
			H:      r.H * s.H,
			Flavor: Absolute,
		}, nil
	case FrameShort, FrameLong:
		return r.ResolveFrame(s)
	}
	return Rect{}, unsupported("absolute", r.Flavor)
}

// AbsoluteIn converts r to pixels using an absolute container rectangle as
// the frame. The result is offset by the frame's top-left corner, so an item
// inside a container inside the surface resolves to surface pixels.
func (r Rect) AbsoluteIn(frame Rect) (Rect, error) {
	if frame.Flavor != Absolute {
		return Rect{}, unsupported("absolute-in frame", frame.Flavor)
	}
	if r.Flavor == Absolute {
		return r, nil
	}
	out, err := r.Absolute(NewSurface(frame.W, frame.H))
	if err != nil {
		return Rect{}, err
	}
	out.X += frame.Left()
	out.Y += frame.Top()
	return out, nil
}

// Normalized converts an Absolute or DockRelative rect to normalized
// coordinates. Normalized input is returned unchanged.
func (r Rect) Normalized(s Surface) (Rect, error) {
	switch r.Flavor {
	case Normalized:
		return r, nil
	case Absolute:
		if !s.Valid() {
			return Rect{}, degenerate("normalized", s)
		}
		inv := s.InvScale
		return Rect{
			X:      (r.X - s.DX) * inv,
			Y:      (r.Y - s.DY) * inv,
			W:      r.W * inv,
			H:      r.H * inv,
			Flavor: Normalized,
		}, nil
	case DockRelative:
		if !s.Valid() {
			return Rect{}, degenerate("normalized", s)
		}
		inv := s.InvScale
		return Rect{
			X:      (r.X*s.W - s.DX) * inv,
			Y:      (r.Y*s.H - s.DY) * inv,
			W:      r.W * s.W * inv,
			H:      r.H * s.H * inv,
			Flavor: Normalized,
		}, nil
	}
	return Rect{}, unsupported("normalized", r.Flavor)
}

// FixForDocking converts a Normalized rect to DockRelative so it can become a
// container member. DockRelative input is returned unchanged; other flavors
// fail and the caller keeps its old value.
func (r Rect) FixForDocking(s Surface) (Rect, error) {
	switch r.Flavor {
	case DockRelative:
		return r, nil
	case Normalized:
		if !s.Valid() {
			return Rect{}, degenerate("fix for docking", s)
		}
		fw := s.Scale / s.W
		fh := s.Scale / s.H
		return Rect{
			X:      r.X*fw + 0.5,
			Y:      r.Y*fh + 0.5,
			W:      r.W * fw,
			H:      r.H * fh,
			Flavor: DockRelative,
		}, nil
	}
	return Rect{}, unsupported("fix for docking", r.Flavor)
}

// FixForArea converts an Absolute rect to AreaRelative, clamped so that the
// result never leaves the unit square: x, y >= 0, x+w <= 1, y+h <= 1 and
// w, h >= 0. Negative extents are flipped by moving the origin first.
// AreaRelative input is returned unchanged.
func (r Rect) FixForArea(s Surface) (Rect, error) {
	switch r.Flavor {
	case AreaRelative:
		return r, nil
	case Absolute:
	default:
		return Rect{}, unsupported("fix for area", r.Flavor)
	}
	if !s.Valid() {
		return Rect{}, degenerate("fix for area", s)
	}

	isw := 1 / s.W
	ish := 1 / s.H
	x := (r.X - r.W*0.5) * isw
	y := (r.Y - r.H*0.5) * ish
	w := r.W * isw
	h := r.H * ish
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	x = min(x, 1)
	y = min(y, 1)
	if x+w > 1 {
		w = 1 - x
	}
	if y+h > 1 {
		h = 1 - y
	}
	return Rect{X: x, Y: y, W: max(w, 0), H: max(h, 0), Flavor: AreaRelative}, nil
}

// ResolveFrame converts a FrameShort or FrameLong rect to surface pixels.
//
// The shorter surface side maps to 1 and the longer to long/short. Negative
// W or H mean "fill minus this magnitude" in that axis' unit; negative X or Y
// anchor to the far edge. FrameShort scales both axes by the shorter side,
// FrameLong scales each axis by its own length unless its extent is negative.
func (r Rect) ResolveFrame(s Surface) (Rect, error) {
	if r.Flavor != FrameShort && r.Flavor != FrameLong {
		return Rect{}, unsupported("resolve frame", r.Flavor)
	}
	sm := min(s.W, s.H)
	if sm <= 0 {
		return Rect{}, degenerate("resolve frame", s)
	}

	var uw, uh, sw, sh float64
	w, h := r.W, r.H
	if r.Flavor == FrameShort {
		uw, uh = s.W/sm, s.H/sm
		sw, sh = sm, sm
		if w < 0 {
			w += uw
		}
		if h < 0 {
			h += uh
		}
	} else {
		uw, uh = 1, 1
		sw, sh = s.W, s.H
		if w < 0 {
			uw = s.W / sm
			w += uw
			sw = sm
		}
		if h < 0 {
			uh = s.H / sm
			h += uh
			sh = sm
		}
	}

	return Rect{
		X:      (r.X + anchor(r.X, uw, w)) * sw,
		Y:      (r.Y + anchor(r.Y, uh, h)) * sh,
		W:      w * sw,
		H:      h * sh,
		Flavor: Absolute,
	}, nil
}

// anchor returns the offset from a frame origin to the rect center.
func anchor(pos, unit, extent float64) float64 {
	if pos < 0 {
		return unit - extent*0.5
	}
	return extent * 0.5
}

// ResizeByShortFactor grows or shrinks both extents by (factor-1) times the
// shorter extent, producing borders that stay symmetric for any aspect ratio.
// Only Absolute rects are accepted.
func (r Rect) ResizeByShortFactor(factor float64) (Rect, error) {
	if r.Flavor != Absolute {
		return Rect{}, unsupported("resize by short factor", r.Flavor)
	}
	amount := min(r.W, r.H) * (factor - 1)
	return Rect{X: r.X, Y: r.Y, W: r.W + amount, H: r.H + amount, Flavor: Absolute}, nil
}

// Nested resolves item to surface pixels through a chain of ancestor
// container rectangles, root first. The root resolves against s, each later
// ancestor against its parent, and item against the last ancestor.
func Nested(item Rect, chain []Rect, s Surface) (Rect, error) {
	if item.Flavor == Absolute {
		return item, nil
	}
	if len(chain) == 0 {
		return item.Absolute(s)
	}
	frame, err := chain[0].Absolute(s)
	if err != nil {
		return Rect{}, err
	}
	for _, c := range chain[1:] {
		if frame, err = c.AbsoluteIn(frame); err != nil {
			return Rect{}, err
		}
	}
	return item.AbsoluteIn(frame)
}
