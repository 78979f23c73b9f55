package layout

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/observability"
)

// AnimationDuration is how long an animated redistribution takes to land.
const AnimationDuration = 300 * time.Millisecond

type options struct {
	animate bool
	now     time.Time
	hooks   observability.LayoutHooks
}

// Option configures Redistribute.
type Option func(*options)

// WithAnimation stores targets as pending rectangles ending
// AnimationDuration after now instead of applying them.
func WithAnimation(now time.Time) Option {
	return func(o *options) {
		o.animate = true
		o.now = now
	}
}

// WithHooks reports the redistribution to h.
func WithHooks(h observability.LayoutHooks) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = h
		}
	}
}

// Redistribute computes the grid for c and assigns every member a
// DockRelative target rectangle.
//
// Members are sorted by key first. A container rectangle that is not yet
// AreaRelative is resolved and clamped to the surface, and stays that way.
// An empty member list returns ErrCodeEmptyContainer and a container or
// surface without area returns ErrCodeDegenerateGeometry; in both cases
// neither the container nor any item is modified.
func Redistribute(c *Container, members []*Item, s geom.Surface, opts ...Option) (Grid, error) {
	o := options{hooks: observability.NoopLayoutHooks{}}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()
	g, err := redistribute(c, members, s, o)
	o.hooks.OnRedistribute(c.Name, len(members), g.Cols, g.Rows, o.animate, time.Since(start), err)
	return g, err
}

func redistribute(c *Container, members []*Item, s geom.Surface, o options) (Grid, error) {
	total := len(members)
	if total == 0 {
		return Grid{}, errors.New(errors.ErrCodeEmptyContainer, "container %q has no members", c.Name)
	}
	if !s.Valid() {
		return Grid{}, errors.New(errors.ErrCodeDegenerateGeometry, "surface %gx%g", s.W, s.H)
	}

	area := c.Rect
	if area.Flavor != geom.AreaRelative {
		abs, err := area.Absolute(s)
		if err != nil {
			return Grid{}, err
		}
		if area, err = abs.FixForArea(s); err != nil {
			return Grid{}, err
		}
	}
	sw, sh := area.W*s.W, area.H*s.H
	if !(sw > 0) || !(sh > 0) {
		return Grid{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"container %q spans %gx%g pixels", c.Name, sw, sh)
	}
	c.Rect = area

	items := slices.Clone(members)
	SortMembers(items)

	count := total
	if c.Type == UniformMin && count < c.MinCount {
		count = c.MinCount
	}

	// Margins scale with the shorter side so borders look even.
	factorW, factorH := 1.0, 1.0
	if sw < sh {
		factorH = sw / sh
	} else {
		factorW = sh / sw
	}
	edge := func(suppressed bool, factor float64) float64 {
		if suppressed {
			return 0
		}
		return c.Margin * factor * 0.5
	}
	left := edge(c.Flags.NoMarginLeft, factorW)
	right := edge(c.Flags.NoMarginRight, factorW)
	top := edge(c.Flags.NoMarginTop, factorH)
	bottom := edge(c.Flags.NoMarginBottom, factorH)
	marginW, marginH := left+right, top+bottom

	ratio := c.Ratio
	if !(ratio > 0) {
		ratio = DefaultRatio
	}
	pad := c.Padding
	if ratio < 1 {
		pad *= ratio
	}
	cellRatio := (ratio + pad) / (1 + pad)
	g := Pack(sw*(1-marginW), sh*(1-marginH), cellRatio, count)

	var cellW, cellH, padW, padH float64
	switch c.Type {
	case Fill, MinimizeWaste:
		if c.Type == Fill {
			if g.Cols > g.Rows {
				g.Cols = ceilDiv(count, g.Rows)
			} else {
				g.Rows = ceilDiv(count, g.Cols)
			}
		}
		cellW = (1 - marginW) / float64(g.Cols)
		cellH = (1 - marginH) / float64(g.Rows)
		// Full padding on the smaller pixel side, proportional on the other.
		pxW, pxH := cellW*sw, cellH*sh
		if pxW < pxH {
			padW, padH = c.Padding, c.Padding*pxW/pxH
		} else {
			padW, padH = c.Padding*pxH/pxW, c.Padding
		}
	default:
		cellW = g.CellW / sw
		cellH = g.CellH / sh
		padW = 1 - ratio/(ratio+pad)
		padH = 1 - 1/(1+pad)
	}

	flipW, flipH := 1.0, 1.0
	offsetW, offsetH := left, top
	if c.Flags.CenterH {
		usedX := g.Cols
		if g.Rows == 1 {
			usedX = count
		}
		extra := ((1 - marginW) - float64(usedX)*cellW) * 0.5
		offsetW += extra
		right += extra
	}
	if c.Flags.CenterV {
		usedY := ceilDiv(count, g.Cols)
		extra := ((1 - marginH) - float64(usedY)*cellH) * 0.5
		offsetH += extra
		bottom += extra
	}
	if c.Flags.FlipH {
		flipW, offsetW = -1, 1-right
	}
	if c.Flags.FlipV {
		flipH, offsetH = -1, 1-bottom
	}

	var end time.Time
	if o.animate {
		end = o.now.Add(AnimationDuration)
	}

	index := 0
	for j := 0; j < g.Rows && index < total; j++ {
		rowCols, cw, pw := g.Cols, cellW, padW
		if c.Type == Fill {
			if j == 0 && g.Rows*g.Cols > count {
				rowCols = max(count-(g.Rows-1)*g.Cols, 1)
			}
			cw = (1 - marginW) / float64(rowCols)
			pw = padW * float64(rowCols) / float64(g.Cols)
		}

		for i := 0; i < rowCols && index < total; i++ {
			it := items[index]
			index++

			fw, fh := cw*(1-pw), cellH*(1-padH)
			if it.Selected {
				fw, fh = cw, cellH
			}
			target := geom.Rect{
				X:      (cw*flipW*(float64(i)+0.5)+offsetW)*area.W + area.X,
				Y:      (cellH*flipH*(float64(j)+0.5)+offsetH)*area.H + area.Y,
				W:      fw * area.W,
				H:      fh * area.H,
				Flavor: geom.DockRelative,
			}

			if o.animate {
				if r, err := it.Rect.FixForDocking(s); err == nil {
					it.Rect = r
				}
				it.Pending = &Pending{Target: target, End: end}
			} else {
				it.Pending = nil
				it.Rect = target
			}
		}
	}

	if c.Flags.DockInPlace && (g.Cols == 1 || g.Rows == 1) {
		for _, it := range items {
			r := it.Rect
			if it.Pending != nil {
				r = it.Pending.Target
			}
			it.Key = InPlaceKey(c.Flags, geom.Rect{W: sw, H: sh}, s, r.X*s.W, r.Y*s.H)
		}
	}

	g.CellW, g.CellH, g.PadW, g.PadH = cellW, cellH, padW, padH
	return g, nil
}

// InPlaceKey is the ordering key of a point (in surface pixels) inside an
// in-place container whose absolute extent is frame: the point's offset from
// the surface center along the container's long axis as a fraction of the
// surface, negated when that axis is flipped. Layout and docking share it so
// a dropped item sorts among the members by where it was released.
func InPlaceKey(f Flags, frame geom.Rect, s geom.Surface, x, y float64) Key {
	if !s.Valid() {
		return Key{}
	}
	if frame.W > frame.H {
		return NumberKey(sign(f.FlipH) * (x/s.W - 0.5))
	}
	return NumberKey(sign(f.FlipV) * (y/s.H - 0.5))
}

func sign(flip bool) float64 {
	if flip {
		return -1
	}
	return 1
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return int(math.Ceil(float64(a) / float64(b)))
}
