package layout

import (
	"slices"

	"github.com/matzehuels/dockgrid/pkg/geom"
)

// Container defaults.
const (
	DefaultRatio   = 1.0
	DefaultMargin  = 0.04
	DefaultPadding = 0.1
)

// Container is a layout region that owns a grid of member items.
type Container struct {
	Name string

	// Ratio is the target width/height of a cell.
	Ratio    float64
	Type     AreaType
	MinCount int // used by UniformMin
	// Margin and Padding are fractions of the container's shorter side and
	// of a cell respectively.
	Margin  float64
	Padding float64
	Flags   Flags

	// Rect places the container on the surface. Any flavor that converts to
	// absolute is accepted; redistribution turns it into AreaRelative.
	Rect geom.Rect

	// OnPlaceDock may veto a dock. For in-place containers the item's Key
	// already holds the prospective value when it is called.
	OnPlaceDock func(*Item) bool

	members []*Item
	dirty   bool
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithRatio sets the target cell aspect ratio.
func WithRatio(r float64) ContainerOption { return func(c *Container) { c.Ratio = r } }

// WithType sets the area type.
func WithType(t AreaType) ContainerOption { return func(c *Container) { c.Type = t } }

// WithMinCount sets the minimum count used by UniformMin.
func WithMinCount(n int) ContainerOption { return func(c *Container) { c.MinCount = n } }

// WithMargin sets the outer margin fraction.
func WithMargin(m float64) ContainerOption { return func(c *Container) { c.Margin = m } }

// WithPadding sets the per-cell padding fraction.
func WithPadding(p float64) ContainerOption { return func(c *Container) { c.Padding = p } }

// WithFlags sets the placement and docking flags.
func WithFlags(f Flags) ContainerOption { return func(c *Container) { c.Flags = f } }

// WithRect places the container.
func WithRect(r geom.Rect) ContainerOption { return func(c *Container) { c.Rect = r } }

// WithPlaceDock installs the dock validation hook.
func WithPlaceDock(fn func(*Item) bool) ContainerOption {
	return func(c *Container) { c.OnPlaceDock = fn }
}

// NewContainer returns a container covering the whole surface with the
// default ratio, margin and padding.
func NewContainer(name string, opts ...ContainerOption) *Container {
	c := &Container{
		Name:    name,
		Ratio:   DefaultRatio,
		Type:    MinimizeWaste,
		Margin:  DefaultMargin,
		Padding: DefaultPadding,
		Rect:    geom.Rect{W: 1, H: 1, Flavor: geom.AreaRelative},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Members returns a copy of the member list.
func (c *Container) Members() []*Item { return slices.Clone(c.members) }

// Len returns the number of members.
func (c *Container) Len() int { return len(c.members) }

// Has reports whether it is a member of c.
func (c *Container) Has(it *Item) bool { return slices.Contains(c.members, it) }

// Dockable reports whether floating items may dock into c.
func (c *Container) Dockable() bool { return c.Flags.Dockable() }

// Dirty reports whether membership changed since the last redistribution.
func (c *Container) Dirty() bool { return c.dirty }

// MarkDirty requests a redistribution.
func (c *Container) MarkDirty() { c.dirty = true }

// TakeDirty clears the dirty flag and returns its previous value.
func (c *Container) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

func (c *Container) remove(it *Item) {
	if i := slices.Index(c.members, it); i >= 0 {
		c.members = slices.Delete(c.members, i, i+1)
	}
}
