package dock

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
	"github.com/matzehuels/dockgrid/pkg/observability"
)

// Dockable is implemented by every item type the registry can place.
type Dockable interface {
	DockItem() *layout.Item
}

// maxNesting bounds parent chains when resolving nested items.
const maxNesting = 32

// Registry owns items in draw order, containers in registration order and
// the current surface. It is not safe for concurrent use; drive it from the
// goroutine that renders frames.
type Registry struct {
	items      []*layout.Item
	containers []*layout.Container
	surface    geom.Surface

	logger      *log.Logger
	layoutHooks observability.LayoutHooks
	dockHooks   observability.DockHooks
	now         func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for membership transitions. Messages are
// emitted at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHooks sets the redistribution and docking hooks. Nil arguments keep
// the no-op defaults.
func WithHooks(lh observability.LayoutHooks, dh observability.DockHooks) Option {
	return func(r *Registry) {
		if lh != nil {
			r.layoutHooks = lh
		}
		if dh != nil {
			r.dockHooks = dh
		}
	}
}

// WithClock replaces time.Now for animations started outside Tick.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSurface sets the initial surface size.
func WithSurface(w, h float64) Option {
	return func(r *Registry) { r.surface = geom.NewSurface(w, h) }
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:      log.New(io.Discard),
		layoutHooks: observability.NoopLayoutHooks{},
		dockHooks:   observability.NoopDockHooks{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Surface returns the current surface snapshot.
func (r *Registry) Surface() geom.Surface { return r.surface }

// Resize records a new surface size and redistributes every container
// without animation.
func (r *Registry) Resize(w, h float64) error {
	s := geom.NewSurface(w, h)
	if !s.Valid() {
		return errors.New(errors.ErrCodeDegenerateGeometry, "surface %gx%g", w, h)
	}
	r.surface = s
	return r.Settle()
}

// Settle redistributes every container immediately, without animation, and
// clears their dirty flags. Empty containers are skipped.
func (r *Registry) Settle() error {
	if !r.surface.Valid() {
		return errors.New(errors.ErrCodeDegenerateGeometry, "surface %gx%g", r.surface.W, r.surface.H)
	}
	for _, c := range r.containers {
		c.TakeDirty()
		members := r.Members(c)
		if len(members) == 0 {
			continue
		}
		if _, err := layout.Redistribute(c, members, r.surface, layout.WithHooks(r.layoutHooks)); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "redistribute %s", c.Name)
		}
	}
	return nil
}

// AddContainer registers c and returns its position in docking order.
// Registering the same container twice returns its existing position.
func (r *Registry) AddContainer(c *layout.Container) int {
	if i := slices.Index(r.containers, c); i >= 0 {
		return i
	}
	r.containers = append(r.containers, c)
	c.MarkDirty()
	return len(r.containers) - 1
}

// Containers returns the registered containers in docking order.
func (r *Registry) Containers() []*layout.Container { return slices.Clone(r.containers) }

// Container returns the registered container with the given name, or nil.
func (r *Registry) Container(name string) *layout.Container {
	for _, c := range r.containers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Add appends d to the draw order. It reports false if d is already present.
func (r *Registry) Add(d Dockable) bool {
	it := d.DockItem()
	if it == nil || slices.Contains(r.items, it) {
		return false
	}
	r.items = append(r.items, it)
	if c := it.Container(); c != nil {
		c.MarkDirty()
	}
	return true
}

// Remove deletes d from the registry and from its container.
func (r *Registry) Remove(d Dockable) bool {
	it := d.DockItem()
	i := slices.Index(r.items, it)
	if i < 0 {
		return false
	}
	r.items = slices.Delete(r.items, i, i+1)
	it.Evict()
	for _, other := range r.items {
		if other.Parent == it {
			other.Parent = nil
		}
	}
	return true
}

// Items returns all items in draw order, bottom first.
func (r *Registry) Items() []*layout.Item { return slices.Clone(r.items) }

// Item returns the item with the given id, or nil.
func (r *Registry) Item(id string) *layout.Item {
	for _, it := range r.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Members returns the registered members of c in draw order.
func (r *Registry) Members(c *layout.Container) []*layout.Item {
	var out []*layout.Item
	for _, it := range r.items {
		if it.Container() == c {
			out = append(out, it)
		}
	}
	return out
}

// ContainerRect resolves c to surface pixels.
func (r *Registry) ContainerRect(c *layout.Container) (geom.Rect, error) {
	return c.Rect.Absolute(r.surface)
}

// Resolve returns the item's rectangle in surface pixels, walking parent
// items for nested coordinates.
func (r *Registry) Resolve(d Dockable) (geom.Rect, error) {
	it := d.DockItem()
	var chain []geom.Rect
	for p := it.Parent; p != nil; p = p.Parent {
		if len(chain) == maxNesting {
			return geom.Rect{}, errors.New(errors.ErrCodeInternal, "item %s: parent chain deeper than %d", it.ID, maxNesting)
		}
		chain = append(chain, p.Rect)
	}
	slices.Reverse(chain)
	return geom.Nested(it.Rect, chain, r.surface)
}

// Select returns the top-most selectable item whose rectangle strictly
// contains (x, y), or nil.
func (r *Registry) Select(x, y float64) *layout.Item {
	for i := len(r.items) - 1; i >= 0; i-- {
		it := r.items[i]
		if it.DisableSelect {
			continue
		}
		rect, err := r.Resolve(it)
		if err != nil {
			continue
		}
		if rect.ContainsOpen(x, y) {
			return it
		}
	}
	return nil
}

func (r *Registry) moveToTail(it *layout.Item) {
	i := slices.Index(r.items, it)
	if i < 0 {
		return
	}
	r.items = append(slices.Delete(r.items, i, i+1), it)
}
