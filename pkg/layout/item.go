package layout

import (
	"time"

	"github.com/matzehuels/dockgrid/pkg/geom"
)

// Pending is an animated target: the item moves toward Target and lands on
// it at End.
type Pending struct {
	Target geom.Rect
	End    time.Time
}

// Item is anything placed by a container: a card, a button, a label.
//
// Rect is DockRelative while the item is a member and Normalized while it
// floats. Membership fields are private; change them through a dock.Registry
// (or the Join/Leave/Rejoin primitives below when driving the engine by hand)
// so member lists never disagree with the item's own view.
type Item struct {
	ID    string
	Label string

	Rect    geom.Rect
	Pending *Pending

	Key Key

	// Selected items occupy their whole cell, without padding.
	Selected bool
	// DisableSelect hides the item from hit-testing.
	DisableSelect bool

	// Parent makes Rect relative to the parent's resolved rectangle.
	Parent *Item

	container *Container
	prior     *Container
	savedKey  Key
}

// NewItem returns an item with the given id and rectangle.
func NewItem(id string, r geom.Rect) *Item {
	return &Item{ID: id, Label: id, Rect: r}
}

// DockItem returns the item itself.
func (it *Item) DockItem() *Item { return it }

// Container returns the item's container, or nil while floating.
func (it *Item) Container() *Container { return it.container }

// PriorContainer returns the container a floating item left, or nil.
func (it *Item) PriorContainer() *Container { return it.prior }

// Floating reports whether the item has no container.
func (it *Item) Floating() bool { return it.container == nil }

// SavedKey returns the key stashed by an in-place dock or detach.
func (it *Item) SavedKey() Key { return it.savedKey }

// Join moves the item into c, leaving its current container, and forgets
// any prior container. Both containers are marked dirty.
func (it *Item) Join(c *Container) {
	if it.container != nil && it.container != c {
		it.container.remove(it)
		it.container.dirty = true
	}
	if it.container != c {
		c.members = append(c.members, it)
		it.container = c
	}
	it.prior = nil
	c.dirty = true
}

// Leave removes the item from its container, remembers that container as
// the prior one and returns it. It returns nil when already floating.
func (it *Item) Leave() *Container {
	c := it.container
	if c == nil {
		return nil
	}
	c.remove(it)
	c.dirty = true
	it.container = nil
	it.prior = c
	return c
}

// Rejoin returns a floating item to its prior container. It reports false
// when there is no prior container or the item already sits in it.
func (it *Item) Rejoin() bool {
	p := it.prior
	if p == nil || it.container == p {
		return false
	}
	if it.container != nil {
		it.container.remove(it)
		it.container.dirty = true
	}
	p.members = append(p.members, it)
	p.dirty = true
	it.container = p
	it.prior = nil
	return true
}

// Evict removes the item from its container without remembering it.
func (it *Item) Evict() {
	if it.container != nil {
		it.container.remove(it)
		it.container.dirty = true
	}
	it.container = nil
	it.prior = nil
}

// SwapKeys exchanges Key and the saved key.
func (it *Item) SwapKeys() { it.Key, it.savedKey = it.savedKey, it.Key }

// StashKey stores k as the saved key.
func (it *Item) StashKey(k Key) { it.savedKey = k }
