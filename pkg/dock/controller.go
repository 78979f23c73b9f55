package dock

import (
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

// Detach takes d out of its container so it can be dragged. The item's
// rectangle becomes Normalized, it moves to the top of the draw order and
// its former container is marked dirty. It reports false if d was floating
// or its rectangle cannot be normalized.
func (r *Registry) Detach(d Dockable) bool {
	it := d.DockItem()
	c := it.Container()
	if c == nil {
		return false
	}
	rect, err := it.Rect.Normalized(r.surface)
	if err != nil {
		r.logger.Debug("detach failed", "item", it.ID, "container", c.Name, "err", err)
		return false
	}

	it.Leave()
	it.Rect = rect
	it.Pending = nil
	r.moveToTail(it)
	if c.Flags.DockInPlace {
		it.SwapKeys()
	}

	r.logger.Debug("detached", "item", it.ID, "container", c.Name)
	r.dockHooks.OnDetach(it.ID, c.Name)
	return true
}

// AttemptDock offers a floating item to every dockable container whose
// rectangle contains the pointer (x, y), in registration order.
//
// An in-place container gives the item a prospective key from the pointer
// position first. A container's OnPlaceDock hook may decline; the key is
// then restored and the next candidate is tried. On acceptance the old key
// is saved, the prior container is forgotten and the new container is
// marked dirty. It reports false when the item is docked or nobody accepts.
func (r *Registry) AttemptDock(d Dockable, x, y float64) bool {
	it := d.DockItem()
	if !it.Floating() {
		return false
	}

	for _, c := range r.containers {
		if !c.Dockable() {
			continue
		}
		frame, err := r.ContainerRect(c)
		if err != nil || !frame.Contains(x, y) {
			continue
		}

		old := it.Key
		if c.Flags.DockInPlace {
			it.Key = layout.InPlaceKey(c.Flags, frame, r.surface, x, y)
		}
		if c.OnPlaceDock != nil && !c.OnPlaceDock(it) {
			it.Key = old
			r.logger.Debug("dock rejected", "item", it.ID, "container", c.Name)
			r.dockHooks.OnDockRejected(it.ID, c.Name)
			continue
		}
		if c.Flags.DockInPlace {
			it.StashKey(old)
		}

		it.Join(c)
		r.logger.Debug("docked", "item", it.ID, "container", c.Name, "key", it.Key)
		r.dockHooks.OnDock(it.ID, c.Name)
		return true
	}
	return false
}

// CancelDetach returns a floating item to the container it was detached
// from. It reports false if the item was never detached or has since been
// docked elsewhere.
func (r *Registry) CancelDetach(d Dockable) bool {
	it := d.DockItem()
	prior := it.PriorContainer()
	if prior == nil || it.Container() == prior {
		return false
	}
	if prior.Flags.DockInPlace {
		it.SwapKeys()
	}
	if !it.Rejoin() {
		return false
	}

	r.logger.Debug("detach cancelled", "item", it.ID, "container", prior.Name)
	r.dockHooks.OnCancelDetach(it.ID, prior.Name)
	return true
}

// Reassign moves d into c unconditionally, forgetting any prior container.
// It is meant for setup and resets. c must be registered.
func (r *Registry) Reassign(d Dockable, c *layout.Container) bool {
	it := d.DockItem()
	if c == nil || r.Container(c.Name) != c {
		return false
	}
	it.Join(c)

	r.logger.Debug("reassigned", "item", it.ID, "container", c.Name)
	r.dockHooks.OnReassign(it.ID, c.Name)
	return true
}

// Translate moves a floating item by a pixel delta. It reports false for
// docked items, whose position belongs to their container.
func (r *Registry) Translate(d Dockable, dx, dy float64) bool {
	it := d.DockItem()
	if !it.Floating() || it.Rect.Flavor != geom.Normalized {
		return false
	}
	ndx, ndy := r.surface.NormalizedDelta(dx, dy)
	it.Rect.X += ndx
	it.Rect.Y += ndy
	return true
}
