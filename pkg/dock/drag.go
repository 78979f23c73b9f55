package dock

import "github.com/matzehuels/dockgrid/pkg/layout"

// Drag is one pointer session over a registry: press picks and detaches an
// item, moves translate it, release docks it or sends it back.
type Drag struct {
	reg      *Registry
	item     *layout.Item
	x, y     float64
	detached bool
}

// BeginDrag selects the top-most item under (x, y) and detaches it from its
// container. It returns nil when nothing is under the pointer.
func (r *Registry) BeginDrag(x, y float64) *Drag {
	it := r.Select(x, y)
	if it == nil {
		return nil
	}
	d := &Drag{reg: r, item: it, x: x, y: y}
	d.detached = r.Detach(it)
	if !d.detached {
		r.moveToTail(it)
	}
	return d
}

// Item returns the dragged item.
func (d *Drag) Item() *layout.Item { return d.item }

// Move translates the item by the pointer delta since the last event.
func (d *Drag) Move(x, y float64) bool {
	dx, dy := x-d.x, y-d.y
	d.x, d.y = x, y
	return d.reg.Translate(d.item, dx, dy)
}

// End releases the item at (x, y). It docks into the first accepting
// container; otherwise an item this drag detached returns to its prior
// container. End reports whether the item docked somewhere new.
func (d *Drag) End(x, y float64) bool {
	d.Move(x, y)
	if d.reg.AttemptDock(d.item, x, y) {
		return true
	}
	if d.detached {
		d.reg.CancelDetach(d.item)
	}
	return false
}
