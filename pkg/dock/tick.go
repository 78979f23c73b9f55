package dock

import (
	"time"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

// Tick advances one frame. Dirty containers are redistributed with
// animation first, then every item with a pending target moves toward it.
// Tick reports whether anything changed and the frame should be redrawn.
func (r *Registry) Tick(now time.Time) bool {
	redraw := false

	for _, c := range r.containers {
		if !c.TakeDirty() {
			continue
		}
		redraw = true
		members := r.Members(c)
		if len(members) == 0 {
			continue
		}
		_, err := layout.Redistribute(c, members, r.surface,
			layout.WithAnimation(now), layout.WithHooks(r.layoutHooks))
		switch {
		case err == nil, errors.Is(err, errors.ErrCodeEmptyContainer):
		case errors.Recoverable(err):
			r.logger.Debug("redistribute skipped", "container", c.Name, "err", err)
		default:
			r.logger.Error("redistribute failed", "container", c.Name, "err", err)
		}
	}

	for _, it := range r.items {
		if it.Pending == nil || it.Rect.Flavor != geom.DockRelative {
			continue
		}
		target := it.Pending.Target
		span := it.Pending.End.Sub(now)
		if span <= 0 || target.Flavor != it.Rect.Flavor {
			it.Rect = target
			it.Pending = nil
			redraw = true
			continue
		}
		// Ease toward the target: the remaining fraction of the animation
		// weights the current rectangle.
		f0 := min(float64(span)/float64(layout.AnimationDuration), 1)
		f1 := 1 - f0
		it.Rect = geom.Rect{
			X:      it.Rect.X*f0 + target.X*f1,
			Y:      it.Rect.Y*f0 + target.Y*f1,
			W:      it.Rect.W*f0 + target.W*f1,
			H:      it.Rect.H*f0 + target.H*f1,
			Flavor: geom.DockRelative,
		}
		redraw = true
	}
	return redraw
}

// Animating reports whether any item still has a pending target or any
// container waits for redistribution.
func (r *Registry) Animating() bool {
	for _, c := range r.containers {
		if c.Dirty() {
			return true
		}
	}
	for _, it := range r.items {
		if it.Pending != nil {
			return true
		}
	}
	return false
}
