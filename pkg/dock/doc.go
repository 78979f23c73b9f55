// Package dock moves items between containers.
//
// # Registry
//
// A [Registry] is the context object every operation goes through. It owns
// the items in draw order, the containers in registration order and the
// surface size. Several registries can live in one process; nothing here is
// global.
//
// # Membership
//
// An item is docked in exactly one container or floating. The transitions
// are:
//
//	docked(A) --Detach--> floating(prior A) --AttemptDock--> docked(B)
//	                         |      \--AttemptDock rejected--> floating(prior A)
//	                         \--CancelDetach--> docked(A)
//
// [Registry.Reassign] moves an item directly, for setup and resets. Every
// operation reports success as a bool: a false from AttemptDock is a normal
// outcome and the caller usually follows it with CancelDetach. [Drag] wraps
// that sequence for a pointer session.
//
// # Frames
//
// Transitions only mark containers dirty. [Registry.Tick] redistributes the
// dirty containers with animation and moves items toward their pending
// targets; [Registry.Resize] and [Registry.Settle] redistribute immediately.
//
// # Coordinates
//
// Docked items hold DockRelative rectangles written by the layout engine.
// Detaching converts the rectangle to Normalized so [Registry.Translate]
// can move it by pixel deltas at any aspect ratio. [Registry.Resolve] and
// [Registry.Select] work in surface pixels.
package dock
