// Package geom converts rectangles between the reference frames used by the
// layout engine.
//
// # Overview
//
// Geometry in dockgrid is always expressed as a [Rect]: a center point, full
// extents and a [Flavor] tag naming the frame the numbers live in. The same
// card can be described in surface pixels while it is drawn, in normalized
// units while it is dragged, and as a fraction of the surface while a
// container owns it. This package converts between those frames.
//
// # Flavors
//
//   - [Absolute]: raw surface pixels.
//   - [Normalized]: the shorter surface side spans [-1, 1]; shapes stay square
//     regardless of aspect ratio.
//   - [FrameShort], [FrameLong]: container placement relative to the surface,
//     with negative extents meaning "fill minus this much" and negative
//     positions anchoring to the far edge.
//   - [DockRelative]: fractions of the enclosing frame, center at (X, Y).
//   - [AreaRelative]: fractions of the enclosing frame, top-left at (X, Y).
//
// Only specific pairs convert. Anything else returns an error with code
// [errors.ErrCodeUnsupportedConversion] together with the zero Rect, and the
// caller is expected to skip drawing or hit-testing for that frame.
//
// # Value Semantics
//
// Rect is a plain value. Every conversion returns a new Rect and never
// modifies its receiver, so an item's current and pending rectangles cannot
// alias each other.
//
// # Nested Frames
//
// [Rect.AbsoluteIn] resolves a relative rectangle inside an absolute
// container rectangle instead of the whole surface. [Nested] composes that
// along a chain of ancestors, root first.
//
// [errors.ErrCodeUnsupportedConversion]: github.com/matzehuels/dockgrid/pkg/errors
package geom
