// Package render exports resolved frames of a docking registry.
//
// [Capture] walks a registry and produces a [Snapshot]: every container and
// item as a top-left pixel box, with item labels optionally fitted by a
// [Labeler]. Snapshots are plain data and are exported by
//
//   - [RenderJSON] for other tools and for caching,
//   - [RenderSVG] for documents, using the same face the labels were
//     measured with,
//   - [RenderText] for terminals, as a character [Canvas].
//
// A typical export:
//
//	labeler := render.NewLabeler(fonts.Default(), textfit.WithBalance())
//	snap := render.Capture(reg, render.WithLabeler(labeler))
//	svg := render.RenderSVG(snap, render.WithFont(fonts.Default()))
package render
