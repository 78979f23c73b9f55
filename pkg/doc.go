// Package pkg holds the dockgrid libraries.
//
// # Overview
//
// Dockgrid places items into grids inside containers on a resizable 2D
// surface, lets items be dragged from one container into another and sizes
// text to the boxes items end up in. The packages build on each other:
//
//  1. [geom] - coordinate flavors and conversions between them
//  2. [layout] - containers, items, grid packing and redistribution
//  3. [dock] - the registry: membership, docking, hit-testing, animation
//  4. [textfit] - the largest font height at which text fits a box
//  5. [fonts] - embedded faces measuring words for textfit
//  6. [scene] - TOML and YAML scene files building registries
//  7. [render] - snapshots of a registry as JSON, SVG, text or Graphviz
//
// Supporting packages are [errors] for coded errors, [observability] for
// event hooks and [cache] for persisted results.
//
// # Data Flow
//
//	scene file
//	     ↓
//	[scene] package (decode, validate, build)
//	     ↓
//	[dock] registry ←→ [layout] redistribution in [geom] coordinates
//	     ↓
//	[render] snapshot, labels fitted by [textfit] with [fonts]
//	     ↓
//	SVG/JSON/text/DOT output
//
// # Quick Start
//
//	s, err := scene.Load("examples/solitaire.toml")
//	if err != nil {
//	    return err
//	}
//	reg, err := s.Build()
//	if err != nil {
//	    return err
//	}
//
//	// Drag the ace onto the table.
//	if d := reg.BeginDrag(380, 670); d != nil {
//	    d.Move(400, 300)
//	    d.End(400, 300)
//	}
//
//	labels := render.NewLabeler(fonts.Default(), textfit.WithBalance())
//	svg := render.RenderSVG(render.Capture(reg, render.WithLabeler(labels)),
//	    render.WithFont(fonts.Default()))
package pkg
