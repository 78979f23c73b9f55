// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. The layout core calls these hooks when
// containers are redistributed, items change membership, and text is fitted.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Hand implementations to the objects that emit events
//
// There is no global registry. A dock.Registry, a textfit.Block or a single
// Redistribute call receives its hooks as an option, so two engines in one
// process can report to different backends.
//
// # Usage
//
//	reg := dock.New(dock.WithHooks(myLayoutHooks, myDockHooks))
//	block := textfit.NewBlock(text, measurer, textfit.WithHooks(myFitHooks))
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from container redistribution.
type LayoutHooks interface {
	// OnRedistribute records one redistribution of a container. cols and rows
	// are zero when err is non-nil.
	OnRedistribute(container string, members, cols, rows int, animated bool, duration time.Duration, err error)
}

// =============================================================================
// Dock Hooks
// =============================================================================

// DockHooks receives membership transitions of items.
type DockHooks interface {
	// OnDetach records an item leaving a container.
	OnDetach(item, container string)

	// OnDock records an item accepted by a container.
	OnDock(item, container string)

	// OnDockRejected records a container's placement hook declining an item.
	OnDockRejected(item, container string)

	// OnCancelDetach records an item returning to its prior container.
	OnCancelDetach(item, container string)

	// OnReassign records an administrative assignment.
	OnReassign(item, container string)
}

// =============================================================================
// Fit Hooks
// =============================================================================

// FitHooks receives events from the text fitter.
type FitHooks interface {
	// OnFit records a completed font-height search.
	OnFit(textLen, fontHeight, lines, iterations int, duration time.Duration, err error)

	// OnFitReused records a fit answered from the block's own cache because
	// the box changed by less than a pixel.
	OnFitReused(textLen int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Hooks bundles every hook category for backends that implement all of them.
type Hooks interface {
	LayoutHooks
	DockHooks
	FitHooks
	CacheHooks
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRedistribute(string, int, int, int, bool, time.Duration, error) {}

// NoopDockHooks is a no-op implementation of DockHooks.
type NoopDockHooks struct{}

func (NoopDockHooks) OnDetach(string, string)       {}
func (NoopDockHooks) OnDock(string, string)         {}
func (NoopDockHooks) OnDockRejected(string, string) {}
func (NoopDockHooks) OnCancelDetach(string, string) {}
func (NoopDockHooks) OnReassign(string, string)     {}

// NoopFitHooks is a no-op implementation of FitHooks.
type NoopFitHooks struct{}

func (NoopFitHooks) OnFit(int, int, int, int, time.Duration, error) {}
func (NoopFitHooks) OnFitReused(int)                                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// Noop implements every hook category and does nothing.
type Noop struct {
	NoopLayoutHooks
	NoopDockHooks
	NoopFitHooks
	NoopCacheHooks
}

var _ Hooks = Noop{}
