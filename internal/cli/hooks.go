package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockgrid/pkg/observability"
)

// logHooks reports every engine event to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.Hooks = logHooks{}

func (h logHooks) OnRedistribute(container string, members, cols, rows int, animated bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("redistribute failed", "container", container, "members", members, "err", err)
		return
	}
	h.logger.Debug("redistributed", "container", container, "members", members,
		"grid", fmt.Sprintf("%dx%d", cols, rows), "animated", animated, "took", d)
}

func (h logHooks) OnDetach(item, container string) {
	h.logger.Debug("hook: detach", "item", item, "container", container)
}

func (h logHooks) OnDock(item, container string) {
	h.logger.Debug("hook: dock", "item", item, "container", container)
}

func (h logHooks) OnDockRejected(item, container string) {
	h.logger.Debug("hook: dock rejected", "item", item, "container", container)
}

func (h logHooks) OnCancelDetach(item, container string) {
	h.logger.Debug("hook: cancel detach", "item", item, "container", container)
}

func (h logHooks) OnReassign(item, container string) {
	h.logger.Debug("hook: reassign", "item", item, "container", container)
}

func (h logHooks) OnFit(textLen, fontHeight, lines, iterations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fit failed", "chars", textLen, "iterations", iterations, "err", err)
		return
	}
	h.logger.Debug("fitted", "chars", textLen, "font", fontHeight, "lines", lines,
		"iterations", iterations, "took", d)
}

func (h logHooks) OnFitReused(textLen int) {
	h.logger.Debug("fit reused", "chars", textLen)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
