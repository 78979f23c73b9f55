package cache

import (
	"context"
	"time"

	"github.com/matzehuels/dockgrid/pkg/observability"
)

// Instrumented reports hits, misses and writes of an inner cache.
type Instrumented struct {
	Cache
	hooks observability.CacheHooks
}

// NewInstrumented wraps c. A nil hooks value reports nothing.
func NewInstrumented(c Cache, hooks observability.CacheHooks) *Instrumented {
	if hooks == nil {
		hooks = observability.NoopCacheHooks{}
	}
	return &Instrumented{Cache: c, hooks: hooks}
}

// Get reads from the inner cache and reports a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		c.hooks.OnCacheHit(ctx, KeyType(key))
	} else {
		c.hooks.OnCacheMiss(ctx, KeyType(key))
	}
	return data, ok, nil
}

// Set writes to the inner cache and reports the size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	c.hooks.OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

var _ Cache = (*Instrumented)(nil)
