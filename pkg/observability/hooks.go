// Package observability provides hooks for instrumenting the render
// pipeline without adding hard dependencies on any metrics backend.
//
// The package uses a simple hooks pattern: a hook interface with a no-op
// default, replaced at startup by whoever wants the events. Libraries call
// the accessor and emit; main registers.
//
//	observability.SetRenderHooks(&myHooks{})
//	...
//	observability.Render().OnVariationStart(ctx, i)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the word-cloud render pipeline.
type RenderHooks interface {
	// OnVariationStart fires before variation index is rasterized.
	OnVariationStart(ctx context.Context, index int)

	// OnVariationComplete fires after variation index finished (or failed).
	OnVariationComplete(ctx context.Context, index int, duration time.Duration, err error)

	// OnCacheHit fires when a rendered artifact was served from cache.
	OnCacheHit(ctx context.Context, key string)
}

// noopRenderHooks is the default implementation that does nothing.
type noopRenderHooks struct{}

func (noopRenderHooks) OnVariationStart(context.Context, int)                           {}
func (noopRenderHooks) OnVariationComplete(context.Context, int, time.Duration, error) {}
func (noopRenderHooks) OnCacheHit(context.Context, string)                              {}

var (
	mu          sync.RWMutex
	renderHooks RenderHooks = noopRenderHooks{}
)

// SetRenderHooks registers the hooks implementation. Call once at startup,
// before the pipeline runs.
func SetRenderHooks(h RenderHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		renderHooks = noopRenderHooks{}
		return
	}
	renderHooks = h
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	mu.RLock()
	defer mu.RUnlock()
	return renderHooks
}
