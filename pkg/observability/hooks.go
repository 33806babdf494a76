// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about sorting, record store access, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// import a logging or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPagerHooks(&myPagerHooks{})
//	    observability.SetSourceHooks(&mySourceHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pager().OnSortStart(ctx, len(records), page, perPage)
//	// ... build and flatten ...
//	observability.Pager().OnSortComplete(ctx, emitted, visited, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pager Hooks
// =============================================================================

// PagerHooks receives events from sorting and rendering a page.
type PagerHooks interface {
	// Sort events
	OnSortStart(ctx context.Context, records, page, perPage int)
	OnSortComplete(ctx context.Context, emitted, visited int, duration time.Duration)

	// OnRepair is called for every record whose self-referencing parent was
	// cleared.
	OnRepair(ctx context.Context, id string)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Source Hooks
// =============================================================================

// SourceHooks receives events from record stores.
type SourceHooks interface {
	// OnLoad records a full load of a store.
	OnLoad(ctx context.Context, driver string, count int, duration time.Duration, err error)

	// OnSave records an upsert of count records.
	OnSave(ctx context.Context, driver string, count int, duration time.Duration, err error)
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

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPagerHooks is a no-op implementation of PagerHooks.
type NoopPagerHooks struct{}

func (NoopPagerHooks) OnSortStart(context.Context, int, int, int)                          {}
func (NoopPagerHooks) OnSortComplete(context.Context, int, int, time.Duration)             {}
func (NoopPagerHooks) OnRepair(context.Context, string)                                    {}
func (NoopPagerHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPagerHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopSourceHooks is a no-op implementation of SourceHooks.
type NoopSourceHooks struct{}

func (NoopSourceHooks) OnLoad(context.Context, string, int, time.Duration, error) {}
func (NoopSourceHooks) OnSave(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pagerHooks  PagerHooks  = NoopPagerHooks{}
	sourceHooks SourceHooks = NoopSourceHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetPagerHooks registers custom pager hooks.
// This should be called once at application startup before any sorting.
func SetPagerHooks(h PagerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pagerHooks = h
	}
}

// SetSourceHooks registers custom record store hooks.
func SetSourceHooks(h SourceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sourceHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pager returns the registered pager hooks.
func Pager() PagerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pagerHooks
}

// Source returns the registered record store hooks.
func Source() SourceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sourceHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pagerHooks = NoopPagerHooks{}
	sourceHooks = NoopSourceHooks{}
	cacheHooks = NoopCacheHooks{}
}
