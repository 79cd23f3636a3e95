// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module report what they do through small hook
// interfaces instead of depending on a metrics or tracing backend. The
// defaults do nothing; an application registers its own implementations
// once at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEnumerationHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Enumeration().OnEnumerateStart(ctx, hash, degree)
//	// ... search ...
//	observability.Enumeration().OnEnumerateComplete(ctx, hash, degree, count, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Enumeration Hooks
// =============================================================================

// EnumerationHooks receives events from the enumeration pipeline.
type EnumerationHooks interface {
	// OnEnumerateStart is called before a search runs. presentation is a
	// content hash of the input.
	OnEnumerateStart(ctx context.Context, presentation string, degree int)

	// OnEnumerateComplete is called when a search ends, with the number of
	// covers found.
	OnEnumerateComplete(ctx context.Context, presentation string, degree, covers int, duration time.Duration, err error)

	// OnRenderComplete is called after a cover has been rendered.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
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

	// OnCacheSet records a cache write. size is the number of covers for
	// "covers" entries and the byte count for "artifact" entries.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEnumerationHooks is a no-op implementation of EnumerationHooks.
type NoopEnumerationHooks struct{}

func (NoopEnumerationHooks) OnEnumerateStart(context.Context, string, int) {}
func (NoopEnumerationHooks) OnEnumerateComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopEnumerationHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	enumerationHooks EnumerationHooks = NoopEnumerationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetEnumerationHooks registers custom enumeration hooks. A nil h is
// ignored.
func SetEnumerationHooks(h EnumerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		enumerationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Enumeration returns the registered enumeration hooks.
func Enumeration() EnumerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return enumerationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	enumerationHooks = NoopEnumerationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
