// Package observability provides hooks for tracing and metrics.
//
// Libraries in this module never import a telemetry backend directly. They
// report events through the hook interfaces below, which default to no-ops;
// the binary registers real implementations at startup (see
// internal/tracing for the OpenTelemetry one).
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetBuildHooks(myHooks)
//	observability.SetSourceHooks(myHooks)
//
// Libraries call hooks to emit events:
//
//	ctx = observability.Build().OnBuildStart(ctx, root)
//	// ... traverse ...
//	observability.Build().OnBuildComplete(ctx, root, nodes, failures, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from graph construction.
type BuildHooks interface {
	// OnBuildStart is called before a traversal rooted at root begins. The
	// returned context is used for the rest of the build, so implementations
	// may attach a span to it.
	OnBuildStart(ctx context.Context, root string) context.Context

	// OnLookupFailure is called when a single package lookup fails and the
	// builder substitutes an empty dependency list.
	OnLookupFailure(ctx context.Context, name string, err error)

	// OnBuildComplete is called once the traversal finishes.
	OnBuildComplete(ctx context.Context, root string, nodes, failures int, duration time.Duration)
}

// =============================================================================
// Source Hooks
// =============================================================================

// SourceHooks receives events from repository index loading.
type SourceHooks interface {
	// OnFetchStart is called before the index at location is read.
	OnFetchStart(ctx context.Context, location string) context.Context

	// OnFetchComplete is called with the number of parsed records or the error.
	OnFetchComplete(ctx context.Context, location string, packages int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(ctx context.Context, _ string) context.Context {
	return ctx
}

func (NoopBuildHooks) OnLookupFailure(context.Context, string, error) {}

func (NoopBuildHooks) OnBuildComplete(context.Context, string, int, int, time.Duration) {}

// NoopSourceHooks is a no-op implementation of SourceHooks.
type NoopSourceHooks struct{}

func (NoopSourceHooks) OnFetchStart(ctx context.Context, _ string) context.Context {
	return ctx
}

func (NoopSourceHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks  BuildHooks  = NoopBuildHooks{}
	sourceHooks SourceHooks = NoopSourceHooks{}
	hooksMu     sync.RWMutex
)

// SetBuildHooks registers custom build hooks. Nil is ignored.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetSourceHooks registers custom source hooks. Nil is ignored.
func SetSourceHooks(h SourceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sourceHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Source returns the registered source hooks.
func Source() SourceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sourceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	sourceHooks = NoopSourceHooks{}
}
