// Package observability provides hooks for instrumenting layout runs and
// live mutations.
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by the application, never by library code, which
// keeps the engine free of hard dependencies on any metrics or tracing
// backend:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... build diagrams
//	}
//
// The engine emits events as it works:
//
//	observability.Layout().OnLayoutStart(columnCount)
//	// ... classify, group, place bars ...
//	observability.Layout().OnLayoutComplete(groups, panels, duration, err)
package observability

import (
	"sync"
	"time"
)

// LayoutHooks receives events from diagram construction and bar placement.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a layout run.
	OnLayoutStart(columns int)

	// OnLayoutComplete records the end of a layout run.
	OnLayoutComplete(groups, panels int, duration time.Duration, err error)

	// OnBarPlaced records a group bar being computed and placed.
	OnBarPlaced(group string)

	// OnBarRemoved records a group bar being removed.
	OnBarRemoved(group string)
}

// MutationHooks receives events from live re-layout operations.
type MutationHooks interface {
	// OnShow records a column becoming visible.
	OnShow(group, column string)

	// OnHide records a column being hidden.
	OnHide(group, column string)

	// OnReorder records a group's members being rearranged.
	OnReorder(group string, order []string)

	// OnResize records a new canvas size in pixels.
	OnResize(width, height float64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(int)                               {}
func (NoopLayoutHooks) OnLayoutComplete(int, int, time.Duration, error) {}
func (NoopLayoutHooks) OnBarPlaced(string)                              {}
func (NoopLayoutHooks) OnBarRemoved(string)                             {}

// NoopMutationHooks is a no-op implementation of MutationHooks.
type NoopMutationHooks struct{}

func (NoopMutationHooks) OnShow(string, string)      {}
func (NoopMutationHooks) OnHide(string, string)      {}
func (NoopMutationHooks) OnReorder(string, []string) {}
func (NoopMutationHooks) OnResize(float64, float64)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	mutationHooks MutationHooks = NoopMutationHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetMutationHooks registers custom mutation hooks.
// This should be called once at application startup before any mutations.
func SetMutationHooks(h MutationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		mutationHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Mutation returns the registered mutation hooks.
func Mutation() MutationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return mutationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	mutationHooks = NoopMutationHooks{}
}
