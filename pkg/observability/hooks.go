// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about drag gestures, launches and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine dependency-free from observability frameworks
//   - Allows different backends (log files, Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGestureHooks(&myGestureHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Gesture().OnDragStart(id, start)
//	// ... pointer moves ...
//	observability.Gesture().OnDragCommit(id, start, committed)
//
// Gesture hooks are called synchronously on the host's event loop and must
// not block.
package observability

import (
	"sync"
	"time"

	"github.com/matzehuels/folio/pkg/canvas"
)

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives events from the drag controller and the activation
// dispatcher.
type GestureHooks interface {
	// Drag events
	OnDragStart(id string, start canvas.Point)
	OnDragCommit(id string, from, to canvas.Point)
	OnDragCancel(id string)

	// Launch events
	OnLaunch(id string)
	OnLaunchSuppressed(id string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served HTTP request.
	OnRequest(method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnDragStart(string, canvas.Point)                {}
func (NoopGestureHooks) OnDragCommit(string, canvas.Point, canvas.Point) {}
func (NoopGestureHooks) OnDragCancel(string)                             {}
func (NoopGestureHooks) OnLaunch(string)                                 {}
func (NoopGestureHooks) OnLaunchSuppressed(string)                       {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gestureHooks GestureHooks = NoopGestureHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetGestureHooks registers custom gesture hooks.
// This should be called once at application startup before any desktop is built.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gestureHooks = NoopGestureHooks{}
	httpHooks = NoopHTTPHooks{}
}
