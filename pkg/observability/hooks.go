// Package observability lets applications instrument lockfile scanning
// without tying the library to a metrics or tracing backend.
//
// Register hooks once at startup:
//
//	func main() {
//	    observability.SetScanHooks(&promScanHooks{})
//	    // ... run application
//	}
//
// The scanner then reports each walk and each parsed file:
//
//	observability.Scan().OnFileParsed(ctx, "web/yarn.lock", "yarn.lock", 412, elapsed, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// ScanHooks receives events from directory scans.
type ScanHooks interface {
	// OnScanStart is called before root is walked.
	OnScanStart(ctx context.Context, root string)

	// OnFileParsed is called once per claimed file, from the worker that
	// parsed it. Implementations must be safe for concurrent use.
	OnFileParsed(ctx context.Context, path, typ string, packages int, duration time.Duration, err error)

	// OnScanComplete is called when the scan finishes or fails.
	OnScanComplete(ctx context.Context, root string, files int, duration time.Duration, err error)
}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string) {}
func (NoopScanHooks) OnFileParsed(context.Context, string, string, int, time.Duration, error) {
}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}

var (
	scanHooks ScanHooks = NoopScanHooks{}
	hooksMu   sync.RWMutex
)

// SetScanHooks registers custom scan hooks. A nil h is ignored.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
}
