// internal/app/system/timeouts/timeouts.go

// Package timeouts provides centralized timeout values for remote calls.
//
// These timeouts are used with context.WithTimeout around every call that
// leaves the process. Using centralized values keeps the budget for one
// inbound message consistent across the dispatcher, the grid store and the
// chat platform client.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// sensible defaults are used.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks against the grid backend
//   - Lookup: chat platform calls (profile lookup, reply send)
//   - Grid: one grid read or write
//   - Event: everything done for one inbound message
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultLookup = 5 * time.Second
	DefaultGrid   = 10 * time.Second
	DefaultEvent  = 45 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping   = DefaultPing
	lookup = DefaultLookup
	grid   = DefaultGrid
	event  = DefaultEvent
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Lookup returns the timeout for a single chat platform call.
func Lookup() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return lookup
}

// Grid returns the timeout for a single grid read or write.
func Grid() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return grid
}

// Event returns the overall budget for handling one inbound message.
func Event() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return event
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping   time.Duration
	Lookup time.Duration
	Grid   time.Duration
	Event  time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. This should be called during
// application startup before handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Lookup > 0 {
		lookup = cfg.Lookup
	}
	if cfg.Grid > 0 {
		grid = cfg.Grid
	}
	if cfg.Event > 0 {
		event = cfg.Event
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	lookup = DefaultLookup
	grid = DefaultGrid
	event = DefaultEvent
}

// Current returns the current timeout configuration as a Config struct.
// Useful for logging at startup.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:   ping,
		Lookup: lookup,
		Grid:   grid,
		Event:  event,
	}
}
