// Package location abstracts the device position and step source. The
// engine treats an unavailable location as "generation paused" and never
// blocks on a provider call.
package location

import "pizzadash/geo"

// Provider supplies the player's current position.
//
// Current returns ok=false while no fix is available; callers skip
// location-dependent work instead of waiting.
type Provider interface {
	Current() (geo.Point, bool)
}

// Watcher is implemented by providers that push continuous updates
type Watcher interface {
	Provider

	// Watch registers a callback invoked on every position change.
	// The returned func unsubscribes.
	Watch(fn func(geo.Point)) (cancel func())
}

// Static is a fixed-position provider for tests and headless runs
type Static struct {
	Point geo.Point
}

func (s Static) Current() (geo.Point, bool) {
	return s.Point, true
}

// Unavailable is a provider with no fix, for exercising the paused path
type Unavailable struct{}

func (Unavailable) Current() (geo.Point, bool) {
	return geo.Point{}, false
}
