// Package orbitnav classifies multi-touch input into camera gestures
// and keeps an orbit camera's pose inside operator-defined bounds.
//
// The package has two tightly coupled halves. The gesture side turns a
// raw pointer-event stream into exactly one of tap, double tap, pan, or
// pinch: ambiguous input waits out a settle delay, gesture kinds are
// exclusive while locked, a debounce window lets a briefly interrupted
// gesture resume without flicker, and noisy touch samples are smoothed
// with short moving averages. The constraint side clamps the resulting
// pose (azimuth, elevation, distance) to a configurable region on every
// view-changed notification, converts between internal radians and
// user-facing degree/offset values, and round-trips the region through
// URL query parameters.
//
// # Quick start
//
// Create a camera and a [Navigator], feed it touch input, and call
// Update each frame. With [Ebitengine] the polling is packaged as a
// [TouchSource]:
//
//	cam := orbitnav.NewOrbitCamera()
//	nav := orbitnav.New(cam, orbitnav.DefaultConfig())
//	src := orbitnav.NewTouchSource(nav)
//
//	// in ebiten.Game Update:
//	src.Update()
//
// Hosts without ebiten feed [PointerEvent] values into
// [Navigator.HandlePointerEvent] and call [Navigator.Update] directly.
//
// # Limits
//
// The [Limits] engine owns the bound region. Setters take user-facing
// units and silently clamp invalid input:
//
//	lim := nav.Limits()
//	lim.SetVerticalLimitsUpDown(true, -80, 80)
//	lim.SetHorizontalLimitsAngleOffset(true, 90, 45)
//	lim.SetDistanceLimits(true, 2, 50)
//	query := lim.URLValues().Encode()
//
// None of the types are safe for concurrent use: call everything from
// the same goroutine that runs the frame loop.
//
// [Ebitengine]: https://ebitengine.org
package orbitnav
