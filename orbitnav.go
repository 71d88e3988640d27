package orbitnav

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for screen positions, deltas, and pinch centers.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for world-space camera targets and offsets.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// PointerEventKind identifies the phase of a pointer event.
type PointerEventKind uint8

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerType identifies the device that produced a pointer event.
// Only touch events drive the gesture classifier; mouse navigation is
// left to the host's native camera controls.
type PointerType uint8

const (
	PointerTypeMouse PointerType = iota
	PointerTypeTouch
)

// PointerEvent is a single raw input event. Events for one pointer ID
// arrive strictly ordered down → move* → up/cancel; no ordering is
// assumed across different IDs.
type PointerEvent struct {
	Kind   PointerEventKind
	ID     int
	Type   PointerType
	X, Y   float64
	Button int
	Time   time.Time
}

// --- Small math helpers ---

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(v, max))
}

// lerp interpolates from a toward b by factor t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec3 interpolates each component of a toward b by factor t.
func lerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: lerp(a.X, b.X, t),
		Y: lerp(a.Y, b.Y, t),
		Z: lerp(a.Z, b.Z, t),
	}
}

// hypot returns the length of (dx, dy).
func hypot(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}
