package orbitnav

import (
	"math"

	"github.com/tanema/gween"
)

// PickFunc resolves a screen position to a world point, typically by
// ray-casting into the host's scene. distance is from the current
// camera position to the point; ok is false when nothing was hit.
type PickFunc func(x, y float64) (point Vec3, distance float64, ok bool)

// flyAnim holds the active flythrough tweens for radius and the three
// target components.
type flyAnim struct {
	tweenR *gween.Tween
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
}

// Manipulator converts classified gesture deltas into camera pose
// deltas. Every mutation ends with a view-changed notification, so the
// constraint engine clamps the pose within the same synchronous call
// chain — manipulation always precedes clamping.
type Manipulator struct {
	cam    *OrbitCamera
	limits *Limits
	cfg    Config

	pick PickFunc
	fly  *flyAnim

	// OnFlyComplete fires when a flythrough finishes; the classifier's
	// Animating lock is released through it.
	OnFlyComplete func()
}

// NewManipulator creates a manipulator driving cam under the given
// limits. Zero config fields take their defaults.
func NewManipulator(cam *OrbitCamera, limits *Limits, cfg Config) *Manipulator {
	return &Manipulator{
		cam:    cam,
		limits: limits,
		cfg:    cfg.withDefaults(),
	}
}

// SetPickFunc installs the scene picking callback used by flythroughs.
// Without one, double taps are ignored.
func (m *Manipulator) SetPickFunc(fn PickFunc) {
	m.pick = fn
}

// Flying reports whether a flythrough animation is in progress.
func (m *Manipulator) Flying() bool {
	return m.fly != nil
}

// Rotate applies azimuth and elevation deltas in radians. Hosts route
// their own mouse or keyboard rotation through this so it passes the
// same clamp chain as touch input.
func (m *Manipulator) Rotate(dAlpha, dBeta float64) {
	m.cam.Alpha += dAlpha
	m.cam.Beta += dBeta
	m.cam.NotifyViewChanged()
}

// Dolly moves the camera along the view axis by delta world units,
// positive moving away from the target.
func (m *Manipulator) Dolly(delta float64) {
	m.cam.Radius += delta
	m.cam.NotifyViewChanged()
}

// HandlePan applies a one-finger pan step.
func (m *Manipulator) HandlePan(e PanContext) {
	m.applyPan(e.DeltaX, e.DeltaY, 1)
}

// HandlePinch applies a pinch step: the smoothed distance change drives
// zoom, and center movement drives an auxiliary pan at reduced
// sensitivity, so a two-finger drag pans and zooms simultaneously.
func (m *Manipulator) HandlePinch(e PinchContext) {
	if e.DistanceDelta != 0 {
		// Scaling by radius/10 keeps zoom speed proportional to how far
		// out the camera sits.
		zoomDelta := e.DistanceDelta * m.cfg.PinchSensitivity * (m.cam.Radius / 10)
		m.cam.Radius = lerp(m.cam.Radius, m.cam.Radius-zoomDelta, m.cfg.SmoothingFactor)
		m.cam.NotifyViewChanged()
	}
	if e.CenterDeltaX != 0 || e.CenterDeltaY != 0 {
		m.applyPan(e.CenterDeltaX, e.CenterDeltaY, m.cfg.PinchPanMultiplier)
	}
}

// applyPan converts a screen-space delta into a world-space target
// offset: the camera-space vector (dx·speed, −dy·speed, 0) rotated
// around the up axis by the current azimuth. The target approaches the
// goal by the smoothing lerp, never a hard jump.
func (m *Manipulator) applyPan(dx, dy float64, multiplier float64) {
	if m.limits != nil && !m.limits.PanningEnabled() {
		return
	}
	speed := m.cfg.PanSensitivity * m.cam.Radius * multiplier
	vx := dx * speed
	vy := -dy * speed

	sinA, cosA := math.Sincos(m.cam.Alpha)
	goal := m.cam.Target.Add(Vec3{
		X: vx * cosA,
		Y: vy,
		Z: -vx * sinA,
	})
	m.cam.Target = lerpVec3(m.cam.Target, goal, m.cfg.SmoothingFactor)
	m.cam.NotifyViewChanged()
}

// HandleDoubleTap starts a flythrough toward the point picked at the
// tap position, using the conservative touch distance multiplier.
// Returns false when nothing could be picked; callers should release
// the Animating lock immediately in that case.
func (m *Manipulator) HandleDoubleTap(e DoubleTapContext) bool {
	return m.FlyTo(e.X, e.Y, m.cfg.TouchFlyMultiplier)
}

// FlyToClick starts a flythrough from a desktop double click, which
// uses the larger distance multiplier.
func (m *Manipulator) FlyToClick(x, y float64) bool {
	return m.FlyTo(x, y, m.cfg.ClickFlyMultiplier)
}

// FlyTo picks the scene at (x, y) and animates target and radius from
// their current values to the picked point and
// clamp(distance·multiplier, radiusMin, radiusMax) over the configured
// fixed duration.
func (m *Manipulator) FlyTo(x, y float64, multiplier float64) bool {
	if m.pick == nil {
		return false
	}
	point, distance, ok := m.pick(x, y)
	if !ok {
		return false
	}

	goalRadius := distance * multiplier
	if m.limits != nil {
		goalRadius = m.limits.ClampRadius(goalRadius)
	}

	dur := float32(m.cfg.FlyDuration.Seconds())
	m.fly = &flyAnim{
		tweenR: gween.New(float32(m.cam.Radius), float32(goalRadius), dur, m.cfg.FlyEase),
		tweenX: gween.New(float32(m.cam.Target.X), float32(point.X), dur, m.cfg.FlyEase),
		tweenY: gween.New(float32(m.cam.Target.Y), float32(point.Y), dur, m.cfg.FlyEase),
		tweenZ: gween.New(float32(m.cam.Target.Z), float32(point.Z), dur, m.cfg.FlyEase),
	}
	return true
}

// Update advances the flythrough by dt seconds. Fires OnFlyComplete
// once when the animation finishes. No-op while no flythrough runs.
func (m *Manipulator) Update(dt float32) {
	if m.fly == nil {
		return
	}

	r, doneR := m.fly.tweenR.Update(dt)
	x, doneX := m.fly.tweenX.Update(dt)
	y, doneY := m.fly.tweenY.Update(dt)
	z, doneZ := m.fly.tweenZ.Update(dt)

	m.cam.Radius = float64(r)
	m.cam.Target = Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
	m.cam.NotifyViewChanged()

	if doneR && doneX && doneY && doneZ {
		m.fly = nil
		if m.OnFlyComplete != nil {
			m.OnFlyComplete()
		}
	}
}
