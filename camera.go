package orbitnav

import "math"

// OrbitCamera is the pose contract between this package and the host's
// renderer: an orbit camera described by azimuth (Alpha), polar angle
// (Beta, 0 at the zenith), distance from target (Radius), and a world
// target point. The limit fields mirror the engine-facing convention of
// nullable bounds, nil meaning unbounded on that side.
//
// The renderer reads the pose each frame and calls NotifyViewChanged
// whenever it recomputes its view transform; the constraint engine
// subscribes to that notification and clamps the pose in place before
// any later subscriber observes it.
type OrbitCamera struct {
	Alpha  float64
	Beta   float64
	Radius float64
	Target Vec3

	LowerAlphaLimit, UpperAlphaLimit   *float64
	LowerBetaLimit, UpperBetaLimit     *float64
	LowerRadiusLimit, UpperRadiusLimit *float64

	viewHandlers []viewHandler
	nextViewID   uint32
}

type viewHandler struct {
	id uint32
	fn func()
}

// ViewHandle allows removing a view-changed subscription.
type ViewHandle struct {
	id  uint32
	cam *OrbitCamera
}

// Remove unregisters this subscription so it no longer fires.
// Safe on the zero value and after the camera dropped the handler.
func (h ViewHandle) Remove() {
	if h.cam == nil {
		return
	}
	s := h.cam.viewHandlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = viewHandler{}
			h.cam.viewHandlers = s[:len(s)-1]
			return
		}
	}
}

// NewOrbitCamera creates a camera looking at the origin from a
// three-quarter angle at distance 10.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Alpha:  math.Pi / 4,
		Beta:   math.Pi / 3,
		Radius: 10,
	}
}

// OnViewChanged registers a callback fired synchronously from
// NotifyViewChanged, in registration order.
func (c *OrbitCamera) OnViewChanged(fn func()) ViewHandle {
	c.nextViewID++
	id := c.nextViewID
	c.viewHandlers = append(c.viewHandlers, viewHandler{id: id, fn: fn})
	return ViewHandle{id: id, cam: c}
}

// NotifyViewChanged fires all view-changed subscriptions. Call after
// every pose mutation, at most once per rendered frame.
func (c *OrbitCamera) NotifyViewChanged() {
	for _, h := range c.viewHandlers {
		h.fn()
	}
}

// Position returns the camera's world position derived from the pose:
// target + radius scaled by the spherical direction (Alpha, Beta),
// with Y up.
func (c *OrbitCamera) Position() Vec3 {
	sinB, cosB := math.Sincos(c.Beta)
	sinA, cosA := math.Sincos(c.Alpha)
	return Vec3{
		X: c.Target.X + c.Radius*sinB*cosA,
		Y: c.Target.Y + c.Radius*cosB,
		Z: c.Target.Z + c.Radius*sinB*sinA,
	}
}
