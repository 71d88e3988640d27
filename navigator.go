package orbitnav

import "time"

// Navigator is the top-level interaction surface: it owns the gesture
// classifier, the manipulator, and the constraint engine for one
// camera, and wires the double-tap → flythrough → release chain.
//
// Feed it pointer events with HandlePointerEvent (or use a TouchSource
// to poll Ebitengine) and call Update once per frame.
type Navigator struct {
	cam        *OrbitCamera
	classifier *Classifier
	manip      *Manipulator
	limits     *Limits

	now     time.Time
	hasLast bool
	last    time.Time
}

// New creates a navigator for cam with the default (unrestricted)
// limit region.
func New(cam *OrbitCamera, cfg Config) *Navigator {
	return NewWithLimits(cam, cfg, DefaultLimitConfig())
}

// NewWithLimits creates a navigator whose constraint engine starts from
// the given operator default region.
func NewWithLimits(cam *OrbitCamera, cfg Config, region LimitConfig) *Navigator {
	cfg = cfg.withDefaults()
	n := &Navigator{
		cam:        cam,
		classifier: NewClassifier(cfg),
		limits:     NewLimits(cam, region),
	}
	n.manip = NewManipulator(cam, n.limits, cfg)

	n.classifier.OnPan(n.manip.HandlePan)
	n.classifier.OnPinch(n.manip.HandlePinch)
	n.classifier.OnDoubleTap(func(e DoubleTapContext) {
		if !n.manip.HandleDoubleTap(e) {
			// Nothing picked, nothing to animate: release the lock now.
			n.classifier.EndAnimation(e.Time)
		}
	})
	n.manip.OnFlyComplete = func() {
		n.classifier.EndAnimation(n.now)
	}
	return n
}

// Camera returns the camera this navigator drives.
func (n *Navigator) Camera() *OrbitCamera {
	return n.cam
}

// Classifier returns the gesture classifier, for registering extra
// gesture callbacks.
func (n *Navigator) Classifier() *Classifier {
	return n.classifier
}

// Manipulator returns the pose manipulator, for routing host-native
// input (mouse rotation, wheel dolly, desktop double click).
func (n *Navigator) Manipulator() *Manipulator {
	return n.manip
}

// Limits returns the constraint engine.
func (n *Navigator) Limits() *Limits {
	return n.limits
}

// SetPickFunc installs the scene picking callback used by double-tap
// flythroughs.
func (n *Navigator) SetPickFunc(fn PickFunc) {
	n.manip.SetPickFunc(fn)
}

// HandlePointerEvent feeds one raw pointer event to the classifier.
// Mouse events are dropped.
func (n *Navigator) HandlePointerEvent(e PointerEvent) {
	n.classifier.HandleEvent(e)
}

// Update advances time-based classification and any running flythrough.
// Call once per frame with the current time.
func (n *Navigator) Update(now time.Time) {
	n.now = now
	var dt float32
	if n.hasLast {
		dt = float32(now.Sub(n.last).Seconds())
	}
	n.last = now
	n.hasLast = true

	n.classifier.Update(now)
	n.manip.Update(dt)
}

// Dispose releases the constraint engine's camera subscription. Safe to
// call more than once.
func (n *Navigator) Dispose() {
	n.limits.Dispose()
}
