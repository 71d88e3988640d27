package orbitnav

import "time"

// GestureState is the classifier's current position in the
// disambiguation state machine.
type GestureState uint8

const (
	// StateIdle means no touch contact is active.
	StateIdle GestureState = iota
	// StatePendingSingle means contacts are down but classification is
	// still waiting out the settle delay.
	StatePendingSingle
	// StatePendingDouble means a single contact is down and is a
	// double-tap candidate; releasing it cleanly commits a double tap.
	StatePendingDouble
	// StatePanning means a one-finger pan owns pointer input.
	StatePanning
	// StatePinching means a two-finger pinch owns pointer input.
	StatePinching
	// StateAnimating means a double-tap flythrough is running and all
	// pointer input is ignored until it completes.
	StateAnimating
)

// GestureKind identifies which gesture, if any, holds the input lock.
type GestureKind uint8

const (
	KindNone GestureKind = iota
	KindPan
	KindPinch
)

// --- Event contexts ---

// TapContext carries a committed single tap.
type TapContext struct {
	X, Y float64
	Time time.Time
}

// DoubleTapContext carries a committed double tap.
type DoubleTapContext struct {
	X, Y float64
	Time time.Time
}

// PanContext carries one smoothed pan step. DeltaX/DeltaY are the
// movement of the smoothed pan position in pixels; X/Y are the current
// smoothed position.
type PanContext struct {
	DeltaX, DeltaY float64
	X, Y           float64
	Time           time.Time
}

// PinchContext carries one smoothed pinch step. DistanceDelta is the
// change of the smoothed inter-finger distance in pixels.
// CenterDeltaX/CenterDeltaY are the pinch-center movement, zeroed when
// it stays under the minimum pan distance.
type PinchContext struct {
	DistanceDelta              float64
	CenterX, CenterY           float64
	CenterDeltaX, CenterDeltaY float64
	Time                       time.Time
}

// GestureEvent identifies a classified gesture event type for handler
// removal.
type GestureEvent uint8

const (
	EventTap GestureEvent = iota
	EventDoubleTap
	EventPan
	EventPinch
)

// --- Handler registry ---

type tapHandler struct {
	id uint32
	fn func(TapContext)
}

type doubleTapHandler struct {
	id uint32
	fn func(DoubleTapContext)
}

type panHandler struct {
	id uint32
	fn func(PanContext)
}

type pinchHandler struct {
	id uint32
	fn func(PinchContext)
}

type gestureRegistry struct {
	tap       []tapHandler
	doubleTap []doubleTapHandler
	pan       []panHandler
	pinch     []pinchHandler
	nextID    uint32
}

// GestureHandle allows removing a registered gesture callback.
type GestureHandle struct {
	id    uint32
	reg   *gestureRegistry
	event GestureEvent
}

// Remove unregisters this callback so it no longer fires.
func (h GestureHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventTap:
		h.reg.tap = removeTapHandler(h.reg.tap, h.id)
	case EventDoubleTap:
		h.reg.doubleTap = removeDoubleTapHandler(h.reg.doubleTap, h.id)
	case EventPan:
		h.reg.pan = removePanHandler(h.reg.pan, h.id)
	case EventPinch:
		h.reg.pinch = removePinchHandler(h.reg.pinch, h.id)
	}
}

func removeTapHandler(s []tapHandler, id uint32) []tapHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tapHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDoubleTapHandler(s []doubleTapHandler, id uint32) []doubleTapHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = doubleTapHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePanHandler(s []panHandler, id uint32) []panHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = panHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePinchHandler(s []pinchHandler, id uint32) []pinchHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pinchHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Classifier ---

// Classifier turns a stream of raw touch pointer events into exactly
// one of tap, double tap, pan, or pinch, resolving ambiguity with a
// settle delay, a same-kind debounce window, and gesture exclusivity.
// All methods must be called from a single goroutine; timestamps on the
// events drive every delay, so tests can run on a fabricated clock.
type Classifier struct {
	cfg     Config
	tracker *TouchTracker

	state      GestureState
	activeKind GestureKind
	// gestureStart is when the current lock was taken.
	gestureStart time.Time
	// lastKind and lastEnd record the most recently ended gesture for
	// the debounce rule.
	lastKind GestureKind
	lastEnd  time.Time

	// Last clean touch-up, for double-tap candidacy.
	hasLastTap         bool
	lastTapTime        time.Time
	lastTapX, lastTapY float64

	settle         delayTimer
	pendingHandoff bool
	// lockedThisInteraction latches when any gesture locks between the
	// first touch-down and the last touch-up, suppressing tap emission
	// for contacts that belonged to a gesture.
	lockedThisInteraction bool

	lastProcessed time.Time

	panPointer int
	panFilter  *PointAverage
	panLast    Vec2

	pinchFilter *MovingAverage
	pinchLast   float64
	pinchCenter Vec2

	handlers gestureRegistry
}

// NewClassifier creates a classifier with the given tunables. Zero
// config fields take their defaults.
func NewClassifier(cfg Config) *Classifier {
	cfg = cfg.withDefaults()
	return &Classifier{
		cfg:         cfg,
		tracker:     NewTouchTracker(cfg.TapMaxDistance),
		panFilter:   NewPointAverage(smoothWindow),
		pinchFilter: NewMovingAverage(smoothWindow),
	}
}

// State returns the current classification state.
func (c *Classifier) State() GestureState {
	return c.state
}

// ActiveKind returns the gesture kind currently holding the input lock.
func (c *Classifier) ActiveKind() GestureKind {
	return c.activeKind
}

// Tracker returns the contact tracker, mainly for inspection in hosts
// and tests.
func (c *Classifier) Tracker() *TouchTracker {
	return c.tracker
}

// OnTap registers a callback for committed single taps.
func (c *Classifier) OnTap(fn func(TapContext)) GestureHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.tap = append(c.handlers.tap, tapHandler{id: id, fn: fn})
	return GestureHandle{id: id, reg: &c.handlers, event: EventTap}
}

// OnDoubleTap registers a callback for committed double taps.
func (c *Classifier) OnDoubleTap(fn func(DoubleTapContext)) GestureHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.doubleTap = append(c.handlers.doubleTap, doubleTapHandler{id: id, fn: fn})
	return GestureHandle{id: id, reg: &c.handlers, event: EventDoubleTap}
}

// OnPan registers a callback for smoothed pan steps.
func (c *Classifier) OnPan(fn func(PanContext)) GestureHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pan = append(c.handlers.pan, panHandler{id: id, fn: fn})
	return GestureHandle{id: id, reg: &c.handlers, event: EventPan}
}

// OnPinch registers a callback for smoothed pinch steps.
func (c *Classifier) OnPinch(fn func(PinchContext)) GestureHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pinch = append(c.handlers.pinch, pinchHandler{id: id, fn: fn})
	return GestureHandle{id: id, reg: &c.handlers, event: EventPinch}
}

// HandleEvent feeds one pointer event. Mouse events are dropped; mouse
// navigation belongs to the host's native camera controls.
func (c *Classifier) HandleEvent(e PointerEvent) {
	if e.Type != PointerTypeTouch {
		return
	}
	switch e.Kind {
	case PointerDown:
		c.pointerDown(e.ID, e.X, e.Y, e.Time)
	case PointerMove:
		c.pointerMove(e.ID, e.X, e.Y, e.Time)
	case PointerUp:
		c.pointerUp(e.ID, e.Time)
	case PointerCancel:
		c.pointerCancel(e.ID, e.Time)
	}
}

// Update advances time-based transitions (the settle delay). Call once
// per frame with the current time.
func (c *Classifier) Update(now time.Time) {
	if c.state == StateAnimating {
		return
	}
	c.checkSettle(now)
}

// EndAnimation releases the Animating lock after a flythrough finishes.
// If contacts accumulated during the animation, classification restarts
// for them after a fresh settle delay.
func (c *Classifier) EndAnimation(now time.Time) {
	if c.state != StateAnimating {
		return
	}
	c.state = StateIdle
	if c.tracker.Count() > 0 {
		c.state = StatePendingSingle
		c.settle.Arm(now.Add(c.cfg.SettleDelay))
	}
}

// Reset drops all contacts and returns to Idle, releasing any lock.
// Does not touch registered handlers.
func (c *Classifier) Reset() {
	for _, tp := range c.tracker.Points() {
		c.tracker.Remove(tp.ID)
	}
	c.state = StateIdle
	c.activeKind = KindNone
	c.settle.Cancel()
	c.pendingHandoff = false
	c.lockedThisInteraction = false
	c.hasLastTap = false
}

// --- Event handling ---

func (c *Classifier) pointerDown(id int, x, y float64, at time.Time) {
	tp := c.tracker.Down(id, x, y, at)
	if c.state == StateAnimating {
		return
	}

	switch c.tracker.Count() {
	case 1:
		c.lockedThisInteraction = false
		candidate := c.hasLastTap &&
			at.Sub(c.lastTapTime) < c.cfg.DoubleTapInterval &&
			hypot(x-c.lastTapX, y-c.lastTapY) <= c.cfg.TapMaxDistance
		tp.PotentialDoubleTap = candidate
		if candidate {
			c.state = StatePendingDouble
			c.settle.Cancel()
			return
		}
		c.state = StatePendingSingle
		// Debounce: re-locking the kind that just ended skips the
		// settle delay.
		if c.lastKind == KindPan && at.Sub(c.lastEnd) < c.cfg.GestureChangeTimeout {
			c.lockPan(tp, at)
			return
		}
		c.settle.Arm(at.Add(c.cfg.SettleDelay))

	case 2:
		c.pendingHandoff = false
		if c.activeKind == KindPan {
			if !c.cfg.AllowSimultaneous {
				// Exclusivity: the pan lock blocks pinch entry.
				return
			}
			c.releaseLock(at)
			c.state = StatePendingSingle
		}
		if c.activeKind != KindNone {
			return
		}
		if c.lastKind == KindPinch && at.Sub(c.lastEnd) < c.cfg.GestureChangeTimeout {
			c.lockPinch(at)
			return
		}
		c.settle.Arm(at.Add(c.cfg.SettleDelay))

	default:
		// Third and later fingers never change an ongoing
		// classification; pinch math keeps using the first two.
	}
}

func (c *Classifier) pointerMove(id int, x, y float64, at time.Time) {
	tp := c.tracker.Move(id, x, y, at)
	if tp == nil || c.state == StateAnimating {
		return
	}

	// Movement beyond the tap threshold revokes double-tap candidacy;
	// the contact then classifies like any other single touch.
	if c.state == StatePendingDouble && !tp.PotentialDoubleTap {
		c.state = StatePendingSingle
		if c.activeKind == KindNone && c.tracker.Count() == 1 && !c.settle.armed {
			c.lockPan(tp, at)
		}
	}

	c.checkSettle(at)

	// ~60 Hz cap on gesture math. Bookkeeping above is never skipped.
	if at.Sub(c.lastProcessed) < c.cfg.MoveThrottle {
		return
	}
	c.lastProcessed = at

	switch {
	case c.activeKind == KindPan && c.state == StatePanning:
		if id != c.panPointer {
			return
		}
		c.stepPan(tp, at)
	case c.activeKind == KindPinch && c.state == StatePinching:
		if c.tracker.Count() < 2 {
			return
		}
		c.stepPinch(at)
	}
}

func (c *Classifier) pointerUp(id int, at time.Time) {
	tp := c.tracker.Get(id)
	if tp == nil {
		return
	}
	if c.state == StateAnimating {
		c.tracker.Remove(id)
		return
	}

	wasCandidate := tp.PotentialDoubleTap && !tp.HasMoved
	cleanTap := c.activeKind == KindNone && !tp.HasMoved && !c.lockedThisInteraction
	upX, upY := tp.X, tp.Y
	c.tracker.Remove(id)

	switch c.tracker.Count() {
	case 0:
		c.settle.Cancel()
		c.pendingHandoff = false

		if wasCandidate && c.activeKind == KindNone && !c.lockedThisInteraction {
			c.hasLastTap = false
			c.state = StateAnimating
			c.fireDoubleTap(DoubleTapContext{X: upX, Y: upY, Time: at})
			return
		}
		if c.activeKind != KindNone {
			c.releaseLock(at)
		} else {
			// Record the up for double-tap candidacy of the next down.
			c.hasLastTap = cleanTap
			c.lastTapTime = at
			c.lastTapX, c.lastTapY = upX, upY
			if cleanTap {
				c.fireTap(TapContext{X: upX, Y: upY, Time: at})
			}
		}
		c.state = StateIdle

	case 1:
		if c.activeKind == KindPinch {
			// Pinch→pan handoff: classify the survivor as a pan after
			// the settle delay, without passing through Idle.
			c.releaseLock(at)
			c.pendingHandoff = true
			c.settle.Arm(at.Add(c.cfg.SettleDelay))
			return
		}
		if c.activeKind == KindPan && id == c.panPointer {
			// The pan finger lifted; the survivor carries the pan on.
			if rest := c.tracker.First(); rest != nil {
				c.panPointer = rest.ID
				c.seedPan(Vec2{X: rest.X, Y: rest.Y})
			}
			return
		}
		if c.activeKind == KindNone {
			c.settle.Arm(at.Add(c.cfg.SettleDelay))
		}

	default:
		if c.activeKind == KindPinch {
			// The pinch pair may have changed; restart its smoothing
			// from the live pair so the distance stream has no jump.
			c.seedPinch()
		}
	}
}

func (c *Classifier) pointerCancel(id int, at time.Time) {
	tp := c.tracker.Get(id)
	if tp == nil {
		return
	}
	c.tracker.Remove(id)

	if c.tracker.Count() == 0 {
		c.settle.Cancel()
		c.pendingHandoff = false
		if c.activeKind != KindNone {
			c.releaseLock(at)
		}
		if c.state != StateAnimating {
			c.state = StateIdle
		}
		return
	}
	if c.state == StateAnimating {
		return
	}
	if c.activeKind == KindPinch && c.tracker.Count() == 1 {
		c.releaseLock(at)
		c.pendingHandoff = true
		c.settle.Arm(at.Add(c.cfg.SettleDelay))
		return
	}
	if c.activeKind == KindPan && id == c.panPointer {
		if rest := c.tracker.First(); rest != nil {
			c.panPointer = rest.ID
			c.seedPan(Vec2{X: rest.X, Y: rest.Y})
		}
	}
}

// --- Settle / locking ---

// checkSettle fires the settle timer if its deadline passed. The fire
// re-checks the live contact count, so a deadline armed for a touch set
// that has since changed simply classifies whatever is down now.
func (c *Classifier) checkSettle(now time.Time) {
	if !c.settle.Fire(now) {
		return
	}

	if c.pendingHandoff {
		c.pendingHandoff = false
		if c.tracker.Count() == 1 {
			c.lockPan(c.tracker.First(), now)
		}
		return
	}

	if c.activeKind != KindNone {
		return
	}
	switch c.tracker.Count() {
	case 1:
		tp := c.tracker.First()
		if !tp.PotentialDoubleTap {
			c.lockPan(tp, now)
		}
	case 2:
		c.lockPinch(now)
	}
}

func (c *Classifier) lockPan(tp *TouchPoint, at time.Time) {
	c.activeKind = KindPan
	c.state = StatePanning
	c.gestureStart = at
	c.hasLastTap = false
	c.lockedThisInteraction = true
	c.panPointer = tp.ID
	c.seedPan(Vec2{X: tp.X, Y: tp.Y})
}

func (c *Classifier) lockPinch(at time.Time) {
	if a, _ := c.tracker.Pair(); a == nil {
		return
	}
	c.activeKind = KindPinch
	c.state = StatePinching
	c.gestureStart = at
	c.hasLastTap = false
	c.lockedThisInteraction = true
	c.seedPinch()
}

func (c *Classifier) releaseLock(at time.Time) {
	c.lastKind = c.activeKind
	c.lastEnd = at
	c.activeKind = KindNone
}

func (c *Classifier) seedPan(pos Vec2) {
	c.panFilter.Seed(pos)
	c.panLast = pos
}

func (c *Classifier) seedPinch() {
	a, b := c.tracker.Pair()
	if a == nil {
		return
	}
	dist := hypot(b.X-a.X, b.Y-a.Y)
	c.pinchFilter.Seed(dist)
	c.pinchLast = dist
	c.pinchCenter = Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// --- Gesture math ---

// stepPan pushes the live position through the smoothing filter and
// emits a pan step once the smoothed delta clears the minimum pan
// distance. Emission moves the reference point, so sub-threshold
// movement accumulates instead of being lost.
func (c *Classifier) stepPan(tp *TouchPoint, at time.Time) {
	avg := c.panFilter.Push(Vec2{X: tp.X, Y: tp.Y})
	dx := avg.X - c.panLast.X
	dy := avg.Y - c.panLast.Y
	if hypot(dx, dy) <= c.cfg.MinPanDistance {
		return
	}
	c.panLast = avg
	c.firePan(PanContext{DeltaX: dx, DeltaY: dy, X: avg.X, Y: avg.Y, Time: at})
}

// stepPinch recomputes distance and center from the live pair, smooths
// the distance, and emits one pinch step. Center movement below the
// minimum pan distance is reported as zero.
func (c *Classifier) stepPinch(at time.Time) {
	a, b := c.tracker.Pair()
	dist := hypot(b.X-a.X, b.Y-a.Y)
	center := Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}

	smoothed := c.pinchFilter.Push(dist)
	delta := smoothed - c.pinchLast
	c.pinchLast = smoothed

	cdx := center.X - c.pinchCenter.X
	cdy := center.Y - c.pinchCenter.Y
	c.pinchCenter = center
	if hypot(cdx, cdy) <= c.cfg.MinPanDistance {
		cdx, cdy = 0, 0
	}

	c.firePinch(PinchContext{
		DistanceDelta: delta,
		CenterX:       center.X,
		CenterY:       center.Y,
		CenterDeltaX:  cdx,
		CenterDeltaY:  cdy,
		Time:          at,
	})
}

// --- Dispatch ---

func (c *Classifier) fireTap(ctx TapContext) {
	for _, h := range c.handlers.tap {
		h.fn(ctx)
	}
}

func (c *Classifier) fireDoubleTap(ctx DoubleTapContext) {
	for _, h := range c.handlers.doubleTap {
		h.fn(ctx)
	}
}

func (c *Classifier) firePan(ctx PanContext) {
	for _, h := range c.handlers.pan {
		h.fn(ctx)
	}
}

func (c *Classifier) firePinch(ctx PinchContext) {
	for _, h := range c.handlers.pinch {
		h.fn(ctx)
	}
}
