package orbitnav

import "time"

// TouchPoint is the tracked state of one active touch contact. Created
// on touch-down, updated on every move, removed on up or cancel.
type TouchPoint struct {
	ID int

	// StartX and StartY are the contact's touch-down position.
	StartX, StartY float64
	// X and Y are the latest reported position.
	X, Y float64
	// DeltaX and DeltaY are the movement since the previous sample.
	DeltaX, DeltaY float64
	// Time is the timestamp of the latest sample.
	Time time.Time

	// HasMoved latches true once total displacement from the start
	// position exceeds the tap-max-distance. Once set it never clears,
	// and it permanently revokes PotentialDoubleTap.
	HasMoved bool
	// PotentialDoubleTap marks a contact that landed quickly enough
	// after a clean tap to commit a double tap on release.
	PotentialDoubleTap bool
}

// TouchTracker owns the set of currently active touch contacts, keyed
// by pointer ID. It is pure bookkeeping: no gesture logic lives here.
// Iteration order is touch-down order, so pinch math sees a stable pair.
type TouchTracker struct {
	points         map[int]*TouchPoint
	order          []int
	tapMaxDistance float64
}

// NewTouchTracker creates a tracker. tapMaxDistance is the displacement
// in pixels beyond which a contact's HasMoved flag latches.
func NewTouchTracker(tapMaxDistance float64) *TouchTracker {
	return &TouchTracker{
		points:         make(map[int]*TouchPoint),
		tapMaxDistance: tapMaxDistance,
	}
}

// Down inserts a new contact. A duplicate ID replaces the stale entry,
// which can only mean the up event for it was lost.
func (t *TouchTracker) Down(id int, x, y float64, at time.Time) *TouchPoint {
	if _, ok := t.points[id]; ok {
		t.Remove(id)
	}
	tp := &TouchPoint{
		ID:     id,
		StartX: x, StartY: y,
		X: x, Y: y,
		Time: at,
	}
	t.points[id] = tp
	t.order = append(t.order, id)
	return tp
}

// Move updates an existing contact's position, per-move delta, and
// moved flag. Returns nil for an unknown ID.
func (t *TouchTracker) Move(id int, x, y float64, at time.Time) *TouchPoint {
	tp, ok := t.points[id]
	if !ok {
		return nil
	}
	tp.DeltaX = x - tp.X
	tp.DeltaY = y - tp.Y
	tp.X = x
	tp.Y = y
	tp.Time = at

	if !tp.HasMoved && hypot(x-tp.StartX, y-tp.StartY) > t.tapMaxDistance {
		tp.HasMoved = true
		tp.PotentialDoubleTap = false
	}
	return tp
}

// Remove deletes a contact. Safe for unknown IDs.
func (t *TouchTracker) Remove(id int) {
	if _, ok := t.points[id]; !ok {
		return
	}
	delete(t.points, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of active contacts.
func (t *TouchTracker) Count() int {
	return len(t.points)
}

// Get returns the contact for id, or nil.
func (t *TouchTracker) Get(id int) *TouchPoint {
	return t.points[id]
}

// First returns the earliest active contact, or nil.
func (t *TouchTracker) First() *TouchPoint {
	if len(t.order) == 0 {
		return nil
	}
	return t.points[t.order[0]]
}

// Pair returns the two earliest active contacts, or nils if fewer than
// two are active.
func (t *TouchTracker) Pair() (*TouchPoint, *TouchPoint) {
	if len(t.order) < 2 {
		return nil, nil
	}
	return t.points[t.order[0]], t.points[t.order[1]]
}

// Points returns the active contacts in touch-down order. The returned
// slice is freshly allocated; the pointed-to contacts are live.
func (t *TouchTracker) Points() []*TouchPoint {
	out := make([]*TouchPoint, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.points[id])
	}
	return out
}
