package orbitnav

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// TouchSource polls Ebitengine's touch state each frame and turns it
// into the pointer-event stream the classifier consumes. Ebitengine has
// no touch-cancel notion, so a disappearing touch is reported as an up
// at its last known position.
type TouchSource struct {
	nav *Navigator

	ids    []ebiten.TouchID
	active map[ebiten.TouchID]Vec2

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewTouchSource creates a touch source feeding nav.
func NewTouchSource(nav *Navigator) *TouchSource {
	return &TouchSource{
		nav:    nav,
		active: make(map[ebiten.TouchID]Vec2),
		now:    time.Now,
	}
}

// Update reads the current touch set, synthesizes down/move/up events,
// and advances the navigator. Call once per ebiten.Game Update.
func (s *TouchSource) Update() {
	now := s.now()
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])

	seen := make(map[ebiten.TouchID]bool, len(s.ids))
	for _, tid := range s.ids {
		seen[tid] = true
		tx, ty := ebiten.TouchPosition(tid)
		pos := Vec2{X: float64(tx), Y: float64(ty)}

		prev, known := s.active[tid]
		switch {
		case !known:
			s.nav.HandlePointerEvent(PointerEvent{
				Kind: PointerDown, ID: int(tid), Type: PointerTypeTouch,
				X: pos.X, Y: pos.Y, Time: now,
			})
		case prev != pos:
			s.nav.HandlePointerEvent(PointerEvent{
				Kind: PointerMove, ID: int(tid), Type: PointerTypeTouch,
				X: pos.X, Y: pos.Y, Time: now,
			})
		}
		s.active[tid] = pos
	}

	for tid, pos := range s.active {
		if !seen[tid] {
			s.nav.HandlePointerEvent(PointerEvent{
				Kind: PointerUp, ID: int(tid), Type: PointerTypeTouch,
				X: pos.X, Y: pos.Y, Time: now,
			})
			delete(s.active, tid)
		}
	}

	s.nav.Update(now)
}
