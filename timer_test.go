package orbitnav

import (
	"testing"
	"time"
)

func TestDelayTimer(t *testing.T) {
	var d delayTimer
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if d.Fire(base) {
		t.Error("disarmed timer fired")
	}

	d.Arm(base.Add(100 * time.Millisecond))
	if d.Fire(base.Add(99 * time.Millisecond)) {
		t.Error("timer fired before its deadline")
	}
	if !d.Fire(base.Add(100 * time.Millisecond)) {
		t.Error("timer did not fire at its deadline")
	}
	if d.Fire(base.Add(200 * time.Millisecond)) {
		t.Error("timer fired twice")
	}

	// Re-arming replaces the deadline; Cancel disarms.
	d.Arm(base.Add(time.Second))
	d.Arm(base.Add(2 * time.Second))
	if d.Fire(base.Add(time.Second)) {
		t.Error("stale deadline fired after re-arm")
	}
	d.Cancel()
	if d.Fire(base.Add(time.Hour)) {
		t.Error("cancelled timer fired")
	}
}
