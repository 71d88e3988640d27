package orbitnav

import "time"

// delayTimer is a cancellable deadline polled from the frame loop
// instead of a goroutine timer: all gesture logic stays on the caller's
// single thread, and a "stale" firing is impossible because the firing
// site re-checks the live touch state at fire time.
type delayTimer struct {
	deadline time.Time
	armed    bool
}

// Arm schedules the timer to fire at the given time, replacing any
// previously armed deadline.
func (d *delayTimer) Arm(at time.Time) {
	d.deadline = at
	d.armed = true
}

// Cancel disarms the timer.
func (d *delayTimer) Cancel() {
	d.armed = false
}

// Fire reports whether the deadline has been reached, disarming the
// timer if so. Returns false while disarmed.
func (d *delayTimer) Fire(now time.Time) bool {
	if !d.armed || now.Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}
