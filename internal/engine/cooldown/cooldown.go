// Package cooldown provides a rearm-after-delay guard for rate limiting actions.
package cooldown

import "time"

// Clock returns the current time. The game loop passes frame time through it.
type Clock func() time.Time

// Cooldown is active for a fixed duration after each trigger and disarms itself
// once that duration has elapsed on its clock.
type Cooldown struct {
	duration time.Duration
	clock    Clock
	until    time.Time
}

// New creates a cooldown. A nil clock uses time.Now.
func New(duration time.Duration, clock Clock) *Cooldown {
	if clock == nil {
		clock = time.Now
	}
	return &Cooldown{duration: duration, clock: clock}
}

// Duration returns the configured delay.
func (c *Cooldown) Duration() time.Duration {
	return c.duration
}

// IsActive reports whether the cooldown is still running.
func (c *Cooldown) IsActive() bool {
	return c.clock().Before(c.until)
}

// Remaining returns the time left, or zero when inactive.
func (c *Cooldown) Remaining() time.Duration {
	if d := c.until.Sub(c.clock()); d > 0 {
		return d
	}
	return 0
}

// Trigger arms the cooldown. It returns false, changing nothing, when the
// cooldown is already active.
func (c *Cooldown) Trigger() bool {
	return c.TriggerFor(c.duration)
}

// TriggerFor arms the cooldown for d instead of the configured duration.
// Used to hold off captures while the camera animates.
func (c *Cooldown) TriggerFor(d time.Duration) bool {
	if c.IsActive() {
		return false
	}
	c.until = c.clock().Add(d)
	return true
}

// Reset disarms the cooldown immediately.
func (c *Cooldown) Reset() {
	c.until = time.Time{}
}
