package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestCooldown_Rearm(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	cd := New(time.Second, clk.Now)

	assert.False(t, cd.IsActive())
	assert.True(t, cd.Trigger())
	assert.True(t, cd.IsActive())

	clk.Advance(400 * time.Millisecond)
	assert.False(t, cd.Trigger(), "second trigger inside the window is rejected")
	assert.Equal(t, 600*time.Millisecond, cd.Remaining())

	clk.Advance(600 * time.Millisecond)
	assert.False(t, cd.IsActive(), "disarmed once the delay has elapsed")
	assert.Equal(t, time.Duration(0), cd.Remaining())
	assert.True(t, cd.Trigger())
}

func TestCooldown_RejectedTriggerDoesNotExtend(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	cd := New(time.Second, clk.Now)

	cd.Trigger()
	clk.Advance(900 * time.Millisecond)
	cd.Trigger()
	clk.Advance(100 * time.Millisecond)
	assert.False(t, cd.IsActive())
}

func TestCooldown_TriggerFor(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	cd := New(time.Second, clk.Now)

	assert.True(t, cd.TriggerFor(3*time.Second))
	clk.Advance(2 * time.Second)
	assert.True(t, cd.IsActive())
	clk.Advance(time.Second)
	assert.False(t, cd.IsActive())
}

func TestCooldown_Reset(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	cd := New(time.Minute, clk.Now)

	cd.Trigger()
	cd.Reset()
	assert.False(t, cd.IsActive())
}

func TestCooldown_ZeroDuration(t *testing.T) {
	cd := New(0, nil)
	assert.True(t, cd.Trigger())
	assert.False(t, cd.IsActive())
	assert.Equal(t, time.Duration(0), cd.Duration())
}
