package camera

import (
	"context"
	"time"

	"github.com/Faultbox/wildsnap/pkg/math"
)

// DefaultNudgeGate is the fraction of the smaller viewport side beyond which
// the camera refuses to re-center on its own.
const DefaultNudgeGate = 0.6

// NudgeOutcome is the terminal result of a re-centering request.
type NudgeOutcome int

const (
	NudgePending NudgeOutcome = iota
	NudgeNudged
	NudgeAlreadyCentered
	NudgeSkippedTooFar
	NudgeNoTarget
	NudgeCancelled
)

func (o NudgeOutcome) String() string {
	switch o {
	case NudgeNudged:
		return "nudged"
	case NudgeAlreadyCentered:
		return "already-centered"
	case NudgeSkippedTooFar:
		return "skipped-too-far"
	case NudgeNoTarget:
		return "no-target"
	case NudgeCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Nudge is a handle to a viewport animation. It completes on the frame that
// reaches the end of the animation, or immediately when no animation is needed.
type Nudge struct {
	ctx      context.Context
	from, to math.Vec2 // viewport top-left positions
	start    time.Time
	duration time.Duration
	armed    bool // the animation armed the cooldown

	outcome NudgeOutcome
	done    chan struct{}

	// then runs on the terminal frame, before Done is closed.
	then    func()
	capture *CaptureResult
}

func newNudge(ctx context.Context) *Nudge {
	return &Nudge{ctx: ctx, done: make(chan struct{})}
}

// finishedNudge returns a handle that is already complete.
func finishedNudge(outcome NudgeOutcome, capture *CaptureResult) *Nudge {
	n := newNudge(context.Background())
	n.capture = capture
	n.finish(outcome)
	return n
}

// Done is closed when the nudge reaches a terminal outcome.
func (n *Nudge) Done() <-chan struct{} {
	return n.done
}

// Outcome returns the terminal outcome, or NudgePending while animating.
func (n *Nudge) Outcome() NudgeOutcome {
	return n.outcome
}

// Capture returns the capture performed after an assisted nudge, if any.
func (n *Nudge) Capture() (CaptureResult, bool) {
	if n.capture == nil {
		return CaptureResult{}, false
	}
	return *n.capture, true
}

// Target returns the viewport position the animation ends at.
func (n *Nudge) Target() math.Vec2 {
	return n.to
}

func (n *Nudge) finish(outcome NudgeOutcome) {
	if n.outcome != NudgePending {
		return
	}
	n.outcome = outcome
	close(n.done)
}

// progress returns the eased animation position for a frame time and whether
// the animation has reached its end.
func (n *Nudge) progress(now time.Time) (math.Vec2, bool) {
	if n.duration <= 0 {
		return n.to, true
	}
	t := math.Clamp(float64(now.Sub(n.start))/float64(n.duration), 0, 1)
	return n.from.Lerp(n.to, math.EaseInOutQuad(t)), t >= 1
}
