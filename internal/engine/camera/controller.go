package camera

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/engine/cooldown"
	"github.com/Faultbox/wildsnap/internal/engine/picking"
	"github.com/Faultbox/wildsnap/internal/engine/texture"
	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/logger"
	"github.com/Faultbox/wildsnap/internal/scene"
	"github.com/Faultbox/wildsnap/pkg/math"
)

// State is the controller's position in the capture flow.
type State int

const (
	StateIdle State = iota
	StateTargetSelected
	StateVisible
	StateNotVisible
	StateAnimating
	StateSampling
	StateFound
	StateMiss
)

func (s State) String() string {
	switch s {
	case StateTargetSelected:
		return "target-selected"
	case StateVisible:
		return "visible"
	case StateNotVisible:
		return "not-visible"
	case StateAnimating:
		return "animating"
	case StateSampling:
		return "sampling"
	case StateFound:
		return "found"
	case StateMiss:
		return "miss"
	default:
		return "idle"
	}
}

// Outcome is the result of one capture attempt.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeFound
	OutcomeCooldown
	OutcomeNoTarget
	OutcomeNotVisible
	OutcomeOutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeNoTarget:
		return "no-target"
	case OutcomeNotVisible:
		return "not-visible"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	default:
		return "miss"
	}
}

// Capture is the artifact of a successful find.
type Capture struct {
	Name   string
	Cutout image.Image     // nil when the scene has no background
	Bounds image.Rectangle // cutout region in background pixels
}

// CaptureResult describes what a capture attempt did.
type CaptureResult struct {
	Outcome Outcome
	Target  *scene.Object // object the shutter was aimed at, if any
	Object  *scene.Object // object marked found
	Capture *Capture
	Sample  picking.Sample
}

// EventKind identifies a controller event.
type EventKind int

const (
	EventCaptured EventKind = iota
	EventMissed
	EventNudgeSkipped
	EventObjectiveAdvanced
	EventAllComplete
)

func (k EventKind) String() string {
	switch k {
	case EventCaptured:
		return "captured"
	case EventMissed:
		return "missed"
	case EventNudgeSkipped:
		return "nudge-skipped"
	case EventObjectiveAdvanced:
		return "objective-advanced"
	case EventAllComplete:
		return "all-complete"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is queued by the controller and drained by the game loop.
type Event struct {
	Kind      EventKind
	Object    *scene.Object
	Capture   *Capture
	Objective *scene.Objective // newly active objective on EventObjectiveAdvanced
}

// Options configures a Controller.
type Options struct {
	Tolerance     float64
	Gate          float64 // fraction of min(viewport W, H)
	SampleRadius  int
	Cooldown      time.Duration
	NudgeDuration time.Duration // used by the assisted protocol
	Clock         cooldown.Clock
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		Gate:          DefaultNudgeGate,
		SampleRadius:  picking.DefaultRadius,
		Cooldown:      time.Second,
		NudgeDuration: 2400 * time.Millisecond,
	}
}

// Controller runs capture attempts against one scene and viewport pair.
// It is driven from a single frame loop and is not safe for concurrent use.
type Controller struct {
	scene    *scene.Scene
	vp       *viewport.Viewport
	aim      AimAssist
	sampler  *picking.Sampler
	cooldown *cooldown.Cooldown
	clock    cooldown.Clock
	opts     Options

	state  State
	nudge  *Nudge
	events []Event
	log    *zap.Logger

	attempts metric.Int64Counter
	nudges   metric.Int64Counter
}

// New creates a controller for a scene shown through vp.
func New(sc *scene.Scene, vp *viewport.Viewport, opts Options) (*Controller, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	c := &Controller{
		scene:    sc,
		vp:       vp,
		aim:      AimAssist{Tolerance: opts.Tolerance},
		sampler:  picking.NewSampler(sc.Mask(), opts.SampleRadius),
		cooldown: cooldown.New(opts.Cooldown, opts.Clock),
		clock:    opts.Clock,
		opts:     opts,
		log:      logger.Named("camera"),
	}

	m := meter()
	var err error
	c.attempts, err = m.Int64Counter(
		"camera.capture.attempts",
		metric.WithDescription("Capture attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attempts counter: %w", err)
	}

	c.nudges, err = m.Int64Counter(
		"camera.nudges",
		metric.WithDescription("Re-centering requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating nudges counter: %w", err)
	}

	return c, nil
}

// Scene returns the scene being played.
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Viewport returns the controlled viewport.
func (c *Controller) Viewport() *viewport.Viewport {
	return c.vp
}

// Cooldown returns the capture cooldown.
func (c *Controller) Cooldown() *cooldown.Cooldown {
	return c.cooldown
}

// AimTolerance returns the centering tolerance in world pixels.
func (c *Controller) AimTolerance() float64 {
	return c.aim.Tolerance
}

// AimAssist returns the aiming policy.
func (c *Controller) AimAssist() AimAssist {
	return c.aim
}

// State returns the current capture state. Found and Miss hold while the
// cooldown runs and then fall back to Idle.
func (c *Controller) State() State {
	if c.nudge != nil {
		return StateAnimating
	}
	if (c.state == StateFound || c.state == StateMiss) && !c.cooldown.IsActive() {
		return StateIdle
	}
	return c.state
}

// Animating reports whether a nudge animation is in flight.
func (c *Controller) Animating() bool {
	return c.nudge != nil
}

// Events returns and clears the queued events.
func (c *Controller) Events() []Event {
	ev := c.events
	c.events = nil
	return ev
}

func (c *Controller) emit(e Event) {
	c.events = append(c.events, e)
}

func (c *Controller) setState(s State) {
	if c.state != s {
		c.log.Debug("state", zap.Stringer("from", c.state), zap.Stringer("to", s))
	}
	c.state = s
}

// AttemptCapture photographs the next target. The mask is sampled at tap when
// it is non-nil and inside the mask, otherwise at the viewport center.
// Captures are refused while the cooldown runs or the camera is animating.
func (c *Controller) AttemptCapture(tap *math.Vec2) CaptureResult {
	if c.cooldown.IsActive() || c.nudge != nil {
		c.log.Debug("capture refused: cooldown active",
			zap.Duration("remaining", c.cooldown.Remaining()))
		return c.record(CaptureResult{Outcome: OutcomeCooldown})
	}
	return c.capture(tap)
}

// capture runs the capture flow without the busy check.
func (c *Controller) capture(tap *math.Vec2) CaptureResult {
	target := c.scene.NextTarget()
	if target == nil {
		c.setState(StateIdle)
		return c.record(CaptureResult{Outcome: OutcomeNoTarget})
	}
	c.setState(StateTargetSelected)

	if !c.aim.IsInView(c.vp, target) {
		c.setState(StateNotVisible)
		c.log.Debug("target not in view", zap.String("target", target.Name))
		return c.record(CaptureResult{Outcome: OutcomeNotVisible, Target: target})
	}
	c.setState(StateVisible)

	point := c.vp.Center()
	if tap != nil && c.sampler.InBounds(*tap) {
		point = *tap
	}

	res := c.resolve(point)
	res.Target = target
	c.cooldown.Trigger()
	return c.record(res)
}

// ResolveTap samples and resolves directly at a world point. It skips target
// selection and the cooldown, for scenes where every tap is a guess. Taps off
// the mask are ignored.
func (c *Controller) ResolveTap(world math.Vec2) CaptureResult {
	if !c.sampler.InBounds(world) {
		c.log.Debug("tap outside mask", zap.Float64("x", world.X), zap.Float64("y", world.Y))
		return c.record(CaptureResult{Outcome: OutcomeOutOfBounds})
	}
	return c.record(c.resolve(world))
}

// resolve samples the mask at a point and marks the matching object found.
func (c *Controller) resolve(point math.Vec2) CaptureResult {
	c.setState(StateSampling)
	smp, ok := c.sampler.SampleAt(point)
	res := CaptureResult{Outcome: OutcomeMiss, Sample: smp}
	if !ok {
		c.log.Debug("no object color at sample", zap.Int("x", smp.X), zap.Int("y", smp.Y))
		c.setState(StateMiss)
		c.emit(Event{Kind: EventMissed})
		return res
	}

	obj := c.scene.MarkFoundByColor(smp.Color)
	if obj == nil {
		c.log.Debug("nothing found for color",
			zap.String("color", smp.Color), zap.Bool("fallback", smp.Fallback))
		c.setState(StateMiss)
		c.emit(Event{Kind: EventMissed})
		return res
	}

	res.Outcome = OutcomeFound
	res.Object = obj
	res.Capture = c.cutout(obj)
	c.setState(StateFound)
	c.log.Info("captured", zap.String("object", obj.Name), zap.String("color", obj.Color))
	c.emit(Event{Kind: EventCaptured, Object: obj, Capture: res.Capture})

	switch c.scene.Tracker().OnFound() {
	case scene.TransitionAdvanced:
		c.emit(Event{Kind: EventObjectiveAdvanced, Objective: c.scene.Tracker().Current()})
	case scene.TransitionAllComplete:
		c.emit(Event{Kind: EventAllComplete})
	}
	return res
}

func (c *Controller) cutout(obj *scene.Object) *Capture {
	capt := &Capture{Name: obj.Name}
	bg := c.scene.Background()
	if bg == nil || !obj.Positioned {
		return capt
	}
	capt.Bounds = texture.CutoutBounds(obj.X, obj.Y, obj.Radius, bg.Bounds().Size())
	if !capt.Bounds.Empty() {
		capt.Cutout = texture.Cutout(bg, capt.Bounds)
	}
	return capt
}

func (c *Controller) record(res CaptureResult) CaptureResult {
	c.attempts.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", res.Outcome.String())))
	return res
}

// NudgeToTarget re-centers the viewport on target over duration. Targets
// farther than the gate from the viewport center are left for the player to
// pan to. The cooldown is armed for the animation so captures wait for it.
// A running animation is cancelled first.
func (c *Controller) NudgeToTarget(ctx context.Context, target *scene.Object, duration time.Duration) *Nudge {
	if ctx == nil {
		ctx = context.Background()
	}
	c.Cancel()

	if target == nil || !target.Positioned {
		return c.nudgeDone(NudgeNoTarget, nil)
	}

	delta := c.aim.Offset(c.vp, target)
	dist := delta.Length()
	gate := c.opts.Gate * min(c.vp.Width, c.vp.Height)
	if dist > gate {
		c.log.Debug("nudge skipped: target too far",
			zap.String("target", target.Name),
			zap.Float64("distance", dist),
			zap.Float64("gate", gate))
		c.emit(Event{Kind: EventNudgeSkipped, Object: target})
		return c.nudgeDone(NudgeSkippedTooFar, nil)
	}
	if c.aim.Centered(delta) {
		return c.nudgeDone(NudgeAlreadyCentered, nil)
	}

	return c.animate(ctx, delta, duration)
}

// BeginAssistedCapture is the alternate shutter flow: when the target is out
// of view the viewport first moves half way toward it, and one capture runs on
// the terminal frame. That capture never starts another animation.
func (c *Controller) BeginAssistedCapture(ctx context.Context, tap *math.Vec2) *Nudge {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.cooldown.IsActive() || c.nudge != nil {
		res := c.AttemptCapture(tap)
		return c.nudgeDone(NudgeCancelled, &res)
	}

	target := c.scene.NextTarget()
	delta := c.aim.ComputeNudge(c.vp, target)
	if target == nil || c.aim.IsInView(c.vp, target) || delta.IsZero() {
		res := c.capture(tap)
		return c.nudgeDone(NudgeAlreadyCentered, &res)
	}

	n := c.animate(ctx, delta, c.opts.NudgeDuration)
	n.then = func() {
		// The viewport moved, so a tap taken before the animation no longer
		// points at the same thing.
		res := c.capture(nil)
		n.capture = &res
	}
	return n
}

func (c *Controller) animate(ctx context.Context, delta math.Vec2, duration time.Duration) *Nudge {
	n := newNudge(ctx)
	n.from = math.Vec2{X: c.vp.X, Y: c.vp.Y}
	n.to = n.from.Add(delta)
	n.start = c.clock()
	n.duration = duration

	n.armed = c.cooldown.TriggerFor(duration)
	c.nudge = n
	c.setState(StateAnimating)
	c.log.Debug("nudge started",
		zap.Float64("dx", delta.X), zap.Float64("dy", delta.Y),
		zap.Duration("duration", duration))
	return n
}

func (c *Controller) nudgeDone(outcome NudgeOutcome, capture *CaptureResult) *Nudge {
	c.countNudge(outcome)
	return finishedNudge(outcome, capture)
}

func (c *Controller) countNudge(outcome NudgeOutcome) {
	c.nudges.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome.String())))
}

// Update advances the running animation to frame time now. A cancelled
// animation stops here without touching the viewport.
func (c *Controller) Update(now time.Time) {
	n := c.nudge
	if n == nil {
		return
	}
	if n.ctx.Err() != nil {
		c.stop(n, NudgeCancelled)
		return
	}

	pos, finished := n.progress(now)
	c.vp.SetPosition(pos.X, pos.Y)
	if !finished {
		return
	}

	c.nudge = nil
	if n.armed {
		c.cooldown.Reset()
	}
	c.setState(StateIdle)
	if n.then != nil {
		n.then()
	}
	c.countNudge(NudgeNudged)
	n.finish(NudgeNudged)
}

// Cancel stops a running animation, leaving the viewport where it is. Call it
// when the scene reloads or the objective changes.
func (c *Controller) Cancel() {
	if c.nudge != nil {
		c.stop(c.nudge, NudgeCancelled)
	}
}

func (c *Controller) stop(n *Nudge, outcome NudgeOutcome) {
	c.nudge = nil
	if n.armed {
		c.cooldown.Reset()
	}
	c.setState(StateIdle)
	c.log.Debug("nudge stopped", zap.Stringer("outcome", outcome))
	c.countNudge(outcome)
	n.finish(outcome)
}
