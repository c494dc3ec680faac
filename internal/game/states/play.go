package states

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/config"
	"github.com/Faultbox/wildsnap/internal/engine/camera"
	"github.com/Faultbox/wildsnap/internal/engine/debug"
	"github.com/Faultbox/wildsnap/internal/engine/input"
	"github.com/Faultbox/wildsnap/internal/engine/texture"
	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/logger"
	"github.com/Faultbox/wildsnap/internal/scene"
	"github.com/Faultbox/wildsnap/pkg/math"
)

// Stats counts what happened while playing a scene.
type Stats struct {
	Shots     int      // shutter presses and taps resolved
	Found     int
	Missed    int
	Skipped   int      // nudges refused because the target was too far
	Captured  []string // object names in capture order
	Snapshots []string // saved files
}

// PlayState runs one scene: panning, taps, the shutter and objective progress.
type PlayState struct {
	env     *Env
	manager *Manager

	scene *scene.Scene
	vp    *viewport.Viewport
	ctrl  *camera.Controller

	canvasW, canvasH float64

	ctx    context.Context
	cancel context.CancelFunc

	lastTap    *math.Vec2 // world position of the last tap
	pending    *camera.Nudge
	pendingTap *math.Vec2
	assisted   *camera.Nudge

	debug    bool
	Stats    Stats
	ErrorMsg string
}

// NewPlayState creates the play state for a loaded scene.
func NewPlayState(env *Env, manager *Manager, sc *scene.Scene) *PlayState {
	return &PlayState{
		env:     env,
		manager: manager,
		scene:   sc,
		canvasW: float64(env.Config.Display.Width),
		canvasH: float64(env.Config.Display.Height),
	}
}

// Enter is called when entering this state.
func (s *PlayState) Enter() error {
	w, h := s.scene.Size()
	s.vp = viewport.Fit(float64(w), float64(h), s.canvasW, s.canvasH, s.env.Config.Scenes.ViewportFraction)

	cam := s.env.Config.Camera
	ctrl, err := camera.New(s.scene, s.vp, camera.Options{
		Tolerance:     cam.AimTolerance,
		Gate:          cam.NudgeGate,
		SampleRadius:  cam.SampleRadius,
		Cooldown:      cam.Cooldown,
		NudgeDuration: cam.NudgeDuration,
		Clock:         s.env.Clock,
	})
	if err != nil {
		return fmt.Errorf("creating camera: %w", err)
	}
	s.ctrl = ctrl
	s.ctx, s.cancel = context.WithCancel(context.Background())

	logger.Info("entering PlayState",
		zap.String("scene", s.scene.Name()),
		zap.String("type", string(s.scene.Type())),
		zap.Float64("viewportW", s.vp.Width),
		zap.Float64("viewportH", s.vp.Height))
	s.logObjective()
	return nil
}

// Exit is called when leaving this state.
func (s *PlayState) Exit() error {
	if s.ctrl != nil {
		s.ctrl.Cancel()
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Update is called every frame.
func (s *PlayState) Update(now time.Time) error {
	s.ctrl.Update(now)
	s.resolvePending()
	s.resolveAssisted()
	return s.handleEvents()
}

// HandleInput processes a player action.
func (s *PlayState) HandleInput(a input.Action) error {
	switch a.Kind {
	case input.ActionPan:
		if s.ctrl.Animating() {
			logger.Debug("pan ignored while camera animates")
			return nil
		}
		s.vp.PanScreen(a.DX, a.DY, s.canvasW, s.canvasH)

	case input.ActionTap:
		world := s.vp.ScreenToWorld(a.X, a.Y, s.canvasW, s.canvasH)
		s.lastTap = &world
		logger.Debug("tap", zap.Float64("worldX", world.X), zap.Float64("worldY", world.Y))
		if s.scene.Type() == scene.TypeWimmelbild {
			if res := s.ctrl.ResolveTap(world); res.Outcome == camera.OutcomeOutOfBounds {
				return nil
			}
			s.Stats.Shots++
			return s.handleEvents()
		}

	case input.ActionShutter:
		return s.shutter()

	case input.ActionDebug:
		s.debug = !s.debug
		if s.debug {
			logger.SetLevel("debug")
		} else {
			logger.SetLevel(s.env.Config.Logging.Level)
		}
		logger.Info("debug mode", zap.Bool("enabled", s.debug))

	case input.ActionFrame:
		return s.saveFrame()

	case input.ActionLoad:
		s.manager.Change(NewLoadingState(s.env, s.manager, a.Scene))
	}
	return nil
}

// shutter runs the photo-mode capture flow for the configured protocol.
// Presses during the cooldown or a camera move do nothing. Events of a
// capture that completes right away are handled before returning, so a
// later press in the same frame sees the advanced objective.
func (s *PlayState) shutter() error {
	if s.scene.Type() == scene.TypeWimmelbild {
		logger.Debug("shutter ignored in wimmelbild scene")
		return nil
	}
	if s.pending != nil || s.assisted != nil || s.ctrl.Animating() {
		logger.Debug("shutter ignored while camera animates")
		return nil
	}
	if cd := s.ctrl.Cooldown(); cd.IsActive() {
		logger.Debug("shutter ignored during cooldown", zap.Duration("remaining", cd.Remaining()))
		return nil
	}
	s.Stats.Shots++

	if s.env.Config.Camera.Protocol == config.ProtocolAssisted {
		s.assisted = s.ctrl.BeginAssistedCapture(s.ctx, s.lastTap)
		s.resolveAssisted()
		return s.handleEvents()
	}

	target := s.scene.NextTarget()
	if target == nil {
		logger.Info("no target remains")
		return nil
	}
	s.pending = s.ctrl.NudgeToTarget(s.ctx, target, s.env.Config.Camera.NudgeDuration)
	s.pendingTap = s.lastTap
	s.resolvePending()
	return s.handleEvents()
}

// resolvePending finishes a direct-protocol shutter press once its nudge is done.
func (s *PlayState) resolvePending() {
	if s.pending == nil || !done(s.pending) {
		return
	}
	n := s.pending
	s.pending = nil

	switch n.Outcome() {
	case camera.NudgeSkippedTooFar:
		s.Stats.Skipped++
		logger.Info("target too far to re-center, pan closer first")
	case camera.NudgeAlreadyCentered, camera.NudgeNudged:
		res := s.ctrl.AttemptCapture(s.pendingTap)
		logger.Debug("capture attempt", zap.Stringer("outcome", res.Outcome))
	default:
		logger.Debug("shutter dropped", zap.Stringer("nudge", n.Outcome()))
	}
	s.pendingTap = nil
}

// resolveAssisted clears an assisted capture once its nudge is done.
func (s *PlayState) resolveAssisted() {
	if s.assisted == nil || !done(s.assisted) {
		return
	}
	if res, ok := s.assisted.Capture(); ok {
		logger.Debug("assisted capture", zap.Stringer("outcome", res.Outcome))
	}
	s.assisted = nil
}

func (s *PlayState) handleEvents() error {
	for _, ev := range s.ctrl.Events() {
		switch ev.Kind {
		case camera.EventCaptured:
			s.Stats.Found++
			s.Stats.Captured = append(s.Stats.Captured, ev.Object.Name)
			if err := s.savePolaroid(ev.Capture); err != nil {
				logger.Warn("failed to save polaroid", zap.Error(err))
			}

		case camera.EventMissed:
			s.Stats.Missed++

		case camera.EventNudgeSkipped:
			logger.Debug("nudge skipped", zap.String("target", ev.Object.Name))

		case camera.EventObjectiveAdvanced:
			// An objective change invalidates any animation toward the old target.
			s.ctrl.Cancel()
			s.logObjective()

		case camera.EventAllComplete:
			logger.Info("all objects found", zap.String("scene", s.scene.Name()))
			s.manager.Change(NewCompleteState(s.env, s.manager, s.Summary()))
		}
	}
	return nil
}

func (s *PlayState) savePolaroid(c *camera.Capture) error {
	if c == nil || c.Cutout == nil || s.env.Snapshots == nil {
		return nil
	}
	card := texture.Polaroid(c.Cutout, s.env.Config.Capture.PolaroidMaxEdge)
	path, err := s.env.Snapshots.Save(c.Name, card)
	if err != nil {
		return err
	}
	s.Stats.Snapshots = append(s.Stats.Snapshots, path)
	logger.Info("polaroid saved", zap.String("object", c.Name), zap.String("path", path))
	return nil
}

func (s *PlayState) saveFrame() error {
	if s.env.Snapshots == nil {
		logger.Debug("frame ignored, snapshots disabled")
		return nil
	}
	path, err := s.env.Snapshots.Save("frame", s.Frame())
	if err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	s.Stats.Snapshots = append(s.Stats.Snapshots, path)
	return nil
}

// Frame renders what the player currently sees.
func (s *PlayState) Frame() image.Image {
	canvas := image.Pt(int(s.canvasW), int(s.canvasH))
	return debug.RenderFrame(s.scene.Background(), s.vp, canvas, s.scene.Objects(), debug.FrameOptions{
		Debug:     s.debug,
		Tolerance: s.ctrl.AimTolerance(),
	})
}

func (s *PlayState) logObjective() {
	obj := s.scene.Tracker().Current()
	if obj == nil {
		return
	}
	fields := []zap.Field{zap.String("objective", obj.Label())}
	for _, p := range s.scene.Tracker().Progress() {
		fields = append(fields, zap.String(p.Title, fmt.Sprintf("%d/%d", p.Found, p.Total)))
	}
	logger.Info("objective", fields...)
}

// Summary reports the scene outcome so far.
func (s *PlayState) Summary() Summary {
	found := 0
	for _, o := range s.scene.Objects() {
		if o.Found {
			found++
		}
	}
	return Summary{
		Scene: s.scene.Name(),
		Found: found,
		Total: len(s.scene.Objects()),
		Stats: s.Stats,
	}
}

// Scene returns the scene being played.
func (s *PlayState) Scene() *scene.Scene {
	return s.scene
}

// Viewport returns the viewport.
func (s *PlayState) Viewport() *viewport.Viewport {
	return s.vp
}

// Camera returns the capture controller.
func (s *PlayState) Camera() *camera.Controller {
	return s.ctrl
}

// Debug reports whether debug overlays are on.
func (s *PlayState) Debug() bool {
	return s.debug
}

func done(n *camera.Nudge) bool {
	select {
	case <-n.Done():
		return true
	default:
		return false
	}
}
