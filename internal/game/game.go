// Package game implements the main game loop and state management.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/assets"
	"github.com/Faultbox/wildsnap/internal/config"
	"github.com/Faultbox/wildsnap/internal/engine/debug"
	"github.com/Faultbox/wildsnap/internal/engine/input"
	"github.com/Faultbox/wildsnap/internal/game/states"
	"github.com/Faultbox/wildsnap/internal/logger"
)

// Game is a headless play session. Time only moves when actions ask for it,
// so a run is reproducible for a given script.
type Game struct {
	config  *config.Config
	env     *states.Env
	states  *states.Manager
	input   *input.Input
	running bool

	now   time.Time
	tick  time.Duration
	frame int
}

// Option customizes a Game.
type Option func(*Game)

// WithAssets replaces the asset manager built from the config.
func WithAssets(m *assets.Manager) Option {
	return func(g *Game) {
		g.env.Assets = m
	}
}

// WithStartTime sets the session clock's starting time.
func WithStartTime(t time.Time) Option {
	return func(g *Game) {
		g.now = t
	}
}

// WithRand sets the objective shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.env.Rand = r
	}
}

// New creates a new game instance.
func New(cfg *config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g := &Game{
		config: cfg,
		states: states.NewManager(),
		input:  input.New(),
		now:    time.Now(),
		tick:   time.Second / time.Duration(cfg.Display.TPS),
	}
	g.env = &states.Env{
		Config: cfg,
		Assets: assets.NewManager(cfg.Scenes.BasePath, cfg.Scenes.Dir),
		Clock:  g.Now,
		Rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	if cfg.Capture.SaveSnapshots {
		g.env.Snapshots = debug.NewSnapshotWriter(cfg.Capture.SnapshotDir, "wildsnap")
	}
	for _, opt := range opts {
		opt(g)
	}

	snapshots := ""
	if g.env.Snapshots != nil {
		snapshots = g.env.Snapshots.OutputDir()
	}
	logger.Info("game initialized",
		zap.String("scenes", g.env.Assets.Root()),
		zap.String("snapshots", snapshots),
		zap.String("protocol", cfg.Camera.Protocol),
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
		zap.Duration("tick", g.tick))
	return g, nil
}

// Now returns the session clock.
func (g *Game) Now() time.Time {
	return g.now
}

// State returns the current game state.
func (g *Game) State() states.State {
	return g.states.Current()
}

// Frames returns the number of frames run.
func (g *Game) Frames() int {
	return g.frame
}

// Start loads a scene and runs the first frames needed to begin playing it.
func (g *Game) Start(sceneName string) error {
	g.running = true
	g.states.Change(states.NewLoadingState(g.env, g.states, sceneName))
	// One frame enters loading, the next enters play.
	for range 2 {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// Push queues an action for the next frame.
func (g *Game) Push(a input.Action) {
	g.input.Push(a)
}

// Step runs one frame: it handles queued actions, advances the clock by one
// tick and updates the current state.
func (g *Game) Step() error {
	if g.input.Update() {
		g.running = false
	}

	for _, a := range g.input.Events() {
		if a.Kind == input.ActionQuit || a.Kind == input.ActionWait {
			continue
		}
		if err := g.states.HandleInput(a); err != nil {
			return fmt.Errorf("handling %s: %w", a.Kind, err)
		}
	}
	return g.step()
}

func (g *Game) step() error {
	g.now = g.now.Add(g.tick)
	g.frame++
	if err := g.states.Update(g.now); err != nil {
		return fmt.Errorf("update error: %w", err)
	}
	return nil
}

// Advance runs frames until d of session time has passed.
func (g *Game) Advance(d time.Duration) error {
	end := g.now.Add(d)
	for g.now.Before(end) {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run plays a script: each action is handled on its own frame and waits run
// frames for their duration. It stops early on quit or when ctx is done.
func (g *Game) Run(ctx context.Context, actions []input.Action) error {
	if !g.running {
		return fmt.Errorf("game not started")
	}

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !g.running {
			break
		}

		logger.Debug("action", zap.Int("index", i), zap.String("kind", string(a.Kind)))
		if a.Kind == input.ActionWait {
			if err := g.Advance(a.Duration); err != nil {
				return err
			}
			continue
		}

		g.Push(a)
		if err := g.Step(); err != nil {
			return err
		}
	}

	logger.Info("script finished", zap.Int("frames", g.frame))
	return nil
}

// Summary returns the current scene's result, if a scene is being played or
// has been completed.
func (g *Game) Summary() (states.Summary, bool) {
	switch s := g.states.Current().(type) {
	case *states.PlayState:
		return s.Summary(), true
	case *states.CompleteState:
		return s.Summary(), true
	}
	return states.Summary{}, false
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")
	if s := g.states.Current(); s != nil {
		if err := s.Exit(); err != nil {
			logger.Warn("state exit failed", zap.Error(err))
		}
	}

	cache := g.env.Assets.Cache()
	hits, misses := cache.Stats()
	logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	cache.Clear()
	g.running = false
}
