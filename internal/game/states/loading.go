package states

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/engine/input"
	"github.com/Faultbox/wildsnap/internal/logger"
	"github.com/Faultbox/wildsnap/internal/scene"
)

// LoadingState loads a scene's assets and segments its mask before play.
type LoadingState struct {
	env     *Env
	manager *Manager
	name    string

	// Loading progress
	StatusMsg    string
	ErrorMsg     string
	LoadingPhase string
	IsComplete   bool

	// Loaded data (passed to the play state)
	scene *scene.Scene

	// Timing
	startTime time.Time
}

// NewLoadingState creates a loading state for the named scene.
func NewLoadingState(env *Env, manager *Manager, name string) *LoadingState {
	return &LoadingState{
		env:          env,
		manager:      manager,
		name:         name,
		StatusMsg:    "Loading scene...",
		LoadingPhase: "init",
	}
}

// Enter is called when entering this state.
func (s *LoadingState) Enter() error {
	s.startTime = s.env.Clock()
	s.ErrorMsg = ""
	s.IsComplete = false

	logger.Info("entering LoadingState", zap.String("scene", s.name))

	s.LoadingPhase = "assets"
	bundle, err := s.env.Assets.Load(s.name)
	if err != nil {
		s.ErrorMsg = fmt.Sprintf("Could not load scene: %s", s.name)
		return fmt.Errorf("loading scene %s: %w", s.name, err)
	}

	s.LoadingPhase = "segmenting"
	rng := s.env.Rand
	if !s.env.Config.Scenes.ShuffleObjectives {
		rng = nil
	}
	s.scene = scene.New(bundle.Definition, bundle.Background, bundle.Mask, rng)
	s.scene.ExtractPositions()

	s.LoadingPhase = "ready"
	s.StatusMsg = fmt.Sprintf("Loaded %s", s.scene.Name())
	s.IsComplete = true

	logger.Debug("scene ready",
		zap.String("scene", s.name),
		zap.Duration("elapsed", s.env.Clock().Sub(s.startTime)))
	return nil
}

// Exit is called when leaving this state.
func (s *LoadingState) Exit() error {
	return nil
}

// Update is called every frame.
func (s *LoadingState) Update(now time.Time) error {
	// Transition to play when complete
	if s.IsComplete {
		s.manager.Change(NewPlayState(s.env, s.manager, s.scene))
		s.IsComplete = false
	}
	return nil
}

// HandleInput processes input events. Input is ignored while loading.
func (s *LoadingState) HandleInput(a input.Action) error {
	return nil
}

// Scene returns the loaded scene, or nil before loading finishes.
func (s *LoadingState) Scene() *scene.Scene {
	return s.scene
}

// SceneName returns the scene being loaded.
func (s *LoadingState) SceneName() string {
	return s.name
}
