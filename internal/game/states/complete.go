package states

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/engine/input"
	"github.com/Faultbox/wildsnap/internal/logger"
)

// Summary is the result of playing a scene.
type Summary struct {
	Scene string
	Found int
	Total int
	Stats Stats
}

// CompleteState is shown once every objective of a scene is done.
type CompleteState struct {
	env     *Env
	manager *Manager
	summary Summary
}

// NewCompleteState creates the completion state.
func NewCompleteState(env *Env, manager *Manager, summary Summary) *CompleteState {
	return &CompleteState{env: env, manager: manager, summary: summary}
}

// Enter is called when entering this state.
func (s *CompleteState) Enter() error {
	logger.Info("scene complete",
		zap.String("scene", s.summary.Scene),
		zap.Int("photographed", s.summary.Found),
		zap.Int("total", s.summary.Total),
		zap.Int("shots", s.summary.Stats.Shots),
		zap.Int("missed", s.summary.Stats.Missed))
	return nil
}

// Exit is called when leaving this state.
func (s *CompleteState) Exit() error {
	return nil
}

// Update is called every frame.
func (s *CompleteState) Update(now time.Time) error {
	return nil
}

// HandleInput processes input events. Only loading another scene does anything.
func (s *CompleteState) HandleInput(a input.Action) error {
	if a.Kind == input.ActionLoad {
		s.manager.Change(NewLoadingState(s.env, s.manager, a.Scene))
	}
	return nil
}

// Summary returns the scene result.
func (s *CompleteState) Summary() Summary {
	return s.summary
}
