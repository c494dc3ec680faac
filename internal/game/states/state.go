// Package states implements game state management.
package states

import (
	"math/rand/v2"
	"time"

	"github.com/Faultbox/wildsnap/internal/assets"
	"github.com/Faultbox/wildsnap/internal/config"
	"github.com/Faultbox/wildsnap/internal/engine/cooldown"
	"github.com/Faultbox/wildsnap/internal/engine/debug"
	"github.com/Faultbox/wildsnap/internal/engine/input"
)

// State represents a game state (loading, playing a scene, scene complete).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame with the frame time.
	Update(now time.Time) error

	// HandleInput processes a player action.
	HandleInput(a input.Action) error
}

// Env is what states share across a session.
type Env struct {
	Config    *config.Config
	Assets    *assets.Manager
	Snapshots *debug.SnapshotWriter // nil disables saving
	Clock     cooldown.Clock
	Rand      *rand.Rand // nil keeps the authored objective order
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(now time.Time) error {
	// Handle state transition
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	// Update current state
	if m.current != nil {
		return m.current.Update(now)
	}
	return nil
}

// HandleInput forwards an action to the current state.
func (m *Manager) HandleInput(a input.Action) error {
	if m.current != nil {
		return m.current.HandleInput(a)
	}
	return nil
}
