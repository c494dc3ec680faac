// Package input turns player gestures into game actions and reads scripted
// action sequences for headless play.
package input

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ActionKind identifies a player action.
type ActionKind string

const (
	ActionPan     ActionKind = "pan"     // drag by DX, DY canvas pixels
	ActionTap     ActionKind = "tap"     // pointer tap at X, Y canvas pixels
	ActionShutter ActionKind = "shutter" // shutter button
	ActionWait    ActionKind = "wait"    // let Duration of frames pass
	ActionDebug   ActionKind = "debug"   // toggle debug overlays
	ActionFrame   ActionKind = "frame"   // save the current frame
	ActionLoad    ActionKind = "load"    // switch to Scene
	ActionQuit    ActionKind = "quit"
)

// Valid reports whether k is a known action.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionPan, ActionTap, ActionShutter, ActionWait, ActionDebug, ActionFrame, ActionLoad, ActionQuit:
		return true
	}
	return false
}

// Action is one player input.
type Action struct {
	Kind     ActionKind    `yaml:"action"`
	X        float64       `yaml:"x,omitempty"`
	Y        float64       `yaml:"y,omitempty"`
	DX       float64       `yaml:"dx,omitempty"`
	DY       float64       `yaml:"dy,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Scene    string        `yaml:"scene,omitempty"`
}

// Script is a recorded play session.
type Script struct {
	Scene   string   `yaml:"scene"`
	Actions []Action `yaml:"actions"`
}

// DecodeScript reads a YAML script and checks every action.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	for i, a := range s.Actions {
		if !a.Kind.Valid() {
			return nil, fmt.Errorf("action %d: unknown action %q", i, a.Kind)
		}
		if a.Kind == ActionWait && a.Duration <= 0 {
			return nil, fmt.Errorf("action %d: wait needs a positive duration", i)
		}
		if a.Kind == ActionLoad && a.Scene == "" {
			return nil, fmt.Errorf("action %d: load needs a scene", i)
		}
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return DecodeScript(f)
}

// Input collects actions between frames.
type Input struct {
	queued []Action
	events []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		queued: make([]Action, 0, 16),
		events: make([]Action, 0, 16),
	}
}

// Push queues an action for the next frame.
func (i *Input) Push(a Action) {
	i.queued = append(i.queued, a)
}

// Update moves queued actions into the current frame.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = append(i.events[:0], i.queued...)
	i.queued = i.queued[:0]

	for _, a := range i.events {
		if a.Kind == ActionQuit {
			return true
		}
	}
	return false
}

// Events returns the actions from the last Update.
func (i *Input) Events() []Action {
	return i.events
}

// Has checks if an action of the given kind happened this frame.
func (i *Input) Has(kind ActionKind) bool {
	for _, a := range i.events {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
