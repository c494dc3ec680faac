// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Capture protocols supported by the camera controller.
const (
	ProtocolDirect   = "direct"
	ProtocolAssisted = "assisted"
)

// Config holds all game settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Camera  CameraConfig  `yaml:"camera"`
	Scenes  ScenesConfig  `yaml:"scenes"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig describes the canvas the viewport is mapped onto.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	TPS    int `yaml:"tps"` // frame ticks per second for the session loop
}

// CameraConfig holds capture and aim-assist tuning.
type CameraConfig struct {
	Cooldown      time.Duration `yaml:"cooldown"`
	AimTolerance  float64       `yaml:"aim_tolerance"`  // world pixels
	NudgeDuration time.Duration `yaml:"nudge_duration"` // slow re-center animation
	NudgeGate     float64       `yaml:"nudge_gate"`     // fraction of min(viewport w, h)
	Protocol      string        `yaml:"protocol"`       // "direct" or "assisted"
	SampleRadius  int           `yaml:"sample_radius"`  // neighborhood search half-width
}

// ScenesConfig holds scene asset settings.
type ScenesConfig struct {
	BasePath          string  `yaml:"base_path"`
	Dir               string  `yaml:"dir"` // relative to base_path
	Default           string  `yaml:"default"`
	ViewportFraction  float64 `yaml:"viewport_fraction"`
	ShuffleObjectives bool    `yaml:"shuffle_objectives"`
}

// CaptureConfig holds capture artifact settings.
type CaptureConfig struct {
	PolaroidMaxEdge int    `yaml:"polaroid_max_edge"`
	SnapshotDir     string `yaml:"snapshot_dir"`
	SaveSnapshots   bool   `yaml:"save_snapshots"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Camera: CameraConfig{
			Cooldown:      time.Second,
			AimTolerance:  50,
			NudgeDuration: 2400 * time.Millisecond,
			NudgeGate:     0.6,
			Protocol:      ProtocolDirect,
			SampleRadius:  12,
		},
		Scenes: ScenesConfig{
			BasePath:          ".",
			Dir:               "assets/scenes",
			Default:           "jungle_adventure",
			ViewportFraction:  0.4,
			ShuffleObjectives: true,
		},
		Capture: CaptureConfig{
			PolaroidMaxEdge: 480,
			SnapshotDir:     "snapshots",
			SaveSnapshots:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height))
	}
	if c.Display.TPS <= 0 {
		errs = append(errs, fmt.Errorf("display tps must be positive, got %d", c.Display.TPS))
	}
	if c.Camera.Protocol != ProtocolDirect && c.Camera.Protocol != ProtocolAssisted {
		errs = append(errs, fmt.Errorf("unknown camera protocol %q", c.Camera.Protocol))
	}
	if c.Camera.AimTolerance < 0 {
		errs = append(errs, fmt.Errorf("aim tolerance must not be negative, got %v", c.Camera.AimTolerance))
	}
	if c.Camera.Cooldown < 0 || c.Camera.NudgeDuration < 0 {
		errs = append(errs, errors.New("camera durations must not be negative"))
	}
	if c.Camera.NudgeGate <= 0 {
		errs = append(errs, fmt.Errorf("nudge gate must be positive, got %v", c.Camera.NudgeGate))
	}
	if c.Camera.SampleRadius < 0 {
		errs = append(errs, fmt.Errorf("sample radius must not be negative, got %d", c.Camera.SampleRadius))
	}
	if c.Scenes.ViewportFraction <= 0 || c.Scenes.ViewportFraction > 1 {
		errs = append(errs, fmt.Errorf("viewport fraction must be in (0, 1], got %v", c.Scenes.ViewportFraction))
	}
	return errors.Join(errs...)
}
