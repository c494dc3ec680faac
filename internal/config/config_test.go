package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 1280 || cfg.Display.Height != 720 {
		t.Errorf("expected 1280x720 canvas, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.TPS != 60 {
		t.Errorf("expected 60 tps, got %d", cfg.Display.TPS)
	}

	if cfg.Camera.Cooldown != time.Second {
		t.Errorf("expected 1s cooldown, got %v", cfg.Camera.Cooldown)
	}
	if cfg.Camera.AimTolerance != 50 {
		t.Errorf("expected aim tolerance 50, got %v", cfg.Camera.AimTolerance)
	}
	if cfg.Camera.NudgeDuration != 2400*time.Millisecond {
		t.Errorf("expected nudge duration 2.4s, got %v", cfg.Camera.NudgeDuration)
	}
	if cfg.Camera.NudgeGate != 0.6 {
		t.Errorf("expected nudge gate 0.6, got %v", cfg.Camera.NudgeGate)
	}
	if cfg.Camera.Protocol != ProtocolDirect {
		t.Errorf("expected direct protocol, got %s", cfg.Camera.Protocol)
	}
	if cfg.Camera.SampleRadius != 12 {
		t.Errorf("expected sample radius 12, got %d", cfg.Camera.SampleRadius)
	}

	if cfg.Scenes.ViewportFraction != 0.4 {
		t.Errorf("expected viewport fraction 0.4, got %v", cfg.Scenes.ViewportFraction)
	}
	if !cfg.Scenes.ShuffleObjectives {
		t.Error("expected objective shuffling enabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1920
  height: 1080
  tps: 30

camera:
  cooldown: 500ms
  aim_tolerance: 30
  nudge_duration: 900ms
  protocol: assisted
  sample_radius: 8

scenes:
  base_path: "/wildlife-photo-game"
  default: "savanna"
  viewport_fraction: 0.5
  shuffle_objectives: false

capture:
  polaroid_max_edge: 320
  snapshot_dir: "out"
  save_snapshots: true

logging:
  level: "debug"
  log_file: "wildsnap.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1920 || cfg.Display.TPS != 30 {
		t.Errorf("display not loaded: %+v", cfg.Display)
	}
	if cfg.Camera.Cooldown != 500*time.Millisecond {
		t.Errorf("expected cooldown 500ms, got %v", cfg.Camera.Cooldown)
	}
	if cfg.Camera.NudgeDuration != 900*time.Millisecond {
		t.Errorf("expected nudge duration 900ms, got %v", cfg.Camera.NudgeDuration)
	}
	if cfg.Camera.Protocol != ProtocolAssisted {
		t.Errorf("expected assisted protocol, got %s", cfg.Camera.Protocol)
	}
	// Not in file, keeps default
	if cfg.Camera.NudgeGate != 0.6 {
		t.Errorf("expected default nudge gate 0.6, got %v", cfg.Camera.NudgeGate)
	}
	if cfg.Scenes.BasePath != "/wildlife-photo-game" || cfg.Scenes.Default != "savanna" {
		t.Errorf("scenes not loaded: %+v", cfg.Scenes)
	}
	if cfg.Scenes.Dir != "assets/scenes" {
		t.Errorf("expected default scenes dir, got %s", cfg.Scenes.Dir)
	}
	if cfg.Scenes.ShuffleObjectives {
		t.Error("expected shuffle_objectives false")
	}
	if !cfg.Capture.SaveSnapshots || cfg.Capture.SnapshotDir != "out" || cfg.Capture.PolaroidMaxEdge != 320 {
		t.Errorf("capture not loaded: %+v", cfg.Capture)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "wildsnap.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown protocol", func(c *Config) { c.Camera.Protocol = "snap" }, true},
		{"negative tolerance", func(c *Config) { c.Camera.AimTolerance = -1 }, true},
		{"zero fraction", func(c *Config) { c.Scenes.ViewportFraction = 0 }, true},
		{"fraction above one", func(c *Config) { c.Scenes.ViewportFraction = 1.5 }, true},
		{"zero canvas", func(c *Config) { c.Display.Width = 0 }, true},
		{"negative cooldown", func(c *Config) { c.Camera.Cooldown = -time.Second }, true},
		{"zero gate", func(c *Config) { c.Camera.NudgeGate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "wildsnap.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find wildsnap.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene and base path",
			setup: func() {
				*flagScene = "arctic"
				*flagBasePath = "/game"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scenes.Default != "arctic" {
					t.Errorf("expected scene arctic, got %s", cfg.Scenes.Default)
				}
				if cfg.Scenes.BasePath != "/game" {
					t.Errorf("expected base path /game, got %s", cfg.Scenes.BasePath)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagBasePath = ""
			},
		},
		{
			name:  "protocol flag",
			setup: func() { *flagProtocol = ProtocolAssisted },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Protocol != ProtocolAssisted {
					t.Errorf("expected assisted protocol, got %s", cfg.Camera.Protocol)
				}
			},
			teardown: func() { *flagProtocol = "" },
		},
		{
			name:  "canvas size",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Width != 800 || cfg.Display.Height != 600 {
					t.Errorf("expected 800x600, got %dx%d", cfg.Display.Width, cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "snapshots flag enables saving",
			setup: func() { *flagSnapshots = "/tmp/shots" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Capture.SaveSnapshots || cfg.Capture.SnapshotDir != "/tmp/shots" {
					t.Errorf("expected snapshots enabled in /tmp/shots, got %+v", cfg.Capture)
				}
			},
			teardown: func() { *flagSnapshots = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Display.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  protocol: burst\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown protocol")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.Cooldown = 750 * time.Millisecond
	cfg.Scenes.Default = "arctic"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Camera.Cooldown != 750*time.Millisecond {
		t.Errorf("expected cooldown 750ms after reload, got %v", loaded.Camera.Cooldown)
	}
	if loaded.Scenes.Default != "arctic" {
		t.Errorf("expected scene arctic after reload, got %s", loaded.Scenes.Default)
	}
}

func TestSaveToUserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	cfg := Default()
	cfg.Camera.Protocol = ProtocolAssisted
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "xdg", "wildsnap", "config.yaml"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Camera.Protocol != ProtocolAssisted {
		t.Errorf("expected saved protocol to be loaded, got %s", loaded.Camera.Protocol)
	}
}
