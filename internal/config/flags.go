package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagScene     = flag.String("scene", "", "Scene to load")
	flagBasePath  = flag.String("base-path", "", "Asset base path")
	flagProtocol  = flag.String("protocol", "", "Capture protocol (direct, assisted)")
	flagWidth     = flag.Int("width", 0, "Canvas width")
	flagHeight    = flag.Int("height", 0, "Canvas height")
	flagSnapshots = flag.String("snapshots", "", "Save capture snapshots to this directory")
	flagWrite     = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfig reports whether --write-config was given.
func WriteConfig() bool {
	return *flagWrite
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scenes.Default = *flagScene
	}
	if *flagBasePath != "" {
		cfg.Scenes.BasePath = *flagBasePath
	}
	if *flagProtocol != "" {
		cfg.Camera.Protocol = *flagProtocol
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagSnapshots != "" {
		cfg.Capture.SnapshotDir = *flagSnapshots
		cfg.Capture.SaveSnapshots = true
	}
}
