package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagNoShadows    = flag.Bool("no-shadows", false, "Start with shadows disabled")
	flagParticles    = flag.Int("particles", 0, "Particle pool capacity")
	flagEmissionRate = flag.Float64("emission-rate", 0, "Particles spawned per second")
	flagSeed         = flag.Uint64("seed", 0, "Particle random seed (0 uses the clock)")
	flagNoDialog     = flag.Bool("no-dialog", false, "Report fatal errors on stderr only")
	flagSaveConfig   = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DialogDisabled reports whether --no-dialog was given.
func DialogDisabled() bool {
	return *flagNoDialog
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagNoShadows {
		cfg.Shadows.Enabled = false
	}
	if *flagParticles > 0 {
		cfg.Particles.Capacity = *flagParticles
	}
	if *flagEmissionRate > 0 {
		cfg.Particles.EmissionRate = float32(*flagEmissionRate)
	}
	if *flagSeed != 0 {
		cfg.Particles.Seed = *flagSeed
	}
}
