package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 768 {
		t.Errorf("expected height 768, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 55 {
		t.Errorf("expected fov 55, got %f", cfg.Graphics.FOV)
	}

	// Test camera defaults
	if cfg.Camera.Position != [3]float32{0, 5, 15} {
		t.Errorf("expected camera at (0,5,15), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Yaw != -90 {
		t.Errorf("expected yaw -90, got %f", cfg.Camera.Yaw)
	}
	if cfg.Camera.Sensitivity != 0.1 {
		t.Errorf("expected sensitivity 0.1, got %f", cfg.Camera.Sensitivity)
	}

	// Test particle defaults
	if cfg.Particles.Capacity != 1000 {
		t.Errorf("expected capacity 1000, got %d", cfg.Particles.Capacity)
	}
	if cfg.Particles.EmissionRate != 400 {
		t.Errorf("expected emission rate 400, got %f", cfg.Particles.EmissionRate)
	}

	// Test shadow defaults
	if !cfg.Shadows.Enabled {
		t.Error("expected shadows enabled by default")
	}
	if cfg.Shadows.Resolution != 8192 {
		t.Errorf("expected shadow resolution 8192, got %d", cfg.Shadows.Resolution)
	}

	// Test scene defaults: matterhorn, its parts, penguin with two wings, astronaut
	if got, want := len(cfg.Scene.Objects), 1+matterhornParts+4; got != want {
		t.Errorf("expected %d scene objects, got %d", want, got)
	}
	animated := 0
	for _, o := range cfg.Scene.Objects {
		if o.Animation != nil {
			animated++
		}
	}
	if animated != 2 {
		t.Errorf("expected 2 animated objects, got %d", animated)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  shader_dir: "shaders"

particles:
  capacity: 250
  emission_rate: 120.5
  fire:
    life: {min: 0.5, max: 0.9}

shadows:
  enabled: false
  resolution: 2048

scene:
  light_dir: [0.2, -1, 0]
  objects:
    - name: rock
      role: prop
      mesh: models/rock.gltf
      cast_shadows: false
      animation:
        axis: [0, 1, 0]
        amplitude: 10
        frequency: 0.5

audio:
  volume: 0.5
  muted: true

logging:
  level: "debug"
  log_file: "campfire.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.ShaderDir != "shaders" {
		t.Errorf("expected shader dir 'shaders', got %s", cfg.Graphics.ShaderDir)
	}

	if cfg.Particles.Capacity != 250 {
		t.Errorf("expected capacity 250, got %d", cfg.Particles.Capacity)
	}
	if cfg.Particles.EmissionRate != 120.5 {
		t.Errorf("expected emission rate 120.5, got %f", cfg.Particles.EmissionRate)
	}
	if cfg.Particles.Fire.Life.Max != 0.9 {
		t.Errorf("expected fire life max 0.9, got %f", cfg.Particles.Fire.Life.Max)
	}
	// Untouched keys keep their defaults
	if cfg.Particles.FireProbability != 0.85 {
		t.Errorf("expected fire probability to stay 0.85, got %f", cfg.Particles.FireProbability)
	}

	if cfg.Shadows.Enabled {
		t.Error("expected shadows to be disabled")
	}
	if cfg.Shadows.Resolution != 2048 {
		t.Errorf("expected shadow resolution 2048, got %d", cfg.Shadows.Resolution)
	}

	if len(cfg.Scene.Objects) != 1 {
		t.Fatalf("expected object list to be replaced, got %d objects", len(cfg.Scene.Objects))
	}
	rock := cfg.Scene.Objects[0]
	if rock.CastsShadows() {
		t.Error("expected rock to opt out of shadows")
	}
	if rock.Animation == nil || rock.Animation.Amplitude != 10 {
		t.Errorf("expected rock animation amplitude 10, got %+v", rock.Animation)
	}
	if cfg.Scene.Sky.Mesh == "" {
		t.Error("expected sky to keep its default mesh")
	}

	if cfg.Audio.Volume != 0.5 {
		t.Errorf("expected volume 0.5, got %f", cfg.Audio.Volume)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "campfire.log" {
		t.Errorf("expected log file 'campfire.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero width",
			mutate:  func(c *Config) { c.Graphics.Width = 0 },
			wantErr: "graphics size",
		},
		{
			name:    "clip planes",
			mutate:  func(c *Config) { c.Graphics.Far = c.Graphics.Near },
			wantErr: "near < far",
		},
		{
			name:    "particle capacity",
			mutate:  func(c *Config) { c.Particles.Capacity = -1 },
			wantErr: "particles.capacity",
		},
		{
			name:    "shadow resolution",
			mutate:  func(c *Config) { c.Shadows.Resolution = 0 },
			wantErr: "shadows.resolution",
		},
		{
			name: "unknown role",
			mutate: func(c *Config) {
				c.Scene.Objects[0].Role = "vehicle"
			},
			wantErr: "unknown role",
		},
		{
			name: "duplicate name",
			mutate: func(c *Config) {
				c.Scene.Objects[1].Name = c.Scene.Objects[0].Name
			},
			wantErr: "duplicate name",
		},
		{
			name:    "zero light direction",
			mutate:  func(c *Config) { c.Scene.LightDir = [3]float32{} },
			wantErr: "light_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	cfg.Particles.EmissionRate = 250
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640, got %d", loaded.Graphics.Width)
	}
	if loaded.Particles.EmissionRate != 250 {
		t.Errorf("expected emission rate 250, got %f", loaded.Particles.EmissionRate)
	}
	if len(loaded.Scene.Objects) != len(cfg.Scene.Objects) {
		t.Errorf("expected %d objects, got %d", len(cfg.Scene.Objects), len(loaded.Scene.Objects))
	}
}

func TestSaveWritesConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not redirected by XDG_CONFIG_HOME here")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Shadows.Enabled = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, filepath.Join(ConfigDir(), "config.yaml")); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Shadows.Enabled {
		t.Error("expected shadows disabled after reload")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Create temp directory and change to it
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create campfire.yaml in current directory
	if err := os.WriteFile("campfire.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find campfire.yaml in current directory")
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
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "no-shadows flag",
			setup: func() {
				*flagNoShadows = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shadows.Enabled {
					t.Error("expected shadows disabled with no-shadows flag")
				}
			},
			teardown: func() {
				*flagNoShadows = false
			},
		},
		{
			name: "particle flags",
			setup: func() {
				*flagParticles = 500
				*flagEmissionRate = 200
				*flagSeed = 42
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Particles.Capacity != 500 {
					t.Errorf("expected capacity 500, got %d", cfg.Particles.Capacity)
				}
				if cfg.Particles.EmissionRate != 200 {
					t.Errorf("expected emission rate 200, got %f", cfg.Particles.EmissionRate)
				}
				if cfg.Particles.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Particles.Seed)
				}
			},
			teardown: func() {
				*flagParticles = 0
				*flagEmissionRate = 0
				*flagSeed = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
particles:
  emission_rate: 300
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Particles.EmissionRate != 300 {
		t.Errorf("expected emission rate 300 from file, got %f", cfg.Particles.EmissionRate)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("particles:\n  capacity: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject a negative capacity")
	}
}
