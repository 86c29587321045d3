// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/campfire/internal/engine/particle"
)

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Scene     SceneConfig     `yaml:"scene"`
	Particles particle.Config `yaml:"particles"`
	Shadows   ShadowConfig    `yaml:"shadows"`
	Audio     AudioConfig     `yaml:"audio"`
	Assets    AssetsConfig    `yaml:"assets"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`

	// ShaderDir, when set, loads shaders from disk and reloads them on change
	// instead of using the embedded sources.
	ShaderDir     string `yaml:"shader_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig holds the fly camera's start pose and input tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`   // degrees
	Pitch       float32    `yaml:"pitch"` // degrees
	Speed       float32    `yaml:"speed"` // units per second
	Sensitivity float32    `yaml:"sensitivity"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Enabled    bool  `yaml:"enabled"`
	Resolution int32 `yaml:"resolution"`
	// Padding grows the caster bounds so the shadow frustum does not clip
	// animated parts.
	Padding float32 `yaml:"padding"`
}

// AudioConfig holds ambience settings.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float32 `yaml:"volume"`
	Muted    bool    `yaml:"muted"`
	FireLoop string  `yaml:"fire_loop"`

	// Full volume inside ReferenceDistance, silent past MaxDistance.
	ReferenceDistance float32 `yaml:"reference_distance"`
	MaxDistance       float32 `yaml:"max_distance"`
}

// AssetsConfig holds asset search roots, tried in order.
type AssetsConfig struct {
	Roots []string `yaml:"roots"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1024,
			Height:        768,
			Fullscreen:    false,
			VSync:         true,
			FOV:           55,
			Near:          0.1,
			Far:           100000,
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 5, 15},
			Yaw:         -90,
			Pitch:       0,
			Speed:       10,
			Sensitivity: 0.1,
		},
		Scene:     defaultScene(),
		Particles: particle.DefaultConfig(),
		Shadows: ShadowConfig{
			Enabled:    true,
			Resolution: 8192,
			Padding:    1,
		},
		Audio: AudioConfig{
			Enabled:           true,
			Volume:            0.8,
			FireLoop:          "sounds/fire.wav",
			ReferenceDistance: 3,
			MaxDistance:       40,
		},
		Assets: AssetsConfig{
			Roots: []string{"assets", "."},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks value ranges and returns every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics.fov must be in (0,180), got %g", c.Graphics.FOV))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, errors.New("graphics clip planes must satisfy 0 < near < far"))
	}
	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera.sensitivity must be positive, got %g", c.Camera.Sensitivity))
	}
	if c.Shadows.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("shadows.resolution must be positive, got %d", c.Shadows.Resolution))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0,1], got %g", c.Audio.Volume))
	}
	if c.Audio.MaxDistance < c.Audio.ReferenceDistance {
		errs = append(errs, errors.New("audio.max_distance must not be below reference_distance"))
	}
	if err := c.Particles.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Scene.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
