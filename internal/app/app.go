// Package app runs the viewer: window, input, camera, particles, scene and
// audio, advanced once per frame on the locked main thread.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/assets"
	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/audio"
	"github.com/Faultbox/campfire/internal/engine/camera"
	"github.com/Faultbox/campfire/internal/engine/debug"
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/input"
	"github.com/Faultbox/campfire/internal/engine/particle"
	"github.com/Faultbox/campfire/internal/engine/renderer"
	"github.com/Faultbox/campfire/internal/engine/scene"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/window"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// maxFrameDelta caps dt after a stall so the simulation does not jump.
const maxFrameDelta = 0.25

// App is the viewer instance. It owns every piece of per-run state.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	scene    *scene.Scene
	audio    *audio.Manager
	watcher  *shader.Watcher
	shots    *debug.ScreenshotCapture

	camera  *camera.FlyCamera
	sim     *particle.Simulator
	packer  *particle.Packer
	emitter math.Vec3

	start             time.Time
	screenshotPending bool
}

// New creates the window, GL state, scene and subsystems.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{
		cfg:     cfg,
		input:   input.New(),
		assets:  assets.NewManager(cfg.Assets.Roots...),
		shots:   debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "campfire"),
		emitter: math.FromArray(cfg.Scene.Emitter),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "Campfire",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("viewer initialized")
	return a, nil
}

func (a *App) init() error {
	cfg := a.cfg
	dev := gpu.GL{}

	// Renderer AFTER window, since OpenGL context must exist
	width, height := a.window.GetSize()
	var err error
	a.renderer, err = renderer.New(dev, width, height)
	if err != nil {
		return err
	}
	a.window.SetTitle("Campfire (" + a.renderer.Info().Renderer + ")")

	a.scene, err = scene.Load(dev, cfg, a.assets)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	gpu.CheckError("scene load")

	a.camera = camera.NewFlyCamera(math.FromArray(cfg.Camera.Position), cfg.Camera.Yaw, cfg.Camera.Pitch)
	a.camera.Speed = cfg.Camera.Speed
	a.camera.Sensitivity = cfg.Camera.Sensitivity
	a.camera.FOV = cfg.Graphics.FOV
	a.camera.Near = cfg.Graphics.Near
	a.camera.Far = cfg.Graphics.Far

	a.sim = particle.NewSimulator(cfg.Particles, particle.NewSource(cfg.Particles.Seed))
	a.packer = particle.NewPacker(cfg.Particles.Capacity)

	if cfg.Graphics.ShaderDir != "" {
		a.watcher, err = shader.Watch(cfg.Graphics.ShaderDir)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	if cfg.Audio.Enabled {
		a.initAudio()
	}

	input.SetRelativeMouse(true)
	return nil
}

// initAudio starts the fire ambience. Audio problems never stop the viewer.
func (a *App) initAudio() {
	cfg := a.cfg.Audio
	a.audio = audio.New(float64(cfg.ReferenceDistance), float64(cfg.MaxDistance))
	a.audio.SetMasterVolume(float64(cfg.Volume))
	a.audio.SetMuted(cfg.Muted)

	if err := a.audio.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		a.audio = nil
		return
	}
	data, err := a.assets.Load(cfg.FireLoop)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			logger.Warn("fire ambience missing", zap.String("path", cfg.FireLoop))
		} else {
			logger.Warn("fire ambience unreadable", zap.Error(err))
		}
		return
	}
	if err := a.audio.PlayLoop(data, cfg.FireLoop); err != nil {
		logger.Warn("fire ambience failed", zap.Error(err))
	}
}

// Run starts the main loop and returns when the window closes or Esc is
// pressed.
func (a *App) Run() error {
	a.running = true

	// Timing
	a.start = time.Now()
	lastTime := a.start
	frameCount := 0
	fpsTimer := a.start

	logger.Info("starting main loop")

	for a.running {
		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Advance camera and particles
		a.update(dt)

		// 3. Render
		a.render(float32(now.Sub(a.start).Seconds()))

		// 4. Present (swap buffers)
		a.window.SwapBuffers()
		gpu.CheckError("frame")

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.sim.Stats()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
				zap.Int("live", stats.Live),
				zap.Int("spawned", stats.Spawned))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			a.apply(actionFor(event.Key))
		}
	}

	if a.watcher != nil {
		if changed := a.watcher.Drain(); len(changed) > 0 {
			a.scene.ReloadShaders(changed)
		}
	}
}

// apply runs one discrete action.
func (a *App) apply(action Action) {
	switch action {
	case ActionQuit:
		a.running = false
	case ActionToggleShadows:
		a.scene.ToggleShadows()
	case ActionToggleNight:
		a.scene.ToggleNight()
	case ActionPolygonFill:
		a.scene.SetPolygonMode(scene.PolygonFill)
	case ActionPolygonLine:
		a.scene.SetPolygonMode(scene.PolygonLine)
	case ActionPolygonPoint:
		a.scene.SetPolygonMode(scene.PolygonPoint)
	case ActionToggleMute:
		if a.audio != nil {
			a.audio.ToggleMute()
		}
	case ActionScreenshot:
		a.screenshotPending = true
	case ActionMoreFire, ActionLessFire:
		rate := stepEmission(a.sim.Config().EmissionRate, action)
		a.sim.SetEmissionRate(rate)
		logger.Info("emission rate", zap.Float32("per_second", rate))
	}
}

func (a *App) update(dt float32) {
	dx, dy := a.input.MouseDelta()
	a.camera.HandleMouse(float32(dx), float32(dy))
	a.camera.Move(
		a.input.Axis(keyForward, keyBack),
		a.input.Axis(keyRight, keyLeft),
		dt,
	)

	if rot := a.input.Axis(keyRotateRight, keyRotateLeft); rot != 0 {
		a.scene.RotateTerrain(rot * a.cfg.Scene.RotateSpeed * dt)
	}

	a.sim.Update(dt, a.emitter)

	if a.audio != nil {
		a.audio.SetListenerDistance(float64(a.camera.Position.Distance(a.scene.Fire().Position)))
	}
}

func (a *App) render(t float32) {
	view := a.camera.ViewMatrix()
	proj := a.camera.ProjectionMatrix(a.renderer.Aspect())

	a.scene.Frame(&scene.FrameContext{
		Time:      t,
		View:      view,
		Proj:      proj,
		CameraPos: a.camera.Position,
		Instances: a.packer.Pack(a.sim.Pool(), a.camera.Position),
	})

	if a.screenshotPending {
		a.screenshotPending = false
		w, h := a.renderer.Size()
		if name, err := a.shots.Capture(w, h); err != nil {
			logger.Error("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("file", name))
		}
	}
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.audio != nil {
		a.audio.Close()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("close shader watcher", zap.Error(err))
		}
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
