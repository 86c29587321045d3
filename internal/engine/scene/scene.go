// Package scene composes a frame of the campfire viewer: shadow pass, sky,
// lit opaque geometry and the particle overlay, in that order.
package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/model"
	"github.com/Faultbox/campfire/internal/engine/particle"
	"github.com/Faultbox/campfire/internal/engine/shadow"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

type shadowStage interface {
	Render(lightDir math.Vec3, bounds shadow.AABB, casters []shadow.Caster) shadow.Result
	Toggle() shadow.State
	State() shadow.State
}

type skyStage interface {
	Render(view, proj math.Mat4, night bool, tint [3]float32)
}

type opaqueStage interface {
	Render(f *LitFrame, objects []*Object)
}

type overlayStage interface {
	Render(instances []particle.Instance, view, proj math.Mat4)
}

type reloadable interface {
	Uses(file string) bool
	Reload() error
}

// FrameContext is the per-frame input of the composer. The camera and the
// particle simulation are advanced before Frame is called.
type FrameContext struct {
	// Time is seconds since start; it drives animation and fire flicker.
	Time      float32
	View      math.Mat4
	Proj      math.Mat4
	CameraPos math.Vec3
	Instances []particle.Instance
}

// Scene owns the render stages and the scene objects.
type Scene struct {
	dev gpu.Device

	shadow  shadowStage
	sky     skyStage
	lit     opaqueStage
	overlay overlayStage

	Toggles Toggles

	env     lighting.Environment
	fire    lighting.FireLight
	objects []*Object
	casters []shadow.Caster
	padding float32
	bounds  shadow.AABB

	programs []reloadable
	cleanup  []func()
}

// Stages are the render passes a Scene runs.
type Stages struct {
	Shadow  shadowStage
	Sky     skyStage
	Lit     opaqueStage
	Overlay overlayStage
}

// New assembles a scene from its stages and objects.
func New(dev gpu.Device, stages Stages, objects []*Object, env lighting.Environment, fire lighting.FireLight, padding float32) *Scene {
	s := &Scene{
		dev:     dev,
		shadow:  stages.Shadow,
		sky:     stages.Sky,
		lit:     stages.Lit,
		overlay: stages.Overlay,
		env:     env,
		fire:    fire.Clamp(),
		objects: objects,
		padding: padding,
	}
	s.Toggles.Shadows = stages.Shadow.State() == shadow.Enabled
	for _, o := range objects {
		if o.CastShadow {
			s.casters = append(s.casters, o)
		}
	}
	s.bounds = s.restBounds()
	return s
}

// Frame renders one frame and returns the shadow result the lit pass used.
func (s *Scene) Frame(ctx *FrameContext) shadow.Result {
	// One pose per frame, shared by the shadow and lit passes.
	for _, o := range s.objects {
		o.Pose(ctx.Time)
	}

	palette := s.env.Palette(s.Toggles.Night)
	res := s.shadow.Render(palette.Direction, s.bounds, s.casters)

	s.dev.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.sky.Render(ctx.View, ctx.Proj, s.Toggles.Night, palette.SkyTint)

	s.lit.Render(&LitFrame{
		View:      ctx.View,
		Proj:      ctx.Proj,
		CameraPos: ctx.CameraPos,
		Palette:   palette,
		Fire:      s.fire.Flicker(ctx.Time),
		Shadow:    res,
		Polygon:   s.Toggles.Polygon,
	}, s.objects)

	s.overlay.Render(ctx.Instances, ctx.View, ctx.Proj)
	return res
}

// ShadowBounds is the padded union of the shadow casters' rest bounds. It
// only changes when rotatable objects turn, so the light frustum stays put
// while wings flap.
func (s *Scene) ShadowBounds() shadow.AABB {
	return s.bounds
}

func (s *Scene) restBounds() shadow.AABB {
	b := model.EmptyBounds()
	for _, o := range s.objects {
		if o.CastShadow {
			b = b.Union(o.RestBounds())
		}
	}
	if b.IsEmpty() {
		return shadow.AABB{}
	}
	b = b.Pad(s.padding)
	return shadow.AABB{Min: b.Min, Max: b.Max}
}

// ToggleShadows flips the shadow pass and returns whether it is on.
func (s *Scene) ToggleShadows() bool {
	s.Toggles.Shadows = s.shadow.Toggle() == shadow.Enabled
	return s.Toggles.Shadows
}

// ToggleNight swaps the day and night sky and lighting.
func (s *Scene) ToggleNight() bool {
	s.Toggles.Night = !s.Toggles.Night
	logger.Info("sky toggled", zap.Bool("night", s.Toggles.Night))
	return s.Toggles.Night
}

// SetPolygonMode sets how opaque geometry is rasterized.
func (s *Scene) SetPolygonMode(m PolygonMode) {
	if s.Toggles.Polygon == m {
		return
	}
	s.Toggles.Polygon = m
	logger.Info("polygon mode", zap.Stringer("mode", m))
}

// RotateTerrain turns every rotatable object around Y.
func (s *Scene) RotateTerrain(deg float32) {
	for _, o := range s.objects {
		if o.Rotatable {
			o.Rotate(deg)
		}
	}
	s.bounds = s.restBounds()
}

// object returns the object named name, or nil.
func (s *Scene) object(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Fire returns the fire light before flicker.
func (s *Scene) Fire() lighting.FireLight {
	return s.fire
}

// ReloadShaders rebuilds every program using one of the changed files. A
// program that fails to build keeps running its previous version.
func (s *Scene) ReloadShaders(changed []string) {
	for _, p := range s.programs {
		for _, name := range changed {
			if !p.Uses(name) {
				continue
			}
			if err := p.Reload(); err != nil {
				logger.Error("shader reload failed", zap.String("file", name), zap.Error(err))
			} else {
				logger.Info("shader reloaded", zap.String("file", name))
			}
			break
		}
	}
}

// Destroy releases GPU resources in reverse creation order.
func (s *Scene) Destroy() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}
