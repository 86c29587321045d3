package shadow

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/pkg/math"
)

// State is the shadow pass state.
type State int

const (
	Disabled State = iota
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

// DepthUniform enumerates the depth program's uniforms.
type DepthUniform int

const (
	DepthLightSpace DepthUniform = iota
	DepthModel
)

// DepthUniformNames are the GLSL names of DepthUniform values, in order.
var DepthUniformNames = []string{"uLightSpace", "uModel"}

// Program is the depth-only program the pass draws with.
type Program interface {
	Handle() uint32
	Loc(u DepthUniform) int32
}

// Caster is anything drawn into the shadow map. DrawDepth must upload its
// model matrix to locModel and draw with the pose used by the main pass.
type Caster interface {
	DrawDepth(dev gpu.Device, locModel int32)
}

// Result is what the main pass samples for this frame.
type Result struct {
	Enabled      bool
	LightSpace   math.Mat4
	DepthTexture uint32
}

// Pass renders casters into the shadow map once per frame.
type Pass struct {
	dev      gpu.Device
	target   *Map
	fallback uint32
	program  Program
	state    State
}

// NewPass creates a pass drawing into target with program. fallback is the
// texture handed to the main pass while disabled. A nil target keeps the
// pass disabled for good.
func NewPass(dev gpu.Device, target *Map, fallback uint32, program Program, enabled bool) *Pass {
	p := &Pass{
		dev:      dev,
		target:   target,
		fallback: fallback,
		program:  program,
	}
	p.SetEnabled(enabled)
	return p
}

// State returns the current state.
func (p *Pass) State() State {
	return p.state
}

// Available reports whether the pass has a usable shadow map.
func (p *Pass) Available() bool {
	return p.target.IsValid() && p.program != nil
}

// SetEnabled switches the pass on or off. Enabling without a shadow map
// logs a warning and leaves the pass disabled.
func (p *Pass) SetEnabled(on bool) {
	if on && !p.Available() {
		logger.Warn("shadows unavailable, staying disabled")
		p.state = Disabled
		return
	}
	if on {
		p.state = Enabled
	} else {
		p.state = Disabled
	}
}

// Toggle flips the state and returns the new one.
func (p *Pass) Toggle() State {
	p.SetEnabled(p.state == Disabled)
	logger.Info("shadows toggled", zap.Stringer("state", p.state))
	return p.state
}

// Render draws casters from the light when enabled. When disabled it draws
// nothing and returns the fallback texture.
func (p *Pass) Render(lightDir math.Vec3, bounds AABB, casters []Caster) Result {
	if p.state != Enabled {
		return Result{
			Enabled:      false,
			LightSpace:   math.Identity(),
			DepthTexture: p.fallback,
		}
	}

	lightSpace := LightSpaceMatrix(lightDir, bounds)

	p.target.Bind(p.dev)
	p.dev.UseProgram(p.program.Handle())
	p.dev.UniformMatrix4(p.program.Loc(DepthLightSpace), &lightSpace)

	locModel := p.program.Loc(DepthModel)
	for _, c := range casters {
		c.DrawDepth(p.dev, locModel)
	}

	p.target.Unbind(p.dev)

	return Result{
		Enabled:      true,
		LightSpace:   lightSpace,
		DepthTexture: p.target.DepthTexture,
	}
}

// Destroy releases the shadow map and fallback texture.
func (p *Pass) Destroy() {
	if p.target != nil {
		p.target.Destroy()
	}
	if p.fallback != 0 {
		gl.DeleteTextures(1, &p.fallback)
		p.fallback = 0
	}
}
