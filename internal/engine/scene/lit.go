package scene

import (
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/shadow"
	"github.com/Faultbox/campfire/pkg/math"
)

// LitFrame is everything the lit pass reads for one frame.
type LitFrame struct {
	View, Proj math.Mat4
	CameraPos  math.Vec3
	Palette    lighting.Palette
	Fire       lighting.FireLight
	Shadow     shadow.Result
	Polygon    PolygonMode
}

// LitRenderer draws opaque objects with the directional light, the fire
// light and the shadow map.
type LitRenderer struct {
	dev  gpu.Device
	prog program[LitUniform]
}

// NewLitRenderer creates the lit pass.
func NewLitRenderer(dev gpu.Device, prog program[LitUniform]) *LitRenderer {
	return &LitRenderer{dev: dev, prog: prog}
}

// Render draws objects. The shadow texture and light-space matrix come from
// this frame's shadow pass.
func (r *LitRenderer) Render(f *LitFrame, objects []*Object) {
	dev, p := r.dev, r.prog

	dev.PolygonMode(f.Polygon.GL())
	dev.UseProgram(p.Handle())

	dev.UniformMatrix4(p.Loc(LitView), &f.View)
	dev.UniformMatrix4(p.Loc(LitProjection), &f.Proj)
	dev.UniformMatrix4(p.Loc(LitLightSpace), &f.Shadow.LightSpace)
	dev.Uniform3(p.Loc(LitCameraPos), f.CameraPos.Array())

	dev.Uniform3(p.Loc(LitLightDir), f.Palette.Direction.Array())
	dev.Uniform3(p.Loc(LitLightColor), f.Palette.LightColor)
	dev.Uniform3(p.Loc(LitAmbient), f.Palette.Ambient)
	dev.Uniform1f(p.Loc(LitLightIntensity), f.Palette.Intensity)

	dev.Uniform3(p.Loc(LitFirePos), f.Fire.Position.Array())
	dev.Uniform3(p.Loc(LitFireColor), f.Fire.Color)
	dev.Uniform1f(p.Loc(LitFireRange), f.Fire.Range)
	dev.Uniform1f(p.Loc(LitFireIntensity), f.Fire.Intensity*f.Palette.FireBoost)

	dev.Uniform1i(p.Loc(LitDiffuse), unitDiffuse)
	dev.Uniform1i(p.Loc(LitShadowMap), unitShadow)
	dev.BindTexture(unitShadow, f.Shadow.DepthTexture)

	for _, o := range objects {
		if o.mesh == nil {
			continue
		}
		normal := o.model.NormalMatrix()
		dev.UniformMatrix4(p.Loc(LitModel), &o.model)
		dev.UniformMatrix3(p.Loc(LitNormalMatrix), &normal)
		dev.Uniform1f(p.Loc(LitShininess), o.Material.Shininess)
		dev.Uniform1f(p.Loc(LitSpecularStrength), o.Material.SpecularStrength)
		dev.Uniform1f(p.Loc(LitLightMultiplier), o.Material.LightMultiplier)
		dev.BindTexture(unitDiffuse, o.texture)
		o.mesh.Draw()
	}

	dev.PolygonMode(PolygonFill.GL())
}
