package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/pkg/math"
)

// Sky is the textured dome drawn behind everything else.
type Sky struct {
	dev  gpu.Device
	prog program[SkyUniform]
	mesh drawable

	day, night uint32
	model      math.Mat4
}

// NewSky creates the sky from its dome mesh, day and night textures and
// Euler rotation in degrees.
func NewSky(dev gpu.Device, prog program[SkyUniform], mesh drawable, day, night uint32, rotation [3]float32) *Sky {
	model := math.RotateY(math.Radians(rotation[1])).
		Mul(math.RotateX(math.Radians(rotation[0]))).
		Mul(math.RotateAxis([3]float32{0, 0, 1}, math.Radians(rotation[2])))
	return &Sky{
		dev:   dev,
		prog:  prog,
		mesh:  mesh,
		day:   day,
		night: night,
		model: model,
	}
}

// skyView drops the translation so the dome follows the camera.
func skyView(view math.Mat4) math.Mat4 {
	view[12], view[13], view[14] = 0, 0, 0
	return view
}

// Render draws the dome with depth test, depth writes and culling off, then
// restores them. tint scales the texture color.
func (s *Sky) Render(view, proj math.Mat4, night bool, tint [3]float32) {
	if s.mesh == nil {
		return
	}
	dev := s.dev

	tex := s.day
	if night {
		tex = s.night
	}
	v := skyView(view)

	dev.Disable(gl.DEPTH_TEST)
	dev.DepthMask(false)
	dev.Disable(gl.CULL_FACE)

	dev.UseProgram(s.prog.Handle())
	dev.UniformMatrix4(s.prog.Loc(SkyModel), &s.model)
	dev.UniformMatrix4(s.prog.Loc(SkyView), &v)
	dev.UniformMatrix4(s.prog.Loc(SkyProjection), &proj)
	dev.Uniform3(s.prog.Loc(SkyTint), tint)
	dev.Uniform1i(s.prog.Loc(SkyTexture), unitDiffuse)
	dev.BindTexture(unitDiffuse, tex)

	s.mesh.Draw()

	dev.Enable(gl.CULL_FACE)
	dev.DepthMask(true)
	dev.Enable(gl.DEPTH_TEST)
}
