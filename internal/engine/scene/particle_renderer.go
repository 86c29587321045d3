package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/particle"
	"github.com/Faultbox/campfire/pkg/math"
)

// quadCorners is a unit quad centered on the origin, drawn as a triangle strip.
var quadCorners = [8]float32{
	-0.5, -0.5,
	0.5, -0.5,
	-0.5, 0.5,
	0.5, 0.5,
}

// ParticleRenderer draws packed particle instances as camera-facing
// billboards with one instanced draw call.
type ParticleRenderer struct {
	dev  gpu.Device
	prog program[ParticleUniform]

	vao         uint32
	quadVBO     uint32
	instanceVBO uint32
	capacity    int
}

// NewParticleRenderer allocates the quad and an instance buffer holding
// capacity instances.
func NewParticleRenderer(dev gpu.Device, prog program[ParticleUniform], capacity int) *ParticleRenderer {
	r := &ParticleRenderer{
		dev:      dev,
		prog:     prog,
		capacity: capacity,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadCorners)*4, gl.Ptr(&quadCorners[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 8, 0)

	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*particle.InstanceStride, nil, gl.DYNAMIC_DRAW)

	// Position, color, size, life.
	attribs := []struct {
		index, size int32
		offset      uintptr
	}{
		{1, 3, unsafe.Offsetof(particle.Instance{}.Position)},
		{2, 4, unsafe.Offsetof(particle.Instance{}.Color)},
		{3, 1, unsafe.Offsetof(particle.Instance{}.Size)},
		{4, 1, unsafe.Offsetof(particle.Instance{}.Life)},
	}
	for _, a := range attribs {
		idx := uint32(a.index)
		gl.EnableVertexAttribArray(idx)
		gl.VertexAttribPointerWithOffset(idx, a.size, gl.FLOAT, false, particle.InstanceStride, a.offset)
		gl.VertexAttribDivisor(idx, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return r
}

// Render uploads instances and draws them with additive blending after the
// opaque geometry. With no instances it issues no GL calls. Depth writes,
// culling and blending are back to their defaults on return.
func (r *ParticleRenderer) Render(instances []particle.Instance, view, proj math.Mat4) {
	n := len(instances)
	if n == 0 {
		return
	}
	if n > r.capacity {
		n = r.capacity
	}

	dev := r.dev
	dev.UseProgram(r.prog.Handle())
	dev.UniformMatrix4(r.prog.Loc(ParticleView), &view)
	dev.UniformMatrix4(r.prog.Loc(ParticleProjection), &proj)

	dev.BufferSubData(r.instanceVBO, n*particle.InstanceStride, unsafe.Pointer(&instances[0]))

	// Test against the scene depth but do not write it.
	dev.DepthMask(false)
	dev.Disable(gl.CULL_FACE)
	dev.Enable(gl.BLEND)
	dev.BlendFunc(gl.SRC_ALPHA, gl.ONE)

	dev.BindVertexArray(r.vao)
	dev.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, int32(n))
	dev.BindVertexArray(0)

	dev.BlendFunc(gl.ONE, gl.ZERO)
	dev.Disable(gl.BLEND)
	dev.Enable(gl.CULL_FACE)
	dev.DepthMask(true)
}

// Destroy releases the buffers.
func (r *ParticleRenderer) Destroy() {
	if r.instanceVBO != 0 {
		gl.DeleteBuffers(1, &r.instanceVBO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	r.instanceVBO, r.quadVBO, r.vao = 0, 0, 0
}
