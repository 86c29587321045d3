// Package gpu is the narrow set of GL state calls whose order and restore
// discipline matter to the render passes. Passes talk to a Device so the
// state contract can be checked without a GL context.
package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/pkg/math"
)

// Device issues GL state changes and draw calls.
type Device interface {
	Enable(capability uint32)
	Disable(capability uint32)
	DepthMask(write bool)
	BlendFunc(src, dst uint32)
	CullFace(mode uint32)
	PolygonMode(mode uint32)

	Viewport(x, y, width, height int32)
	CurrentViewport() [4]int32
	BindFramebuffer(fbo uint32)
	Clear(mask uint32)

	UseProgram(program uint32)
	BindVertexArray(vao uint32)
	BindTexture(unit uint32, texture uint32)
	// BufferSubData binds buffer to ARRAY_BUFFER and overwrites its first size bytes.
	BufferSubData(buffer uint32, size int, data unsafe.Pointer)

	UniformMatrix4(loc int32, m *math.Mat4)
	UniformMatrix3(loc int32, m *[9]float32)
	Uniform3(loc int32, v [3]float32)
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)

	DrawArraysInstanced(mode uint32, first, count, instances int32)
}

// GL is the Device backed by the current OpenGL context.
type GL struct{}

var _ Device = GL{}

func (GL) Enable(capability uint32)  { gl.Enable(capability) }
func (GL) Disable(capability uint32) { gl.Disable(capability) }
func (GL) DepthMask(write bool)      { gl.DepthMask(write) }
func (GL) BlendFunc(src, dst uint32) { gl.BlendFunc(src, dst) }
func (GL) CullFace(mode uint32)      { gl.CullFace(mode) }
func (GL) PolygonMode(mode uint32)   { gl.PolygonMode(gl.FRONT_AND_BACK, mode) }

func (GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (GL) CurrentViewport() [4]int32 {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return vp
}

func (GL) BindFramebuffer(fbo uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }
func (GL) Clear(mask uint32)          { gl.Clear(mask) }
func (GL) UseProgram(program uint32)  { gl.UseProgram(program) }
func (GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (GL) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (GL) BufferSubData(buffer uint32, size int, data unsafe.Pointer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, data)
}

func (GL) UniformMatrix4(loc int32, m *math.Mat4)  { gl.UniformMatrix4fv(loc, 1, false, m.Ptr()) }
func (GL) UniformMatrix3(loc int32, m *[9]float32) { gl.UniformMatrix3fv(loc, 1, false, &m[0]) }
func (GL) Uniform3(loc int32, v [3]float32)        { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func (GL) Uniform1f(loc int32, v float32)          { gl.Uniform1f(loc, v) }
func (GL) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }

func (GL) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}
