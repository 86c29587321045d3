// Package gputest provides a recording gpu.Device for state-contract tests.
package gputest

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/pkg/math"
)

// State is the render state the recorder tracks.
type State struct {
	DepthTest   bool
	CullFace    bool
	Blend       bool
	DepthMask   bool
	BlendSrc    uint32
	BlendDst    uint32
	CullMode    uint32
	PolygonMode uint32
	Viewport    [4]int32
	Framebuffer uint32
	Program     uint32
}

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gpu.Device by recording calls and tracking state.
type Recorder struct {
	Calls []Call
	State State

	// Uploads holds the byte size of each BufferSubData call.
	Uploads []int
}

var _ gpu.Device = (*Recorder)(nil)

// NewRecorder returns a recorder in the state the app leaves between passes:
// depth test and culling on, depth writes on, blending off.
func NewRecorder() *Recorder {
	return &Recorder{State: DefaultState()}
}

// DefaultState is the baseline state between passes.
func DefaultState() State {
	return State{
		DepthTest:   true,
		CullFace:    true,
		DepthMask:   true,
		BlendSrc:    gl.ONE,
		BlendDst:    gl.ZERO,
		CullMode:    gl.BACK,
		PolygonMode: gl.FILL,
		Viewport:    [4]int32{0, 0, 1024, 768},
	}
}

// Reset forgets recorded calls but keeps the state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Uploads = nil
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first call named name, or -1.
func (r *Recorder) Index(name string) int {
	for i, c := range r.Calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) setCap(capability uint32, on bool) {
	switch capability {
	case gl.DEPTH_TEST:
		r.State.DepthTest = on
	case gl.CULL_FACE:
		r.State.CullFace = on
	case gl.BLEND:
		r.State.Blend = on
	}
}

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable", capability)
	r.setCap(capability, true)
}

func (r *Recorder) Disable(capability uint32) {
	r.record("Disable", capability)
	r.setCap(capability, false)
}

func (r *Recorder) DepthMask(write bool) {
	r.record("DepthMask", write)
	r.State.DepthMask = write
}

func (r *Recorder) BlendFunc(src, dst uint32) {
	r.record("BlendFunc", src, dst)
	r.State.BlendSrc, r.State.BlendDst = src, dst
}

func (r *Recorder) CullFace(mode uint32) {
	r.record("CullFace", mode)
	r.State.CullMode = mode
}

func (r *Recorder) PolygonMode(mode uint32) {
	r.record("PolygonMode", mode)
	r.State.PolygonMode = mode
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.State.Viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) CurrentViewport() [4]int32 {
	return r.State.Viewport
}

func (r *Recorder) BindFramebuffer(fbo uint32) {
	r.record("BindFramebuffer", fbo)
	r.State.Framebuffer = fbo
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear", mask)
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	r.State.Program = program
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
}

func (r *Recorder) BindTexture(unit uint32, texture uint32) {
	r.record("BindTexture", unit, texture)
}

func (r *Recorder) BufferSubData(buffer uint32, size int, _ unsafe.Pointer) {
	r.record("BufferSubData", buffer, size)
	r.Uploads = append(r.Uploads, size)
}

func (r *Recorder) UniformMatrix4(loc int32, m *math.Mat4) {
	r.record("UniformMatrix4", loc, *m)
}

func (r *Recorder) UniformMatrix3(loc int32, m *[9]float32) {
	r.record("UniformMatrix3", loc, *m)
}

func (r *Recorder) Uniform3(loc int32, v [3]float32) {
	r.record("Uniform3", loc, v)
}

func (r *Recorder) Uniform1f(loc int32, v float32) {
	r.record("Uniform1f", loc, v)
}

func (r *Recorder) Uniform1i(loc int32, v int32) {
	r.record("Uniform1i", loc, v)
}

func (r *Recorder) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
}
