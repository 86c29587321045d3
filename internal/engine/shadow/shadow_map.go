// Package shadow renders the directional-light shadow map.
package shadow

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/campfire/internal/engine/gpu"
)

// Map represents a shadow map framebuffer for directional light shadows.
// Uses a depth-only texture for shadow comparison sampling.
type Map struct {
	FBO          uint32   // Framebuffer object
	DepthTexture uint32   // Depth texture for shadow sampling
	Resolution   int32    // Shadow map resolution (width = height)
	prevViewport [4]int32 // Saved viewport for restore
}

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 8192

// NewMap creates a shadow map with the specified resolution.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	if maxSize > 0 && resolution > maxSize {
		return nil, fmt.Errorf("shadow map resolution %d exceeds GL_MAX_TEXTURE_SIZE %d", resolution, maxSize)
	}

	sm := &Map{
		Resolution: resolution,
	}

	// Generate framebuffer
	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	sm.DepthTexture = newDepthTexture(resolution, nil)

	// Attach depth texture to framebuffer
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%X", status)
	}

	return sm, nil
}

// NewFallbackTexture creates a 1x1 depth texture holding 1.0 with the same
// comparison setup as the shadow map, so sampling it always reads as lit.
func NewFallbackTexture() uint32 {
	one := []float32{1}
	return newDepthTexture(1, one)
}

func newDepthTexture(size int32, data []float32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	var pixels unsafe.Pointer
	if data != nil {
		pixels = gl.Ptr(data)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, size, size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, pixels)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Clamp to border with 1.0 so samples outside the frustum are lit
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	// Enable shadow comparison mode for sampler2DShadow
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Bind binds the shadow map framebuffer for rendering the depth pass.
// Saves the viewport, sets it to the map size and clears depth.
func (sm *Map) Bind(dev gpu.Device) {
	sm.prevViewport = dev.CurrentViewport()

	dev.BindFramebuffer(sm.FBO)
	dev.Viewport(0, 0, sm.Resolution, sm.Resolution)
	dev.Enable(gl.DEPTH_TEST)
	dev.DepthMask(true)
	dev.Clear(gl.DEPTH_BUFFER_BIT)

	// Front-face culling reduces shadow acne
	dev.Enable(gl.CULL_FACE)
	dev.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, the saved viewport and
// back-face culling.
func (sm *Map) Unbind(dev gpu.Device) {
	dev.BindFramebuffer(0)
	vp := sm.prevViewport
	dev.Viewport(vp[0], vp[1], vp[2], vp[3])
	dev.CullFace(gl.BACK)
}

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}

// IsValid returns true if the shadow map was created successfully.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}
