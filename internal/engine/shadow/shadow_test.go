package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/gpu/gputest"
	"github.com/Faultbox/campfire/pkg/math"
)

type fakeProgram struct{}

func (fakeProgram) Handle() uint32 { return 7 }

func (fakeProgram) Loc(u DepthUniform) int32 { return int32(u) + 10 }

type fakeCaster struct {
	draws []int32
}

func (c *fakeCaster) DrawDepth(dev gpu.Device, locModel int32) {
	c.draws = append(c.draws, locModel)
	m := math.Identity()
	dev.UniformMatrix4(locModel, &m)
}

const fallbackTex = 99

var sceneBounds = AABB{Min: [3]float32{-10, 0, -10}, Max: [3]float32{10, 4, 10}}

func newTestPass(rec *gputest.Recorder, enabled bool) *Pass {
	target := &Map{FBO: 3, DepthTexture: 4, Resolution: 2048}
	return NewPass(rec, target, fallbackTex, fakeProgram{}, enabled)
}

func TestLightSpaceMatrixIsPure(t *testing.T) {
	dir := math.Vec3{Y: -1, Z: -0.3}
	a := LightSpaceMatrix(dir, sceneBounds)
	b := LightSpaceMatrix(dir, sceneBounds)
	assert.Equal(t, a, b)
}

func TestLightSpaceMatrixContainsBounds(t *testing.T) {
	m := LightSpaceMatrix(math.Vec3{X: 0.2, Y: -1, Z: -0.3}, sceneBounds)

	for _, x := range []float32{sceneBounds.Min[0], sceneBounds.Max[0]} {
		for _, y := range []float32{sceneBounds.Min[1], sceneBounds.Max[1]} {
			for _, z := range []float32{sceneBounds.Min[2], sceneBounds.Max[2]} {
				p := m.TransformPoint([3]float32{x, y, z})
				for i, c := range p {
					assert.LessOrEqual(t, c, float32(1), "corner %v axis %d", [3]float32{x, y, z}, i)
					assert.GreaterOrEqual(t, c, float32(-1), "corner %v axis %d", [3]float32{x, y, z}, i)
				}
			}
		}
	}
}

func TestLightSpaceMatrixDegenerateInputs(t *testing.T) {
	straightDown := LightSpaceMatrix(math.Vec3{Y: -1}, sceneBounds)
	zeroDir := LightSpaceMatrix(math.Vec3{}, sceneBounds)
	assert.Equal(t, straightDown, zeroDir)

	p := LightSpaceMatrix(math.Vec3{Y: -1}, AABB{}).TransformPoint([3]float32{})
	for _, c := range p {
		assert.False(t, math32.IsNaN(c), "NaN in %v", p)
	}
}

func TestAABBCenterRadius(t *testing.T) {
	b := AABB{Min: [3]float32{-1, -2, -2}, Max: [3]float32{1, 2, 2}}
	assert.Equal(t, math.Vec3{}, b.Center())
	assert.InDelta(t, 3, b.Radius(), 1e-5)
}

func TestPassDisabledDrawsNothing(t *testing.T) {
	rec := gputest.NewRecorder()
	pass := newTestPass(rec, false)
	caster := &fakeCaster{}

	res := pass.Render(math.Vec3{Y: -1}, sceneBounds, []Caster{caster})

	assert.False(t, res.Enabled)
	assert.Equal(t, uint32(fallbackTex), res.DepthTexture)
	assert.Empty(t, rec.Calls)
	assert.Empty(t, caster.draws)
}

func TestPassEnabledRestoresState(t *testing.T) {
	rec := gputest.NewRecorder()
	before := rec.State
	pass := newTestPass(rec, true)
	caster := &fakeCaster{}

	res := pass.Render(math.Vec3{Y: -1, Z: -0.3}, sceneBounds, []Caster{caster, caster})

	require.True(t, res.Enabled)
	assert.Equal(t, uint32(4), res.DepthTexture)
	assert.Equal(t, []int32{11, 11}, caster.draws)

	assert.Equal(t, before.Viewport, rec.State.Viewport)
	assert.Equal(t, uint32(gl.BACK), rec.State.CullMode)
	assert.Equal(t, uint32(0), rec.State.Framebuffer)
	assert.True(t, rec.State.DepthMask)

	// Depth is cleared inside the shadow framebuffer before any caster draws.
	assert.Less(t, rec.Index("BindFramebuffer"), rec.Index("Clear"))
	assert.Less(t, rec.Index("Clear"), rec.Index("UniformMatrix4"))
	assert.Contains(t, rec.Calls, gputest.Call{Name: "Viewport", Args: []any{int32(0), int32(0), int32(2048), int32(2048)}})
}

func TestPassToggleRoundTrip(t *testing.T) {
	rec := gputest.NewRecorder()
	pass := newTestPass(rec, true)
	dir := math.Vec3{X: 0.3, Y: -1, Z: -0.3}

	first := pass.Render(dir, sceneBounds, nil)

	assert.Equal(t, Disabled, pass.Toggle())
	off := pass.Render(dir, sceneBounds, nil)
	assert.False(t, off.Enabled)
	assert.Equal(t, uint32(fallbackTex), off.DepthTexture)

	assert.Equal(t, Enabled, pass.Toggle())
	again := pass.Render(dir, sceneBounds, nil)

	assert.Equal(t, first, again)
	assert.Equal(t, gputest.DefaultState().Viewport, rec.State.Viewport)
}

func TestPassWithoutMapStaysDisabled(t *testing.T) {
	rec := gputest.NewRecorder()
	pass := NewPass(rec, nil, fallbackTex, fakeProgram{}, true)

	assert.Equal(t, Disabled, pass.State())
	assert.Equal(t, Disabled, pass.Toggle())
	assert.False(t, pass.Available())

	res := pass.Render(math.Vec3{Y: -1}, sceneBounds, nil)
	assert.Equal(t, uint32(fallbackTex), res.DepthTexture)
	assert.Empty(t, rec.Calls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "enabled", Enabled.String())
	assert.Equal(t, "disabled", Disabled.String())
}
