package scene

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/engine/gpu/gputest"
	"github.com/Faultbox/campfire/internal/engine/particle"
	"github.com/Faultbox/campfire/pkg/math"
)

type fakeProgram[U ~int] struct {
	handle uint32
}

func (p fakeProgram[U]) Handle() uint32 { return p.handle }

func (p fakeProgram[U]) Loc(u U) int32 { return int32(u) }

func newTestParticleRenderer(rec *gputest.Recorder, capacity int) *ParticleRenderer {
	return &ParticleRenderer{
		dev:         rec,
		prog:        fakeProgram[ParticleUniform]{handle: 5},
		vao:         11,
		quadVBO:     12,
		instanceVBO: 13,
		capacity:    capacity,
	}
}

func TestParticleRendererNoInstancesNoCalls(t *testing.T) {
	rec := gputest.NewRecorder()
	r := newTestParticleRenderer(rec, 1000)

	r.Render(nil, math.Identity(), math.Identity())
	r.Render([]particle.Instance{}, math.Identity(), math.Identity())

	assert.Empty(t, rec.Calls)
	assert.Equal(t, gputest.DefaultState(), rec.State)
}

func TestParticleRendererSingleDraw(t *testing.T) {
	rec := gputest.NewRecorder()
	r := newTestParticleRenderer(rec, 1000)
	instances := make([]particle.Instance, 42)

	r.Render(instances, math.Identity(), math.Identity())

	assert.Equal(t, 1, rec.Count("BufferSubData"))
	assert.Equal(t, []int{42 * particle.InstanceStride}, rec.Uploads)
	require.Equal(t, 1, rec.Count("DrawArraysInstanced"))

	draw := rec.Calls[rec.Index("DrawArraysInstanced")]
	assert.Equal(t, []any{uint32(gl.TRIANGLE_STRIP), int32(0), int32(4), int32(42)}, draw.Args)

	// Upload precedes the draw; additive blend is set before it.
	assert.Less(t, rec.Index("BufferSubData"), rec.Index("DrawArraysInstanced"))
	assert.Contains(t, rec.Calls[:rec.Index("DrawArraysInstanced")],
		gputest.Call{Name: "BlendFunc", Args: []any{uint32(gl.SRC_ALPHA), uint32(gl.ONE)}})
	assert.Contains(t, rec.Calls[:rec.Index("DrawArraysInstanced")],
		gputest.Call{Name: "DepthMask", Args: []any{false}})
}

func TestParticleRendererRestoresState(t *testing.T) {
	rec := gputest.NewRecorder()
	r := newTestParticleRenderer(rec, 1000)

	r.Render(make([]particle.Instance, 3), math.Identity(), math.Identity())

	want := gputest.DefaultState()
	got := rec.State
	assert.Equal(t, want.DepthMask, got.DepthMask)
	assert.Equal(t, want.DepthTest, got.DepthTest)
	assert.Equal(t, want.CullFace, got.CullFace)
	assert.Equal(t, want.Blend, got.Blend)
	assert.Equal(t, want.BlendSrc, got.BlendSrc)
	assert.Equal(t, want.BlendDst, got.BlendDst)

	// Depth test is never touched.
	for _, c := range rec.Calls {
		if c.Name == "Enable" || c.Name == "Disable" {
			assert.NotEqual(t, uint32(gl.DEPTH_TEST), c.Args[0])
		}
	}
}

func TestParticleRendererClampsToCapacity(t *testing.T) {
	rec := gputest.NewRecorder()
	r := newTestParticleRenderer(rec, 10)

	r.Render(make([]particle.Instance, 25), math.Identity(), math.Identity())

	assert.Equal(t, []int{10 * particle.InstanceStride}, rec.Uploads)
	draw := rec.Calls[rec.Index("DrawArraysInstanced")]
	assert.Equal(t, int32(10), draw.Args[3])
}

func TestParticleRendererUploadsViewAndProjection(t *testing.T) {
	rec := gputest.NewRecorder()
	r := newTestParticleRenderer(rec, 10)
	view := math.Translate(1, 2, 3)
	proj := math.Perspective(1, 1.5, 0.1, 100)

	r.Render(make([]particle.Instance, 1), view, proj)

	assert.Contains(t, rec.Calls, gputest.Call{Name: "UniformMatrix4", Args: []any{int32(ParticleView), view}})
	assert.Contains(t, rec.Calls, gputest.Call{Name: "UniformMatrix4", Args: []any{int32(ParticleProjection), proj}})
	assert.Equal(t, uint32(5), rec.State.Program)
}
