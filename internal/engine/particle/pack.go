package particle

import (
	"cmp"
	"slices"

	"github.com/Faultbox/campfire/pkg/math"
)

// Instance is the per-instance record uploaded to the GPU.
type Instance struct {
	Position [3]float32
	Color    [4]float32
	Size     float32
	Life     float32 // normalized, 1 at birth
}

// InstanceFloats is the number of float32 values in one Instance.
const InstanceFloats = 9

// InstanceStride is the byte stride of one Instance.
const InstanceStride = InstanceFloats * 4

type sortKey struct {
	dist  float32
	index int32
}

// Packer builds depth-sorted instance batches. Its scratch buffers are
// reused between frames.
type Packer struct {
	keys []sortKey
	out  []Instance
}

// NewPacker returns a packer sized for capacity particles.
func NewPacker(capacity int) *Packer {
	return &Packer{
		keys: make([]sortKey, 0, capacity),
		out:  make([]Instance, 0, capacity),
	}
}

// Pack returns the live particles of pool ordered farthest-first from
// camera. The result aliases the packer's buffer and is valid until the
// next call.
func (pk *Packer) Pack(pool *Pool, camera math.Vec3) []Instance {
	pk.out, pk.keys = pack(pool, camera, pk.out[:0], pk.keys[:0])
	return pk.out
}

// Pack appends the live particles of pool to dst, farthest from camera first.
// Ties keep pool order.
func Pack(pool *Pool, camera math.Vec3, dst []Instance) []Instance {
	dst, _ = pack(pool, camera, dst, nil)
	return dst
}

func pack(pool *Pool, camera math.Vec3, dst []Instance, scratch []sortKey) ([]Instance, []sortKey) {
	particles := pool.Particles()
	for i := range particles {
		if particles[i].Life <= 0 {
			continue
		}
		scratch = append(scratch, sortKey{
			dist:  particles[i].Position.Distance(camera),
			index: int32(i),
		})
	}

	slices.SortStableFunc(scratch, func(a, b sortKey) int {
		return cmp.Compare(b.dist, a.dist)
	})

	for _, k := range scratch {
		p := &particles[k.index]
		dst = append(dst, Instance{
			Position: p.Position.Array(),
			Color:    p.Color.Array(),
			Size:     p.Size,
			Life:     p.LifeRatio(),
		})
	}

	return dst, scratch
}
