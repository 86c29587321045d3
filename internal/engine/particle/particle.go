// Package particle simulates the campfire's fire and smoke particles on the CPU.
//
// The simulator owns a fixed-capacity pool. Slots are never freed or
// reallocated: a particle whose life reaches zero stays in place until the
// per-frame emission budget lets it respawn.
package particle

import "github.com/Faultbox/campfire/pkg/math"

// Kind tags what a particle simulates.
type Kind uint8

const (
	KindFire Kind = iota
	KindSmoke
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindFire:
		return "fire"
	case KindSmoke:
		return "smoke"
	default:
		return "unknown"
	}
}

// Particle is one slot of the pool.
// Invariant: 0 <= Life <= MaxLife, and Life == 0 means the slot is dead.
type Particle struct {
	Position math.Vec3
	Velocity math.Vec3

	// Color is the current color; Birth is the spawn color the ramp starts from.
	Color Color
	Birth Color

	Size      float32
	BirthSize float32

	Life    float32 // remaining seconds
	MaxLife float32 // seconds at spawn

	Kind Kind
}

// Alive reports whether the particle has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// LifeRatio returns Life/MaxLife in [0, 1].
func (p *Particle) LifeRatio() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	r := p.Life / p.MaxLife
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
