package particle

import "fmt"

// Pool is a fixed-capacity arena of particles. Indices are stable for the
// life of the pool.
type Pool struct {
	particles []Particle
}

// NewPool allocates a pool with room for capacity particles, all dead.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{particles: make([]Particle, capacity)}
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.particles)
}

// At returns the particle in slot i. It panics if i is out of range.
func (p *Pool) At(i int) *Particle {
	if i < 0 || i >= len(p.particles) {
		panic(fmt.Sprintf("particle: index %d out of range [0,%d)", i, len(p.particles)))
	}
	return &p.particles[i]
}

// Get returns the particle in slot i, or false if i is out of range.
func (p *Pool) Get(i int) (*Particle, bool) {
	if i < 0 || i >= len(p.particles) {
		return nil, false
	}
	return &p.particles[i], true
}

// Live counts particles with life left.
func (p *Pool) Live() int {
	n := 0
	for i := range p.particles {
		if p.particles[i].Life > 0 {
			n++
		}
	}
	return n
}

// Particles returns the backing slice. Callers must not append to it.
func (p *Pool) Particles() []Particle {
	return p.particles
}
