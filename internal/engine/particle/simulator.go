package particle

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// lifeEpsilon is the remaining life below which a particle counts as dead.
const lifeEpsilon = 1e-5

// fireMinScale is the fraction of birth size a fire particle keeps at death.
const fireMinScale = 0.4

// Source supplies uniform random numbers in [0, 1).
type Source interface {
	Float32() float32
}

// NewSource returns a PCG-backed source. A zero seed uses the clock.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Stats summarizes the pool after the last update.
type Stats struct {
	Live    int
	Dead    int
	Spawned int // dead→alive transitions in the last Update
}

// Simulator advances a particle pool.
type Simulator struct {
	cfg     Config
	pool    *Pool
	rng     Source
	spawned int
}

// NewSimulator creates a simulator with an empty pool of cfg.Capacity.
// A nil rng uses NewSource(cfg.Seed).
func NewSimulator(cfg Config, rng Source) *Simulator {
	if rng == nil {
		rng = NewSource(cfg.Seed)
	}
	return &Simulator{
		cfg:  cfg,
		pool: NewPool(cfg.Capacity),
		rng:  rng,
	}
}

// Pool returns the simulated pool.
func (s *Simulator) Pool() *Pool {
	return s.pool
}

// Config returns the active configuration.
func (s *Simulator) Config() Config {
	return s.cfg
}

// SetEmissionRate changes the spawn rate in particles per second.
func (s *Simulator) SetEmissionRate(rate float32) {
	if rate < 0 {
		rate = 0
	}
	s.cfg.EmissionRate = rate
}

// Stats returns pool counts and the spawn count of the last update.
func (s *Simulator) Stats() Stats {
	live := s.pool.Live()
	return Stats{
		Live:    live,
		Dead:    s.pool.Cap() - live,
		Spawned: s.spawned,
	}
}

// Update advances every particle by dt seconds and respawns dead slots
// around emitter, at most floor(dt*EmissionRate) of them.
func (s *Simulator) Update(dt float32, emitter math.Vec3) {
	s.spawned = 0
	if dt <= 0 {
		return
	}

	budget := int(math32.Floor(dt * s.cfg.EmissionRate))
	particles := s.pool.particles
	for i := range particles {
		p := &particles[i]
		if p.Life <= 0 {
			if s.spawned < budget {
				s.respawn(p, s.pickKind(), emitter)
				s.spawned++
			}
			continue
		}
		s.step(p, dt)
	}
}

// Emit spawns a particle of the given kind into the first dead slot.
// It returns the slot index, or false if the pool is full.
func (s *Simulator) Emit(kind Kind, emitter math.Vec3) (int, bool) {
	for i := range s.pool.particles {
		p := &s.pool.particles[i]
		if p.Life > 0 {
			continue
		}
		s.respawn(p, kind, emitter)
		return i, true
	}
	return -1, false
}

func (s *Simulator) step(p *Particle, dt float32) {
	p.Life -= dt
	if p.Life <= lifeEpsilon {
		p.Life = 0
	}
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	switch p.Kind {
	case KindFire:
		p.Velocity.Y += (s.cfg.Buoyancy - s.cfg.GravityBias) * dt
		p.Velocity.X += (s.rng.Float32() - 0.5) * s.cfg.Jitter * dt
		p.Velocity.Z += (s.rng.Float32() - 0.5) * s.cfg.Jitter * dt
		p.Size = p.BirthSize * (fireMinScale + (1-fireMinScale)*p.LifeRatio())
	case KindSmoke:
		damp := 1 - s.cfg.Friction*dt
		if damp < 0 {
			damp = 0
		}
		p.Velocity = p.Velocity.Scale(damp)
		p.Velocity.Y += s.cfg.SmokeRise * dt
		p.Size += s.cfg.SmokeGrowth * dt
	}

	p.Color = ramps[p.Kind].at(p.Birth, p.LifeRatio())
}

func (s *Simulator) pickKind() Kind {
	if s.rng.Float32() < s.cfg.FireProbability {
		return KindFire
	}
	return KindSmoke
}

func (s *Simulator) respawn(p *Particle, kind Kind, emitter math.Vec3) {
	kc := s.cfg.Kind(kind)

	// Uniform-area disk sample.
	r := math32.Sqrt(s.rng.Float32()) * s.cfg.SpawnRadius
	theta := s.rng.Float32() * 2 * math32.Pi
	sin, cos := math32.Sincos(theta)
	p.Position = emitter.Add(math.Vec3{
		X: r * cos,
		Y: s.rng.Float32() * s.cfg.SpawnHeight,
		Z: r * sin,
	})

	p.Velocity = math.Vec3{
		X: (s.rng.Float32()*2 - 1) * kc.Spread,
		Y: kc.Speed.Sample(s.rng),
		Z: (s.rng.Float32()*2 - 1) * kc.Spread,
	}

	var dist float32
	if s.cfg.SpawnRadius > 0 {
		dist = r / s.cfg.SpawnRadius
	}
	p.Birth = spawnColor(kind, dist)
	p.Color = p.Birth

	p.BirthSize = kc.Size.Sample(s.rng)
	p.Size = p.BirthSize
	p.MaxLife = kc.Life.Sample(s.rng)
	p.Life = p.MaxLife
	p.Kind = kind
}
