package particle

import (
	"errors"
	"fmt"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Sample draws a value in [Min, Max] from src.
func (r Range) Sample(src Source) float32 {
	return r.Min + src.Float32()*(r.Max-r.Min)
}

// KindConfig holds the spawn ranges of one particle kind.
type KindConfig struct {
	Life   Range   `yaml:"life"`   // seconds
	Speed  Range   `yaml:"speed"`  // initial upward speed, units/s
	Spread float32 `yaml:"spread"` // max initial lateral speed, units/s
	Size   Range   `yaml:"size"`
}

// Config tunes the simulator. All rates are per second.
type Config struct {
	Capacity        int     `yaml:"capacity"`
	EmissionRate    float32 `yaml:"emission_rate"`
	FireProbability float32 `yaml:"fire_probability"`
	SpawnRadius     float32 `yaml:"spawn_radius"`
	SpawnHeight     float32 `yaml:"spawn_height"`

	Fire  KindConfig `yaml:"fire"`
	Smoke KindConfig `yaml:"smoke"`

	// Fire forces.
	Buoyancy    float32 `yaml:"buoyancy"`
	GravityBias float32 `yaml:"gravity_bias"`
	Jitter      float32 `yaml:"jitter"`

	// Smoke forces.
	Friction    float32 `yaml:"friction"`
	SmokeRise   float32 `yaml:"smoke_rise"`
	SmokeGrowth float32 `yaml:"smoke_growth"`

	// Seed for the random source. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the campfire tuning.
func DefaultConfig() Config {
	return Config{
		Capacity:        1000,
		EmissionRate:    400,
		FireProbability: 0.85,
		SpawnRadius:     0.6,
		SpawnHeight:     0.15,
		Fire: KindConfig{
			Life:   Range{Min: 0.6, Max: 1.2},
			Speed:  Range{Min: 1.0, Max: 2.2},
			Spread: 0.25,
			Size:   Range{Min: 0.25, Max: 0.45},
		},
		Smoke: KindConfig{
			Life:   Range{Min: 2.0, Max: 3.5},
			Speed:  Range{Min: 0.6, Max: 1.2},
			Spread: 0.35,
			Size:   Range{Min: 0.35, Max: 0.6},
		},
		Buoyancy:    1.6,
		GravityBias: 0.4,
		Jitter:      1.5,
		Friction:    0.5,
		SmokeRise:   0.35,
		SmokeGrowth: 0.5,
	}
}

// Kind returns the spawn ranges for k.
func (c *Config) Kind(k Kind) KindConfig {
	if k == KindSmoke {
		return c.Smoke
	}
	return c.Fire
}

// Validate reports every out-of-range field.
func (c *Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("particles.capacity must be positive, got %d", c.Capacity))
	}
	if c.EmissionRate < 0 {
		errs = append(errs, fmt.Errorf("particles.emission_rate must not be negative, got %g", c.EmissionRate))
	}
	if c.FireProbability < 0 || c.FireProbability > 1 {
		errs = append(errs, fmt.Errorf("particles.fire_probability must be in [0,1], got %g", c.FireProbability))
	}
	if c.SpawnRadius < 0 || c.SpawnHeight < 0 {
		errs = append(errs, errors.New("particles spawn radius and height must not be negative"))
	}
	for _, k := range []Kind{KindFire, KindSmoke} {
		kc := c.Kind(k)
		if kc.Life.Min <= 0 || kc.Life.Max < kc.Life.Min {
			errs = append(errs, fmt.Errorf("particles.%s.life must satisfy 0 < min <= max", k))
		}
		if kc.Size.Min < 0 || kc.Size.Max < kc.Size.Min {
			errs = append(errs, fmt.Errorf("particles.%s.size must satisfy 0 <= min <= max", k))
		}
		if kc.Speed.Max < kc.Speed.Min {
			errs = append(errs, fmt.Errorf("particles.%s.speed must satisfy min <= max", k))
		}
	}
	return errors.Join(errs...)
}
