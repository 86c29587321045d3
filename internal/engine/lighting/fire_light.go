package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// FireLight is the warm point light cast by the campfire.
type FireLight struct {
	Position  math.Vec3
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// NewFireLight places a fire light just above the emitter.
func NewFireLight(emitter math.Vec3) FireLight {
	return FireLight{
		Position:  emitter.Add(math.Vec3{Y: 0.5}),
		Color:     [3]float32{1.0, 0.55, 0.2},
		Range:     12,
		Intensity: 1,
	}
}

// Flicker returns the light with its intensity modulated at time t seconds.
// Incommensurate sine frequencies keep the pattern from visibly repeating.
// The result stays within [0.7, 1.3] of the base intensity.
func (l FireLight) Flicker(t float32) FireLight {
	n := 0.15*math32.Sin(t*7.3) + 0.1*math32.Sin(t*13.1+1.7) + 0.05*math32.Sin(t*23.7+0.3)
	l.Intensity *= 1 + n
	return l
}

// Clamp keeps color channels in [0, 1] and the range positive.
func (l FireLight) Clamp() FireLight {
	for i := range l.Color {
		l.Color[i] = math32.Max(0, math32.Min(1, l.Color[i]))
	}
	if l.Range <= 0 {
		l.Range = 12
	}
	return l
}
