// Package lighting provides the sun, moon and fire lights of the scene.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to the direction
// light travels. Azimuth rotates around Y starting at +Z, elevation is the
// height above the horizon. The result points from the sky towards the ground.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	sinAz, cosAz := math32.Sincos(math.Radians(azimuth))
	sinEl, cosEl := math32.Sincos(math.Radians(elevation))

	// Spherical to Cartesian, then flipped to point away from the sun.
	toSun := math.Vec3{
		X: cosEl * sinAz,
		Y: sinEl,
		Z: cosEl * cosAz,
	}
	return toSun.Scale(-1).Normalize()
}

// Palette is the lighting of one time of day.
type Palette struct {
	Direction  math.Vec3
	LightColor [3]float32
	Ambient    [3]float32
	// Intensity scales the directional light.
	Intensity float32
	// FireBoost scales the fire light; the fire dominates at night.
	FireBoost float32
	SkyTint   [3]float32
}

// Moon placement for the night palette.
const (
	moonAzimuth   = 215
	moonElevation = 55
)

// DayPalette is lit by the configured sun.
func DayPalette(sunDir math.Vec3, color [3]float32) Palette {
	return Palette{
		Direction:  sunDir.Normalize(),
		LightColor: color,
		Ambient:    [3]float32{0.35, 0.35, 0.38},
		Intensity:  1,
		FireBoost:  0.6,
		SkyTint:    [3]float32{1, 1, 1},
	}
}

// NightPalette is a dim blue moonlight.
func NightPalette() Palette {
	return Palette{
		Direction:  SunDirection(moonAzimuth, moonElevation),
		LightColor: [3]float32{0.45, 0.5, 0.75},
		Ambient:    [3]float32{0.06, 0.07, 0.12},
		Intensity:  0.35,
		FireBoost:  1.6,
		SkyTint:    [3]float32{0.8, 0.85, 1},
	}
}

// Environment holds both palettes and picks one by the night toggle.
type Environment struct {
	Day   Palette
	Night Palette
}

// NewEnvironment builds the day and night palettes.
func NewEnvironment(sunDir math.Vec3, sunColor [3]float32) Environment {
	return Environment{
		Day:   DayPalette(sunDir, sunColor),
		Night: NightPalette(),
	}
}

// Palette returns the active palette.
func (e Environment) Palette(night bool) Palette {
	if night {
		return e.Night
	}
	return e.Day
}
