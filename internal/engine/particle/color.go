package particle

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Lerp interpolates from c to o by t in [0, 1].
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Array returns the color as [4]float32.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Life-ratio thresholds between color bands.
const (
	bandCore = float32(0.7)
	bandMid  = float32(0.4)
)

// ramp is the color a particle reaches at the end of each band.
// A particle starts from its birth color at ratio 1, reaches core at 0.7,
// mid at 0.4 and fade at 0. Neighbouring bands share their endpoint so the
// ramp has no jumps.
type ramp struct {
	core Color
	mid  Color
	fade Color
}

func (r ramp) at(birth Color, ratio float32) Color {
	switch {
	case ratio > bandCore:
		return birth.Lerp(r.core, (1-ratio)/(1-bandCore))
	case ratio > bandMid:
		return r.core.Lerp(r.mid, (bandCore-ratio)/(bandCore-bandMid))
	default:
		if ratio < 0 {
			ratio = 0
		}
		return r.mid.Lerp(r.fade, (bandMid-ratio)/bandMid)
	}
}

var ramps = [...]ramp{
	KindFire: {
		core: Color{1.0, 0.70, 0.15, 0.90},
		mid:  Color{0.90, 0.30, 0.05, 0.60},
		fade: Color{0.30, 0.05, 0.02, 0.0},
	},
	KindSmoke: {
		core: Color{0.32, 0.31, 0.30, 0.35},
		mid:  Color{0.40, 0.40, 0.40, 0.22},
		fade: Color{0.50, 0.50, 0.50, 0.0},
	},
}

// spawnPalette holds the birth colors for the radial spawn bands.
type spawnPalette struct {
	core Color
	mid  Color
	edge Color
}

// Radial spawn bands, as a fraction of the spawn radius.
const (
	radialCore = float32(0.33)
	radialMid  = float32(0.66)
)

var spawnPalettes = [...]spawnPalette{
	KindFire: {
		core: Color{1.0, 0.95, 0.75, 1.0},
		mid:  Color{1.0, 0.80, 0.35, 0.95},
		edge: Color{1.0, 0.60, 0.15, 0.85},
	},
	KindSmoke: {
		core: Color{0.35, 0.33, 0.32, 0.05},
		mid:  Color{0.30, 0.30, 0.30, 0.04},
		edge: Color{0.25, 0.25, 0.25, 0.03},
	},
}

// spawnColor picks the birth color by distance from the emitter center,
// normalized to the spawn radius.
func spawnColor(kind Kind, dist float32) Color {
	pal := spawnPalettes[kind]
	switch {
	case dist < radialCore:
		return pal.core
	case dist < radialMid:
		return pal.mid
	default:
		return pal.edge
	}
}
