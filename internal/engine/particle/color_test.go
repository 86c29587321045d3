package particle

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestRampIsContinuousAndInRange(t *testing.T) {
	const steps = 1000

	for _, kind := range []Kind{KindFire, KindSmoke} {
		pal := spawnPalettes[kind]
		for _, birth := range []Color{pal.core, pal.mid, pal.edge} {
			prev := ramps[kind].at(birth, 1)
			assert.Equal(t, birth, prev)

			for i := steps - 1; i >= 0; i-- {
				ratio := float32(i) / steps
				c := ramps[kind].at(birth, ratio)
				cur, last := c.Array(), prev.Array()
				for ch := range cur {
					assert.True(t, cur[ch] >= 0 && cur[ch] <= 1, "%s ratio %v channel %d = %v", kind, ratio, ch, cur[ch])
					assert.LessOrEqual(t, math32.Abs(cur[ch]-last[ch]), float32(0.01), "%s jump at ratio %v", kind, ratio)
				}
				prev = c
			}
			assert.Equal(t, float32(0), prev.A, "%s fades out", kind)
		}
	}
}

func TestRampBandEndpoints(t *testing.T) {
	r := ramps[KindFire]
	birth := spawnPalettes[KindFire].core

	assert.Equal(t, r.core, r.at(birth, bandCore))
	assert.Equal(t, r.mid, r.at(birth, bandMid))
	end := r.at(birth, 0).Array()
	for ch, want := range r.fade.Array() {
		assert.InDelta(t, want, end[ch], 1e-6)
	}
}

func TestColorLerp(t *testing.T) {
	a := Color{0, 0, 0, 0}
	b := Color{1, 0.5, 0.25, 1}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, Color{0.5, 0.25, 0.125, 0.5}, a.Lerp(b, 0.5))
}
