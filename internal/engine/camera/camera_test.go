package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestNewFlyCameraLooksDownNegativeZ(t *testing.T) {
	c := NewFlyCamera(math.Vec3{Y: 5, Z: 15}, -90, 0)
	f := c.Front()
	if !approx(f.X, 0) || !approx(f.Y, 0) || !approx(f.Z, -1) {
		t.Errorf("Front() = %+v, want (0,0,-1)", f)
	}
	r := c.Right()
	if !approx(r.X, 1) || !approx(r.Z, 0) {
		t.Errorf("Right() = %+v, want (1,0,0)", r)
	}
}

func TestPitchClamp(t *testing.T) {
	tests := []struct {
		name  string
		dy    float32
		pitch float32
	}{
		{"up", -10000, MaxPitch},
		{"down", 10000, -MaxPitch},
		{"small", -100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera(math.Vec3{}, -90, 0)
			c.HandleMouse(0, tt.dy)
			if !approx(c.Pitch, tt.pitch) {
				t.Errorf("Pitch = %v, want %v", c.Pitch, tt.pitch)
			}
		})
	}
}

func TestNewFlyCameraClampsPitch(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 0, 120)
	if c.Pitch != MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, MaxPitch)
	}
}

func TestViewMatrixFiniteAtPitchLimit(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, -90, 0)
	c.HandleMouse(0, -1e6)
	v := c.ViewMatrix()
	for i, x := range v {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			t.Fatalf("ViewMatrix()[%d] = %v", i, x)
		}
	}
}

func TestMoveIsTimeScaled(t *testing.T) {
	a := NewFlyCamera(math.Vec3{}, -90, 0)
	b := NewFlyCamera(math.Vec3{}, -90, 0)

	a.Move(1, 0, 0.5)
	for range 10 {
		b.Move(1, 0, 0.05)
	}

	if a.Position.Distance(b.Position) > 1e-4 {
		t.Errorf("positions differ: %+v vs %+v", a.Position, b.Position)
	}
	if !approx(a.Position.Z, -5) {
		t.Errorf("Position.Z = %v, want -5", a.Position.Z)
	}
}

func TestMoveStrafe(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, -90, 0)
	c.Move(0, -1, 1)
	if !approx(c.Position.X, -10) {
		t.Errorf("Position.X = %v, want -10", c.Position.X)
	}
}

func TestMoveIgnoresNonPositiveDelta(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 1}, -90, 0)
	c.Move(1, 1, 0)
	c.Move(1, 1, -1)
	if c.Position != (math.Vec3{X: 1}) {
		t.Errorf("Position = %+v, want unchanged", c.Position)
	}
}

func TestViewMatrixMapsFrontToNegativeZ(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 2, Y: 3, Z: 4}, 30, 20)
	p := c.Position.Add(c.Front().Scale(5))
	got := c.ViewMatrix().TransformPoint(p.Array())
	if !approx(got[0], 0) || !approx(got[1], 0) || !approx(got[2], -5) {
		t.Errorf("view(front*5) = %v, want (0,0,-5)", got)
	}
}
