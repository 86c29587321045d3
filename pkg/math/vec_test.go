package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
	if got := v.LengthSquared(); got != 49 {
		t.Errorf("Vec3.LengthSquared() = %v, want 49", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1, 4, 5}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-3.14159265) > 1e-5 {
		t.Errorf("Radians(180) = %v", got)
	}
}
