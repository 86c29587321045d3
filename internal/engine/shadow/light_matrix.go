package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	dx := (b.Max[0] - b.Min[0]) / 2
	dy := (b.Max[1] - b.Min[1]) / 2
	dz := (b.Max[2] - b.Min[2]) / 2
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// minRadius keeps the frustum non-degenerate for empty or flat bounds.
const minRadius = 1

// LightSpaceMatrix returns projection × view for a directional light shining
// along lightDir onto bounds. The light sits 2R back from the bounds center,
// the orthographic box has half extent 1.1R and spans depth [0.1, 3.1R].
// It is a pure function of its inputs.
func LightSpaceMatrix(lightDir math.Vec3, bounds AABB) math.Mat4 {
	dir := lightDir.Normalize()
	if dir.LengthSquared() == 0 {
		dir = math.Vec3{Y: -1}
	}

	center := bounds.Center()
	radius := math32.Max(bounds.Radius(), minRadius)

	eye := center.Sub(dir.Scale(2 * radius))

	// Avoid an up vector parallel to the light.
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, center, up)

	halfSize := radius * 1.1
	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, 3.1*radius)

	return proj.Mul(view)
}
