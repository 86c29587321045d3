// Package camera provides the fly camera used by the scene viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// MaxPitch is the pitch limit in degrees. Looking straight up or down would
// make the view's up vector parallel to the forward vector.
const MaxPitch = 89

// FlyCamera moves freely and looks around with yaw and pitch in degrees.
type FlyCamera struct {
	Position math.Vec3

	// Yaw of -90 looks down -Z.
	Yaw   float32
	Pitch float32

	// Speed is world units per second.
	Speed float32
	// Sensitivity is degrees per pixel of mouse motion.
	Sensitivity float32

	FOV       float32 // vertical, degrees
	Near, Far float32
}

// NewFlyCamera creates a camera at position looking along yaw/pitch.
func NewFlyCamera(position math.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:    position,
		Yaw:         yaw,
		Speed:       10,
		Sensitivity: 0.1,
		FOV:         55,
		Near:        0.1,
		Far:         100000,
	}
	c.SetPitch(pitch)
	return c
}

// SetPitch sets pitch clamped to ±MaxPitch.
func (c *FlyCamera) SetPitch(pitch float32) {
	c.Pitch = math32.Max(-MaxPitch, math32.Min(MaxPitch, pitch))
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 {
	sinYaw, cosYaw := math32.Sincos(math.Radians(c.Yaw))
	sinPitch, cosPitch := math32.Sincos(math.Radians(c.Pitch))
	return math.Vec3{
		X: cosYaw * cosPitch,
		Y: sinPitch,
		Z: sinYaw * cosPitch,
	}.Normalize()
}

// Right returns the unit right vector, always horizontal.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Front().Cross(math.Vec3{Y: 1}).Normalize()
}

// Up returns the unit up vector of the view.
func (c *FlyCamera) Up() math.Vec3 {
	return c.Right().Cross(c.Front()).Normalize()
}

// HandleMouse applies a relative mouse motion in pixels. Moving the mouse up
// (negative dy) pitches up.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.SetPitch(c.Pitch - dy*c.Sensitivity)
	c.Yaw = math32.Mod(c.Yaw, 360)
}

// Move translates the camera. forward and right are in [-1, 1] and are
// scaled by Speed and dt, so movement is frame-rate independent.
func (c *FlyCamera) Move(forward, right, dt float32) {
	if dt <= 0 || (forward == 0 && right == 0) {
		return
	}
	step := c.Speed * dt
	c.Position = c.Position.
		Add(c.Front().Scale(forward * step)).
		Add(c.Right().Scale(right * step))
}

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front()), math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}
