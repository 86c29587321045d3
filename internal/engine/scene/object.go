package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/gpu"
	"github.com/Faultbox/campfire/internal/engine/model"
	"github.com/Faultbox/campfire/pkg/math"
)

// Material holds per-object lighting terms.
type Material struct {
	Shininess        float32
	SpecularStrength float32
	LightMultiplier  float32
}

// Animation is a sine oscillation about a pivot in object space.
type Animation struct {
	Pivot     math.Vec3
	Axis      [3]float32
	Amplitude float32 // degrees
	Frequency float32 // Hz
	Phase     float32 // radians
}

// Angle returns the rotation in radians at time t seconds.
func (a *Animation) Angle(t float32) float32 {
	return math.Radians(a.Amplitude) * math32.Sin(2*math32.Pi*a.Frequency*t+a.Phase)
}

// Matrix returns the pivot rotation at time t.
func (a *Animation) Matrix(t float32) math.Mat4 {
	return math.RotateAround(a.Pivot, a.Axis, a.Angle(t))
}

// drawable is the GPU side of an object.
type drawable interface {
	Draw()
}

// Object is one placed mesh.
type Object struct {
	Name      string
	Role      string
	Position  math.Vec3
	RotationY float32 // degrees
	Scale     float32

	Material   Material
	Rotatable  bool
	CastShadow bool
	Animation  *Animation

	mesh    drawable
	texture uint32
	bounds  model.Bounds // object space

	// model is the pose for the current frame, shared by both passes.
	model math.Mat4
}

// NewObject builds an object from its manifest entry. mesh and texture are
// the uploaded GPU resources.
func NewObject(cfg config.ObjectConfig, mesh *model.GPUMesh, texture uint32) *Object {
	o := &Object{
		Name:      cfg.Name,
		Role:      cfg.Role,
		Position:  math.FromArray(cfg.Position),
		RotationY: cfg.RotationY,
		Scale:     cfg.Scale,
		Material: Material{
			Shininess:        cfg.Material.Shininess,
			SpecularStrength: cfg.Material.SpecularStrength,
			LightMultiplier:  cfg.Material.LightMultiplier,
		},
		Rotatable:  cfg.Rotatable,
		CastShadow: cfg.CastsShadows(),
		texture:    texture,
	}
	if mesh != nil {
		o.mesh = mesh
		o.bounds = mesh.Bounds
	}
	if a := cfg.Animation; a != nil {
		o.Animation = &Animation{
			Pivot:     math.FromArray(a.Pivot),
			Axis:      a.Axis,
			Amplitude: a.Amplitude,
			Frequency: a.Frequency,
			Phase:     a.Phase,
		}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	o.model = o.baseMatrix()
	return o
}

// baseMatrix is translate × rotateY × scale.
func (o *Object) baseMatrix() math.Mat4 {
	return math.Translate(o.Position.X, o.Position.Y, o.Position.Z).
		Mul(math.RotateY(math.Radians(o.RotationY))).
		Mul(math.Scale(o.Scale, o.Scale, o.Scale))
}

// Pose computes the model matrix for time t. The animation rotates about
// its pivot before the base transform applies.
func (o *Object) Pose(t float32) {
	m := o.baseMatrix()
	if o.Animation != nil {
		m = m.Mul(o.Animation.Matrix(t))
	}
	o.model = m
}

// Model returns the pose computed by the last Pose call.
func (o *Object) Model() math.Mat4 {
	return o.model
}

// Rotate turns the object around Y by deg degrees.
func (o *Object) Rotate(deg float32) {
	o.RotationY = math32.Mod(o.RotationY+deg, 360)
}

// RestBounds returns the bounds under the base transform, ignoring animation.
func (o *Object) RestBounds() model.Bounds {
	if o.bounds.IsEmpty() {
		return o.bounds
	}
	return o.bounds.Transform(o.baseMatrix())
}

// DrawDepth draws the object into the shadow map with its current pose.
func (o *Object) DrawDepth(dev gpu.Device, locModel int32) {
	if o.mesh == nil {
		return
	}
	dev.UniformMatrix4(locModel, &o.model)
	o.mesh.Draw()
}
