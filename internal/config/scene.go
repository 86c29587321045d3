package config

import (
	"errors"
	"fmt"
)

// Object roles in the scene manifest.
const (
	RoleTerrain   = "terrain"
	RoleCharacter = "character"
	RoleProp      = "prop"
)

// matterhornParts is the number of mountain pieces shipped with the scene.
const matterhornParts = 33

// SceneConfig is the scene manifest.
type SceneConfig struct {
	LightDir   [3]float32 `yaml:"light_dir"`
	LightColor [3]float32 `yaml:"light_color"`
	Emitter    [3]float32 `yaml:"emitter"`

	// RotateSpeed is how fast Q/E turn rotatable objects, degrees per second.
	RotateSpeed float32 `yaml:"rotate_speed"`
	StartNight  bool    `yaml:"start_night"`

	Sky     SkyConfig      `yaml:"sky"`
	Objects []ObjectConfig `yaml:"objects"`
}

// SkyConfig holds the sky dome mesh and its day and night textures.
type SkyConfig struct {
	Mesh     string     `yaml:"mesh"`
	Day      string     `yaml:"day"`
	Night    string     `yaml:"night"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees
}

// ObjectConfig describes one drawable object.
type ObjectConfig struct {
	Name      string           `yaml:"name"`
	Role      string           `yaml:"role"`
	Mesh      string           `yaml:"mesh"`
	Texture   string           `yaml:"texture"`
	Position  [3]float32       `yaml:"position"`
	RotationY float32          `yaml:"rotation_y"` // degrees
	Scale     float32          `yaml:"scale"`
	Material  MaterialConfig   `yaml:"material"`
	Rotatable bool             `yaml:"rotatable"`
	Shadows   *bool            `yaml:"cast_shadows,omitempty"`
	Animation *AnimationConfig `yaml:"animation,omitempty"`
}

// CastsShadows reports whether the object is drawn into the shadow map.
// Objects cast shadows unless the manifest says otherwise.
func (o *ObjectConfig) CastsShadows() bool {
	return o.Shadows == nil || *o.Shadows
}

// MaterialConfig holds per-object lighting terms.
type MaterialConfig struct {
	Shininess        float32 `yaml:"shininess"`
	SpecularStrength float32 `yaml:"specular_strength"`
	LightMultiplier  float32 `yaml:"light_multiplier"`
}

// AnimationConfig is a sine oscillation about a pivot:
// angle(t) = Amplitude * sin(2*pi*Frequency*t + Phase).
type AnimationConfig struct {
	Pivot     [3]float32 `yaml:"pivot"`
	Axis      [3]float32 `yaml:"axis"`
	Amplitude float32    `yaml:"amplitude"` // degrees
	Frequency float32    `yaml:"frequency"` // Hz
	Phase     float32    `yaml:"phase"`     // radians
}

var (
	stoneMaterial   = MaterialConfig{Shininess: 32, SpecularStrength: 0.3, LightMultiplier: 1}
	featherMaterial = MaterialConfig{Shininess: 6, SpecularStrength: 0.15, LightMultiplier: 3}
)

func defaultScene() SceneConfig {
	objects := []ObjectConfig{{
		Name:      "matterhorn",
		Role:      RoleTerrain,
		Mesh:      "models/Matterhorn/Matterhornbig.obj",
		Texture:   "models/Matterhorn/Matterhorn.jpg",
		RotationY: 180,
		Scale:     1,
		Material:  stoneMaterial,
		Rotatable: true,
	}}

	for i := 1; i <= matterhornParts; i++ {
		objects = append(objects, ObjectConfig{
			Name:     fmt.Sprintf("m%d", i),
			Role:     RoleTerrain,
			Mesh:     fmt.Sprintf("models/Matterhorn_parts/m%d.obj", i),
			Texture:  fmt.Sprintf("models/Matterhorn_parts/m%d.png", i),
			Scale:    1,
			Material: stoneMaterial,
		})
	}

	penguinPos := [3]float32{3, 0, 6}
	objects = append(objects,
		ObjectConfig{
			Name:     "penguin",
			Role:     RoleCharacter,
			Mesh:     "models/penguin/penguin1.obj",
			Texture:  "models/penguin/Penguin Diffuse Color.png",
			Position: penguinPos,
			Scale:    1,
			Material: featherMaterial,
		},
		ObjectConfig{
			Name:     "penguin_wing_left",
			Role:     RoleCharacter,
			Mesh:     "models/penguin/wing_left.obj",
			Texture:  "models/penguin/Penguin Diffuse Color.png",
			Position: penguinPos,
			Scale:    1,
			Material: featherMaterial,
			Animation: &AnimationConfig{
				Pivot:     [3]float32{0.25, 0.9, 0},
				Axis:      [3]float32{0, 0, 1},
				Amplitude: 25,
				Frequency: 1.5,
			},
		},
		ObjectConfig{
			Name:     "penguin_wing_right",
			Role:     RoleCharacter,
			Mesh:     "models/penguin/wing_right.obj",
			Texture:  "models/penguin/Penguin Diffuse Color.png",
			Position: penguinPos,
			Scale:    1,
			Material: featherMaterial,
			Animation: &AnimationConfig{
				Pivot:     [3]float32{-0.25, 0.9, 0},
				Axis:      [3]float32{0, 0, 1},
				Amplitude: -25,
				Frequency: 1.5,
			},
		},
		ObjectConfig{
			Name:     "astronaut",
			Role:     RoleCharacter,
			Mesh:     "models/astronaut/astronaut.obj",
			Texture:  "models/astronaut/texture_diffuse.png",
			Position: [3]float32{-3, 0, 7},
			Scale:    1,
			Material: stoneMaterial,
		},
	)

	return SceneConfig{
		LightDir:    [3]float32{0, -1, -0.3},
		LightColor:  [3]float32{1, 1, 0.95},
		Emitter:     [3]float32{0, 0.1, 5},
		RotateSpeed: 60,
		Sky: SkyConfig{
			Mesh:     "models/SkyDome/sky.obj",
			Day:      "models/SkyDome/skydomeBIG.png",
			Night:    "models/SkyDome/skydome_night.png",
			Rotation: [3]float32{180, 0, 0},
		},
		Objects: objects,
	}
}

func (s *SceneConfig) validate() error {
	var errs []error
	if s.LightDir == [3]float32{} {
		errs = append(errs, errors.New("scene.light_dir must not be zero"))
	}
	if s.Sky.Mesh == "" || s.Sky.Day == "" {
		errs = append(errs, errors.New("scene.sky needs a mesh and a day texture"))
	}

	seen := make(map[string]bool, len(s.Objects))
	for i, o := range s.Objects {
		switch o.Role {
		case RoleTerrain, RoleCharacter, RoleProp:
		default:
			errs = append(errs, fmt.Errorf("scene.objects[%d] %q: unknown role %q", i, o.Name, o.Role))
		}
		if o.Mesh == "" {
			errs = append(errs, fmt.Errorf("scene.objects[%d] %q: mesh is required", i, o.Name))
		}
		if o.Name != "" && seen[o.Name] {
			errs = append(errs, fmt.Errorf("scene.objects[%d]: duplicate name %q", i, o.Name))
		}
		seen[o.Name] = true
		if a := o.Animation; a != nil && a.Axis == [3]float32{} {
			errs = append(errs, fmt.Errorf("scene.objects[%d] %q: animation axis must not be zero", i, o.Name))
		}
	}
	return errors.Join(errs...)
}
