package scene

// LitUniform enumerates the lit program's uniforms.
type LitUniform int

const (
	LitModel LitUniform = iota
	LitView
	LitProjection
	LitNormalMatrix
	LitLightSpace
	LitDiffuse
	LitShadowMap
	LitLightDir
	LitLightColor
	LitAmbient
	LitLightIntensity
	LitCameraPos
	LitShininess
	LitSpecularStrength
	LitLightMultiplier
	LitFirePos
	LitFireColor
	LitFireRange
	LitFireIntensity
)

// LitUniformNames are the GLSL names of LitUniform values, in order.
var LitUniformNames = []string{
	"uModel",
	"uView",
	"uProjection",
	"uNormalMatrix",
	"uLightSpace",
	"uDiffuse",
	"uShadowMap",
	"uLightDir",
	"uLightColor",
	"uAmbient",
	"uLightIntensity",
	"uCameraPos",
	"uShininess",
	"uSpecularStrength",
	"uLightMultiplier",
	"uFirePos",
	"uFireColor",
	"uFireRange",
	"uFireIntensity",
}

// SkyUniform enumerates the sky program's uniforms.
type SkyUniform int

const (
	SkyModel SkyUniform = iota
	SkyView
	SkyProjection
	SkyTexture
	SkyTint
)

// SkyUniformNames are the GLSL names of SkyUniform values, in order.
var SkyUniformNames = []string{"uModel", "uView", "uProjection", "uSky", "uTint"}

// ParticleUniform enumerates the particle program's uniforms.
type ParticleUniform int

const (
	ParticleView ParticleUniform = iota
	ParticleProjection
)

// ParticleUniformNames are the GLSL names of ParticleUniform values, in order.
var ParticleUniformNames = []string{"uView", "uProjection"}

// Texture units.
const (
	unitDiffuse = 0
	unitShadow  = 1
)

// program is the part of shader.Program a pass needs.
type program[U ~int] interface {
	Handle() uint32
	Loc(u U) int32
}
