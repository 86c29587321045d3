// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.vert *.frag
var embedded embed.FS

// Shader file names.
const (
	LitVertex        = "lit.vert"
	LitFragment      = "lit.frag"
	SkyVertex        = "sky.vert"
	SkyFragment      = "sky.frag"
	DepthVertex      = "depth.vert"
	DepthFragment    = "depth.frag"
	ParticleVertex   = "particle.vert"
	ParticleFragment = "particle.frag"
)

// Source returns the shader file system: dir on disk when set, otherwise
// the sources compiled into the binary.
func Source(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return embedded
}

// Embedded returns the sources compiled into the binary.
func Embedded() fs.FS {
	return embedded
}
