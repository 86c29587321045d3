package scene

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/engine/scene/shaders"
	"github.com/Faultbox/campfire/internal/engine/shadow"
)

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func declaredUniforms(t *testing.T, files ...string) map[string]bool {
	t.Helper()
	out := make(map[string]bool)
	for _, f := range files {
		src, err := fs.ReadFile(shaders.Embedded(), f)
		require.NoError(t, err, f)
		for _, m := range uniformDecl.FindAllStringSubmatch(string(src), -1) {
			out[m[1]] = true
		}
	}
	return out
}

func TestUniformNamesMatchShaders(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		count int
		files []string
	}{
		{"lit", LitUniformNames, int(LitFireIntensity) + 1, []string{shaders.LitVertex, shaders.LitFragment}},
		{"sky", SkyUniformNames, int(SkyTint) + 1, []string{shaders.SkyVertex, shaders.SkyFragment}},
		{"particle", ParticleUniformNames, int(ParticleProjection) + 1, []string{shaders.ParticleVertex, shaders.ParticleFragment}},
		{"depth", shadow.DepthUniformNames, int(shadow.DepthModel) + 1, []string{shaders.DepthVertex, shaders.DepthFragment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.names, tt.count)
			declared := declaredUniforms(t, tt.files...)
			for _, n := range tt.names {
				assert.True(t, declared[n], "uniform %s not declared", n)
			}
		})
	}
}
