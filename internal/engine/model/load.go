package model

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for mesh files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads the mesh at path, choosing the parser by extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		return ParseOBJ(bytes.NewReader(data), path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
