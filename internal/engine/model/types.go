// Package model loads static meshes (Wavefront OBJ and glTF) and uploads them to the GPU.
package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/campfire/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// vertexStride is the byte size of Vertex as laid out in the VBO.
const vertexStride = 8 * 4

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns bounds that any point will extend.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// Extend grows b to contain p.
func (b Bounds) Extend(p [3]float32) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Transform returns the bounds of b's eight corners under m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := [3]float32{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.Extend(m.TransformPoint(corner))
	}
	return out
}

// Pad grows the bounds by d on every side.
func (b Bounds) Pad(d float32) Bounds {
	if b.IsEmpty() {
		return b
	}
	for i := 0; i < 3; i++ {
		b.Min[i] -= d
		b.Max[i] += d
	}
	return b
}

func computeBounds(vertices []Vertex) Bounds {
	b := EmptyBounds()
	for i := range vertices {
		b = b.Extend(vertices[i].Position)
	}
	return b
}
