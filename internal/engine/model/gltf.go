package model

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/campfire/pkg/math"
)

// LoadGLTF opens a .gltf or .glb file and flattens every mesh reachable from
// the default scene into one mesh, baking node transforms into the vertices.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	mesh, err := flattenDocument(doc, path)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return mesh, nil
}

func flattenDocument(doc *gltf.Document, name string) (*Mesh, error) {
	out := &Mesh{Name: name}

	var visit func(idx int, parent math.Mat4) error
	visit = func(idx int, parent math.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		node := doc.Nodes[idx]
		world := parent.Mul(nodeMatrix(node))

		if node.Mesh != nil {
			if *node.Mesh >= len(doc.Meshes) {
				return fmt.Errorf("node %d: mesh %d out of range", idx, *node.Mesh)
			}
			for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
				if err := appendPrimitive(out, doc, prim, world); err != nil {
					return fmt.Errorf("mesh %d prim %d: %w", *node.Mesh, pi, err)
				}
			}
		}
		for _, child := range node.Children {
			if err := visit(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := visit(root, math.Identity()); err != nil {
			return nil, err
		}
	}

	if len(out.Indices) == 0 {
		return nil, fmt.Errorf("no triangle geometry")
	}
	out.Bounds = computeBounds(out.Vertices)
	return out, nil
}

// rootNodes returns the default scene's nodes, or every parentless node when
// the document has no default scene.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix returns the node's local transform, from its matrix when set,
// otherwise from translation, rotation and scale.
func nodeMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != gltf.DefaultMatrix {
		var m math.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(math.FromQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

func appendPrimitive(out *Mesh, doc *gltf.Document, prim *gltf.Primitive, world math.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	normalMat := world.Inverse().Transpose()
	base := uint32(len(out.Vertices))
	for i, p := range positions {
		v := Vertex{Position: world.TransformPoint(p), Normal: [3]float32{0, 1, 0}}
		if i < len(normals) {
			v.Normal = math.FromArray(normalMat.TransformDirection(normals[i])).Normalize().Array()
		}
		if i < len(uvs) {
			v.TexCoord = [2]float32{uvs[i][0], 1 - uvs[i][1]}
		}
		out.Vertices = append(out.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			out.Indices = append(out.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}
