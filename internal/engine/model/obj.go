package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/campfire/pkg/math"
)

// objRef is one corner of an OBJ face as 0-based indices, -1 when absent.
type objRef struct {
	v, vt, vn int
}

// ParseOBJ reads a Wavefront OBJ stream into a single indexed mesh. Groups
// and objects are merged, polygons are fan-triangulated and identical
// corners share a vertex. Missing normals are generated per face.
// Material libraries are ignored: textures come from the scene manifest.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		uvs       [][2]float32
		corners   []objRef
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: vertex: %w", name, lineNo, err)
			}
			positions = append(positions, [3]float32{p[0], p[1], p[2]})

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: normal: %w", name, lineNo, err)
			}
			normals = append(normals, [3]float32{n[0], n[1], n[2]})

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: texcoord: %w", name, lineNo, err)
			}
			uvs = append(uvs, [2]float32{t[0], t[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", name, lineNo)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
				}
				refs = append(refs, ref)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(refs); i++ {
				corners = append(corners, refs[0], refs[i], refs[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("no geometry found in %s", name)
	}

	mesh := &Mesh{Name: name}
	lookup := make(map[objRef]uint32, len(corners))
	needNormals := false
	for _, c := range corners {
		if idx, ok := lookup[c]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			continue
		}
		v := Vertex{Position: positions[c.v]}
		if c.vt >= 0 {
			v.TexCoord = uvs[c.vt]
		}
		if c.vn >= 0 {
			v.Normal = normals[c.vn]
		} else {
			needNormals = true
		}
		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, v)
		lookup[c] = idx
		mesh.Indices = append(mesh.Indices, idx)
	}

	if needNormals {
		generateNormals(mesh.Vertices, mesh.Indices)
	}
	mesh.Bounds = computeBounds(mesh.Vertices)
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef parses v, v/vt, v//vn or v/vt/vn. Negative indices count
// back from the most recent element.
func parseFaceRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")

	resolve := func(s string, count int, what string) (int, error) {
		if s == "" {
			return -1, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("bad %s index %q", what, s)
		}
		switch {
		case i > 0:
			i--
		case i < 0:
			i += count
		default:
			return -1, fmt.Errorf("%s index 0 is invalid", what)
		}
		if i < 0 || i >= count {
			return -1, fmt.Errorf("%s index %s out of range", what, s)
		}
		return i, nil
	}

	var err error
	if ref.v, err = resolve(parts[0], nv, "vertex"); err != nil {
		return ref, err
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face corner %q has no vertex", tok)
	}
	if len(parts) > 1 {
		if ref.vt, err = resolve(parts[1], nvt, "texcoord"); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 {
		if ref.vn, err = resolve(parts[2], nvn, "normal"); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// generateNormals writes area-weighted vertex normals.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a := math.FromArray(vertices[indices[i]].Position)
		b := math.FromArray(vertices[indices[i+1]].Position)
		c := math.FromArray(vertices[indices[i+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range indices[i : i+3] {
			accum[idx] = accum[idx].Add(n)
		}
	}
	for i := range vertices {
		if accum[i].LengthSquared() == 0 {
			vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		vertices[i].Normal = accum[i].Normalize().Array()
	}
}
