package model

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	cmath "github.com/Faultbox/campfire/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

const quadOBJ = `
# unit quad in the XZ plane
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ), "quad.obj")
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(mesh.Vertices) != 4 {
		t.Errorf("expected 4 shared vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(mesh.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, w := range want {
		if mesh.Indices[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, mesh.Indices[i])
		}
	}
	if mesh.Vertices[2].TexCoord != [2]float32{1, 1} {
		t.Errorf("expected texcoord (1,1), got %v", mesh.Vertices[2].TexCoord)
	}
	if mesh.Bounds.Min != [3]float32{0, 0, 0} || mesh.Bounds.Max != [3]float32{1, 0, 1} {
		t.Errorf("unexpected bounds %+v", mesh.Bounds)
	}
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 0 -1\nf 1 2 3\n"
	mesh, err := ParseOBJ(strings.NewReader(src), "tri.obj")
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	for i, v := range mesh.Vertices {
		if !near(v.Normal[0], 0) || !near(v.Normal[1], 1) || !near(v.Normal[2], 0) {
			t.Errorf("vertex %d: expected +Y normal, got %v", i, v.Normal)
		}
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf -3 -2 -1\n"
	mesh, err := ParseOBJ(strings.NewReader(src), "neg.obj")
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if mesh.Vertices[2].Position != [3]float32{1, 1, 0} {
		t.Errorf("expected last vertex (1,1,0), got %v", mesh.Vertices[2].Position)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "# nothing\n"},
		{"bad float", "v 0 x 0\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src), tt.name); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("model.fbx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestBoundsTransform(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("expected empty bounds")
	}
	b = b.Extend([3]float32{-1, 0, -1}).Extend([3]float32{1, 2, 1})

	moved := b.Transform(cmath.Translate(10, 0, 0))
	if moved.Min != [3]float32{9, 0, -1} || moved.Max != [3]float32{11, 2, 1} {
		t.Errorf("unexpected translated bounds %+v", moved)
	}

	u := b.Union(EmptyBounds())
	if u != b {
		t.Errorf("union with empty bounds changed %+v to %+v", b, u)
	}

	p := b.Pad(1)
	if p.Min != [3]float32{-2, -1, -2} || p.Max != [3]float32{2, 3, 2} {
		t.Errorf("unexpected padded bounds %+v", p)
	}
}

func TestNodeMatrixTRS(t *testing.T) {
	n := &gltf.Node{
		Translation: [3]float64{1, 2, 3},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{2, 2, 2},
	}
	got := nodeMatrix(n).TransformPoint([3]float32{1, 1, 1})
	want := [3]float32{3, 4, 5}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
