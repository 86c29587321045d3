package model

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GPUMesh is a mesh uploaded to a vertex array.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	Bounds     Bounds
}

// Upload copies mesh into GPU buffers. Attribute 0 is position, 1 normal,
// 2 texture coordinate.
func Upload(mesh *Mesh) *GPUMesh {
	g := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		Bounds:     mesh.Bounds,
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexStride, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 24)

	gl.GenBuffers(1, &g.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

// Draw issues one indexed draw of the whole mesh.
func (g *GPUMesh) Draw() {
	if g.VAO == 0 {
		return
	}
	gl.BindVertexArray(g.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers.
func (g *GPUMesh) Destroy() {
	if g.EBO != 0 {
		gl.DeleteBuffers(1, &g.EBO)
	}
	if g.VBO != 0 {
		gl.DeleteBuffers(1, &g.VBO)
	}
	if g.VAO != 0 {
		gl.DeleteVertexArrays(1, &g.VAO)
	}
	*g = GPUMesh{}
}
