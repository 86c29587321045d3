package math

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix, laid out the way GL uniforms expect:
// element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective is a right-handed projection with clip depth in [-1, 1].
// fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	depth := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// Ortho maps the box [left,right]×[bottom,top]×[-near,-far] to the clip cube.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w, h, d := right-left, top-bottom, far-near

	m := Identity()
	m[0] = 2 / w
	m[5] = 2 / h
	m[10] = -2 / d
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	return m
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	return Mat4{
		side.X, camUp.X, -fwd.X, 0,
		side.Y, camUp.Y, -fwd.Y, 0,
		side.Z, camUp.Z, -fwd.Z, 0,
		-side.Dot(eye), -camUp.Dot(eye), fwd.Dot(eye), 1,
	}
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a non-uniform scale.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateX rotates angle radians about +X.
func RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY rotates angle radians about +Y.
func RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateAxis rotates angle radians about a unit axis (Rodrigues).
func RotateAxis(axis [3]float32, angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	k := 1 - c
	x, y, z := axis[0], axis[1], axis[2]

	return Mat4{
		k*x*x + c, k*x*y + s*z, k*x*z - s*y, 0,
		k*x*y - s*z, k*y*y + c, k*y*z + s*x, 0,
		k*x*z + s*y, k*y*z - s*x, k*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotateAround rotates angle radians about axis through pivot.
func RotateAround(pivot Vec3, axis [3]float32, angle float32) Mat4 {
	return Translate(pivot.X, pivot.Y, pivot.Z).
		Mul(RotateAxis(axis, angle)).
		Mul(Translate(-pivot.X, -pivot.Y, -pivot.Z))
}

// FromQuat converts a unit quaternion (x, y, z, w) to a rotation.
func FromQuat(x, y, z, w float32) Mat4 {
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0,
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0,
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Mul returns m × n, so n applies first to a transformed point.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		col := m.apply(n[c*4], n[c*4+1], n[c*4+2], n[c*4+3])
		copy(out[c*4:], col[:])
	}
	return out
}

func (m Mat4) apply(x, y, z, w float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w,
	}
}

// TransformPoint applies m to p with w=1, dividing by w when projective.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	v := m.apply(p[0], p[1], p[2], 1)
	if v[3] != 0 && v[3] != 1 {
		return [3]float32{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return [3]float32{v[0], v[1], v[2]}
}

// TransformDirection applies m to d with w=0.
func (m Mat4) TransformDirection(d [3]float32) [3]float32 {
	v := m.apply(d[0], d[1], d[2], 0)
	return [3]float32{v[0], v[1], v[2]}
}

// Mat3x3 is the upper-left 3x3 block, column-major.
func (m Mat4) Mat3x3() [9]float32 {
	return [9]float32{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Ptr is for gl.UniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns m⁻¹, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	// 2x2 sub-determinants of the first two and last two columns.
	s0 := m[0]*m[5] - m[1]*m[4]
	s1 := m[0]*m[6] - m[2]*m[4]
	s2 := m[0]*m[7] - m[3]*m[4]
	s3 := m[1]*m[6] - m[2]*m[5]
	s4 := m[1]*m[7] - m[3]*m[5]
	s5 := m[2]*m[7] - m[3]*m[6]
	c5 := m[10]*m[15] - m[11]*m[14]
	c4 := m[9]*m[15] - m[11]*m[13]
	c3 := m[9]*m[14] - m[10]*m[13]
	c2 := m[8]*m[15] - m[11]*m[12]
	c1 := m[8]*m[14] - m[10]*m[12]
	c0 := m[8]*m[13] - m[9]*m[12]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c5 - m[6]*c4 + m[7]*c3) * inv,
		(m[2]*c4 - m[1]*c5 - m[3]*c3) * inv,
		(m[13]*s5 - m[14]*s4 + m[15]*s3) * inv,
		(m[10]*s4 - m[9]*s5 - m[11]*s3) * inv,

		(m[6]*c2 - m[4]*c5 - m[7]*c1) * inv,
		(m[0]*c5 - m[2]*c2 + m[3]*c1) * inv,
		(m[14]*s2 - m[12]*s5 - m[15]*s1) * inv,
		(m[8]*s5 - m[10]*s2 + m[11]*s1) * inv,

		(m[4]*c4 - m[5]*c2 + m[7]*c0) * inv,
		(m[1]*c2 - m[0]*c4 - m[3]*c0) * inv,
		(m[12]*s4 - m[13]*s2 + m[15]*s0) * inv,
		(m[9]*s2 - m[8]*s4 - m[11]*s0) * inv,

		(m[5]*c1 - m[4]*c3 - m[6]*c0) * inv,
		(m[0]*c3 - m[1]*c1 + m[2]*c0) * inv,
		(m[13]*s1 - m[12]*s3 - m[14]*s0) * inv,
		(m[8]*s3 - m[9]*s1 + m[10]*s0) * inv,
	}
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := range m {
		t[(i%4)*4+i/4] = m[i]
	}
	return t
}

// NormalMatrix is the inverse-transpose 3x3 used to transform normals.
func (m Mat4) NormalMatrix() [9]float32 {
	return m.Inverse().Transpose().Mat3x3()
}
