package pbrt4

import "math"

// Matrix is a 4x4 transformation matrix in column-major order, the
// layout Transform and ConcatTransform directives use on the wire:
// element (row, col) lives at index col*4+row.
type Matrix [16]float32

// NewMatrix builds a matrix from up to 16 column-major values.
func NewMatrix(values []float32) Matrix {
	var m Matrix
	copy(m[:], values)
	return m
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Matrix {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scaling matrix.
func Scale(x, y, z float32) Matrix {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Rotate returns a rotation of angle degrees around the given axis.
func Rotate(angle, x, y, z float32) Matrix {
	a := normalize([3]float32{x, y, z})
	rad := float64(angle) * math.Pi / 180
	sin := float32(math.Sin(rad))
	cos := float32(math.Cos(rad))

	m := Identity()
	m.set(0, 0, a[0]*a[0]+(1-a[0]*a[0])*cos)
	m.set(0, 1, a[0]*a[1]*(1-cos)-a[2]*sin)
	m.set(0, 2, a[0]*a[2]*(1-cos)+a[1]*sin)
	m.set(1, 0, a[0]*a[1]*(1-cos)+a[2]*sin)
	m.set(1, 1, a[1]*a[1]+(1-a[1]*a[1])*cos)
	m.set(1, 2, a[1]*a[2]*(1-cos)-a[0]*sin)
	m.set(2, 0, a[0]*a[2]*(1-cos)-a[1]*sin)
	m.set(2, 1, a[1]*a[2]*(1-cos)+a[0]*sin)
	m.set(2, 2, a[2]*a[2]+(1-a[2]*a[2])*cos)
	return m
}

// LookAt returns the world to camera viewing matrix for a camera at
// eye looking at look with the given up vector. When up is parallel
// to the viewing direction the frame is underdetermined and the
// identity is returned instead of a singular matrix.
func LookAt(eye, look, up [3]float32) Matrix {
	dir := normalize(sub(look, eye))
	right := cross(normalize(up), dir)
	if right == ([3]float32{}) {
		Debug("degenerate LookAt, up ", up, " parallel to view direction ", dir)
		return Identity()
	}
	right = normalize(right)
	newUp := cross(dir, right)

	// Camera to world: basis vectors in the columns, eye in the
	// translation column. The view matrix is its inverse.
	cameraToWorld := Matrix{
		right[0], right[1], right[2], 0,
		newUp[0], newUp[1], newUp[2], 0,
		dir[0], dir[1], dir[2], 0,
		eye[0], eye[1], eye[2], 1,
	}
	return cameraToWorld.Inverse()
}

// Mul returns the product m * n, so applying n in m's local frame.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Inverse returns the inverse of m, computed from cofactors.
func (m Matrix) Inverse() Matrix {
	s0 := m[0]*m[5] - m[1]*m[4]
	s1 := m[0]*m[6] - m[2]*m[4]
	s2 := m[0]*m[7] - m[3]*m[4]
	s3 := m[1]*m[6] - m[2]*m[5]
	s4 := m[1]*m[7] - m[3]*m[5]
	s5 := m[2]*m[7] - m[3]*m[6]
	c0 := m[8]*m[13] - m[9]*m[12]
	c1 := m[8]*m[14] - m[10]*m[12]
	c2 := m[8]*m[15] - m[11]*m[12]
	c3 := m[9]*m[14] - m[10]*m[13]
	c4 := m[9]*m[15] - m[11]*m[13]
	c5 := m[10]*m[15] - m[11]*m[14]

	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)

	var out Matrix
	out[0] = (c5*m[5] - c4*m[6] + c3*m[7]) * idet
	out[1] = (-c5*m[1] + c4*m[2] - c3*m[3]) * idet
	out[2] = (s5*m[13] - s4*m[14] + s3*m[15]) * idet
	out[3] = (-s5*m[9] + s4*m[10] - s3*m[11]) * idet
	out[4] = (-c5*m[4] + c2*m[6] - c1*m[7]) * idet
	out[5] = (c5*m[0] - c2*m[2] + c1*m[3]) * idet
	out[6] = (-s5*m[12] + s2*m[14] - s1*m[15]) * idet
	out[7] = (s5*m[8] - s2*m[10] + s1*m[11]) * idet
	out[8] = (c4*m[4] - c2*m[5] + c0*m[7]) * idet
	out[9] = (-c4*m[0] + c2*m[1] - c0*m[3]) * idet
	out[10] = (s4*m[12] - s2*m[13] + s0*m[15]) * idet
	out[11] = (-s4*m[8] + s2*m[9] - s0*m[11]) * idet
	out[12] = (-c3*m[4] + c1*m[5] - c0*m[6]) * idet
	out[13] = (c3*m[0] - c1*m[1] + c0*m[2]) * idet
	out[14] = (-s3*m[12] + s1*m[13] - s0*m[14]) * idet
	out[15] = (s3*m[8] - s1*m[9] + s0*m[10]) * idet
	return out
}

func (m *Matrix) set(row, col int, v float32) {
	m[col*4+row] = v
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	n := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if n == 0 {
		return v
	}
	return [3]float32{v[0] / n, v[1] / n, v[2] / n}
}
