package mathx

// Matrix4 is a column-major 4x4 matrix, laid out exactly as glTF's
// node.matrix array: m[4*col+row].
type Matrix4 [16]float64

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() *Matrix4 {
	var m Matrix4
	m.Identity()
	return &m
}

// Set sets all elements of this matrix, given row by row. Returns the
// pointer to this matrix.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float64) *Matrix4 {
	m[0], m[4], m[8], m[12] = n11, n12, n13, n14
	m[1], m[5], m[9], m[13] = n21, n22, n23, n24
	m[2], m[6], m[10], m[14] = n31, n32, n33, n34
	m[3], m[7], m[11], m[15] = n41, n42, n43, n44
	return m
}

// Identity resets this matrix to the identity matrix.
func (m *Matrix4) Identity() *Matrix4 {
	return m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// IsIdentity reports whether this matrix equals the identity matrix
// within eps per component.
func (m *Matrix4) IsIdentity(eps float64) bool {
	id := NewMatrix4()
	for i := range m {
		if abs(m[i]-id[i]) > eps {
			return false
		}
	}
	return true
}

// Multiply sets this matrix to this * other. Returns the pointer to this matrix.
func (m *Matrix4) Multiply(other *Matrix4) *Matrix4 {
	return m.MultiplyMatrices(m, other)
}

// MultiplyMatrices sets this matrix to a * b. Returns the pointer to this matrix.
func (m *Matrix4) MultiplyMatrices(a, b *Matrix4) *Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[4*k+row] * b[4*col+k]
			}
			out[4*col+row] = sum
		}
	}
	*m = out
	return m
}

// SetPosition sets the translation column of this matrix.
func (m *Matrix4) SetPosition(v *Vector3) *Matrix4 {
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// MakeScale sets this matrix to a pure scale matrix. Returns the pointer to this matrix.
func (m *Matrix4) MakeScale(x, y, z float64) *Matrix4 {
	return m.Set(
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

// ScaleAxes multiplies this matrix's basis columns by v's components in
// place (teacher's Matrix4.Scale).
func (m *Matrix4) ScaleAxes(v *Vector3) *Matrix4 {
	m[0] *= v.X
	m[4] *= v.Y
	m[8] *= v.Z
	m[1] *= v.X
	m[5] *= v.Y
	m[9] *= v.Z
	m[2] *= v.X
	m[6] *= v.Y
	m[10] *= v.Z
	m[3] *= v.X
	m[7] *= v.Y
	m[11] *= v.Z
	return m
}

// MakeRotationFromQuaternion sets this matrix to the rotation matrix of q.
// Returns the pointer to this matrix.
func (m *Matrix4) MakeRotationFromQuaternion(q *Quaternion) *Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W

	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m[0] = 1 - (yy + zz)
	m[4] = xy - wz
	m[8] = xz + wy

	m[1] = xy + wz
	m[5] = 1 - (xx + zz)
	m[9] = yz - wx

	m[2] = xz - wy
	m[6] = yz + wx
	m[10] = 1 - (xx + yy)

	m[3], m[7], m[11] = 0, 0, 0
	m[12], m[13], m[14] = 0, 0, 0
	m[15] = 1
	return m
}

// Determinant returns the determinant of this matrix.
func (m *Matrix4) Determinant() float64 {
	n11, n12, n13, n14 := m[0], m[4], m[8], m[12]
	n21, n22, n23, n24 := m[1], m[5], m[9], m[13]
	n31, n32, n33, n34 := m[2], m[6], m[10], m[14]
	n41, n42, n43, n44 := m[3], m[7], m[11], m[15]

	return n41*(+n14*n23*n32-n13*n24*n32-n14*n22*n33+n12*n24*n33+n13*n22*n34-n12*n23*n34) +
		n42*(+n11*n23*n34-n11*n24*n33+n14*n21*n33-n13*n21*n34+n13*n24*n31-n14*n23*n31) +
		n43*(+n11*n24*n32-n11*n22*n34-n14*n21*n32+n12*n21*n34+n14*n22*n31-n12*n24*n31) +
		n44*(-n13*n22*n31-n11*n23*n32+n11*n22*n33+n13*n21*n32-n12*n21*n33+n12*n23*n31)
}

// Compose sets this matrix to the transform described by position,
// rotation (quaternion) and scale: T * R * S, matching glTF's TRS
// composition order. Returns the pointer to this matrix.
func (m *Matrix4) Compose(position *Vector3, rotation *Quaternion, scale *Vector3) *Matrix4 {
	m.MakeRotationFromQuaternion(rotation)
	m.ScaleAxes(scale)
	m.SetPosition(position)
	return m
}

// Decompose extracts position, rotation and scale from this matrix,
// using the polar-decomposition-flavoured approach spec.md §4.D
// describes: translation from column 3, scale from basis-column
// lengths (sign-corrected against a negative determinant), then the
// now-unit-length rotation basis is fed to Quaternion.SetFromRotationMatrix.
// Matrices with skew/shear are accepted but decompose lossily — callers
// must not rely on exact recomposition for such matrices.
func (m *Matrix4) Decompose(position *Vector3, rotation *Quaternion, scale *Vector3) *Matrix4 {
	var v Vector3
	matrix := *m

	position.X, position.Y, position.Z = m[12], m[13], m[14]

	scale.X = v.Set(m[0], m[1], m[2]).Length()
	scale.Y = v.Set(m[4], m[5], m[6]).Length()
	scale.Z = v.Set(m[8], m[9], m[10]).Length()

	if m.Determinant() < 0 {
		scale.X = -scale.X
	}

	invSX, invSY, invSZ := 1/scale.X, 1/scale.Y, 1/scale.Z

	matrix[0] *= invSX
	matrix[1] *= invSX
	matrix[2] *= invSX

	matrix[4] *= invSY
	matrix[5] *= invSY
	matrix[6] *= invSY

	matrix[8] *= invSZ
	matrix[9] *= invSZ
	matrix[10] *= invSZ

	rotation.SetFromRotationMatrix(&matrix)
	return m
}
