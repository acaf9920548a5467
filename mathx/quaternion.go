package mathx

// Quaternion stores a rotation as (X, Y, Z, W), matching glTF's
// node.rotation component order where W is the scalar part.
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// NewQuaternion creates a new Quaternion with the given components.
func NewQuaternion(x, y, z, w float64) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

// Set sets this quaternion's components. Returns the pointer to this quaternion.
func (q *Quaternion) Set(x, y, z, w float64) *Quaternion {
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// SetIdentity resets this quaternion to the identity rotation.
func (q *Quaternion) SetIdentity() *Quaternion {
	return q.Set(0, 0, 0, 1)
}

// LengthSq returns the squared length of this quaternion.
func (q *Quaternion) LengthSq() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Length returns the length of this quaternion.
func (q *Quaternion) Length() float64 {
	return sqrt(q.LengthSq())
}

// NearEquals reports whether this quaternion equals other within eps per component.
func (q *Quaternion) NearEquals(other *Quaternion, eps float64) bool {
	return abs(q.X-other.X) <= eps && abs(q.Y-other.Y) <= eps &&
		abs(q.Z-other.Z) <= eps && abs(q.W-other.W) <= eps
}

// SetFromRotationMatrix derives this quaternion from the rotation
// (no-scale) part of m. It picks the largest of the trace and the three
// 1±diagonal combinations, takes the square root of that one, and
// derives the other three components from the off-diagonal sums and
// differences.
// Returns the pointer to this quaternion.
func (q *Quaternion) SetFromRotationMatrix(m *Matrix4) *Quaternion {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]
	trace := m11 + m22 + m33

	var s float64
	switch {
	case trace > 0:
		s = 0.5 / sqrt(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s = 2.0 * sqrt(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s = 2.0 * sqrt(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s = 2.0 * sqrt(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}
