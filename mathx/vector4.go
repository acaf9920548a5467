package mathx

// Vector4 is a 4-component vector, used for VEC4 accessor elements and
// tangent/weight attributes.
type Vector4 struct {
	X float64
	Y float64
	Z float64
	W float64
}

// NewVector4 creates a new Vector4 with the given components.
func NewVector4(x, y, z, w float64) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

// Set sets this vector's components. Returns the pointer to this vector.
func (v *Vector4) Set(x, y, z, w float64) *Vector4 {
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}

// Dot returns the dot product of this vector with other.
func (v *Vector4) Dot(other *Vector4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// Length returns the length of this vector.
func (v *Vector4) Length() float64 {
	return sqrt(v.Dot(v))
}
