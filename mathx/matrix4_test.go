package mathx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix4MultiplyMatrices(t *testing.T) {
	tests := []struct {
		a, b     *Matrix4
		expected [16]float64
	}{
		{
			a:        NewMatrix4(),
			b:        NewMatrix4(),
			expected: *NewMatrix4(),
		},
		{
			a:        NewMatrix4().Set(2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1),
			b:        NewMatrix4().Set(1, 0, 0, 3, 0, 1, 0, 4, 0, 0, 1, 5, 0, 0, 0, 1),
			expected: [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 6, 8, 10, 1},
		},
	}
	for _, tc := range tests {
		got := NewMatrix4().MultiplyMatrices(tc.a, tc.b)
		assert.Equal(t, Matrix4(tc.expected), *got)
	}
}

func TestMatrix4ComposeDecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		position Vector3
		rotation Quaternion
		scale    Vector3
	}{
		{"identity", Vector3{}, Quaternion{W: 1}, Vector3{1, 1, 1}},
		{"translate-only", Vector3{-90.59, -24.38, -40.06}, Quaternion{W: 1}, Vector3{1, 1, 1}},
		{"uniform-scale", Vector3{1, 2, 3}, Quaternion{W: 1}, Vector3{2, 2, 2}},
		{"rotated", Vector3{5, -2, 9}, *NewQuaternion(0, 0.7071067811865476, 0, 0.7071067811865476), Vector3{1, 1, 1}},
		{"nonuniform-scale-and-rotation", Vector3{0.5, 1.5, -2.5},
			*NewQuaternion(0.18257418583505536, 0.3651483716701107, 0.5477225575051661, 0.7302967433402214), Vector3{2, 3, 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			composed := NewMatrix4().Compose(&tc.position, &tc.rotation, &tc.scale)

			var gotPos, gotScale Vector3
			var gotRot Quaternion
			composed.Decompose(&gotPos, &gotRot, &gotScale)

			recomposed := NewMatrix4().Compose(&gotPos, &gotRot, &gotScale)

			const tenEps = 10 * 2.220446049250313e-16
			for i := range composed {
				assert.InDelta(t, composed[i], recomposed[i], tenEps*10, "component %d", i)
			}
			assert.InDelta(t, tc.position.X, gotPos.X, 1e-9)
			assert.InDelta(t, tc.position.Y, gotPos.Y, 1e-9)
			assert.InDelta(t, tc.position.Z, gotPos.Z, 1e-9)
		})
	}
}

func TestMatrix4DecomposeTranslationExact(t *testing.T) {
	// Mirrors spec.md §8.2 scenario 4: translation must equal column 3 exactly.
	m := NewMatrix4().Set(
		-0.4234, 0, 0, -90.59,
		0, 1, 0, -24.38,
		0, 0, 1, -40.06,
		0, 0, 0, 1,
	)
	var pos, scale Vector3
	var rot Quaternion
	m.Decompose(&pos, &rot, &scale)
	assert.Equal(t, -90.59, pos.X)
	assert.Equal(t, -24.38, pos.Y)
	assert.Equal(t, -40.06, pos.Z)
}

func TestMatrix4IsIdentity(t *testing.T) {
	assert.True(t, NewMatrix4().IsIdentity(Epsilon))
	m := NewMatrix4()
	m[0] = 1 + 1e-9
	assert.True(t, m.IsIdentity(Epsilon))
	m[0] = 1.1
	assert.False(t, m.IsIdentity(Epsilon))
}
