// Package mathx is the vector/quaternion/matrix kernel gltfkit needs to
// expose TRS<->matrix decomposition (spec.md §4.D). It is adapted from
// g3n-engine's math32 package: same per-component arithmetic and the
// same polar-decomposition-flavoured Matrix4.Decompose/Compose, recast
// from float32 to float64 to match the precision glTF JSON numbers and
// AccessorBoundsArray already carry, and trimmed of the frustum/box/
// color/spline helpers a renderer needs but a loader/validator doesn't.
package mathx

import "math"

// Epsilon is a default tolerance for "close enough to identity"
// comparisons (e.g. the GODOT_single_root root-node check, spec.md §9).
const Epsilon = 1e-6

func sqrt(v float64) float64 { return math.Sqrt(v) }

func abs(v float64) float64 { return math.Abs(v) }

// Clamp clamps x to the closed interval [a, b].
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
