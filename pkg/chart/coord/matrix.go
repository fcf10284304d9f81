package coord

import "math"

// Matrix is a 2D affine transform stored column-major as [a b c d e f]:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
type Matrix [6]float64

// IdentityMatrix returns the transform that leaves points unchanged.
func IdentityMatrix() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

// TranslateMatrix returns a translation by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

// ScaleMatrix returns a scale by (sx, sy) about the origin.
func ScaleMatrix(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// RotateMatrix returns a rotation by angle radians about the origin.
func RotateMatrix(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Then returns the transform that applies m first and o second.
func (m Matrix) Then(o Matrix) Matrix {
	return Matrix{
		o[0]*m[0] + o[2]*m[1],
		o[1]*m[0] + o[3]*m[1],
		o[0]*m[2] + o[2]*m[3],
		o[1]*m[2] + o[3]*m[3],
		o[0]*m[4] + o[2]*m[5] + o[4],
		o[1]*m[4] + o[3]*m[5] + o[5],
	}
}

// About wraps o so that it acts around the pivot point instead of the origin,
// and appends it to m.
func (m Matrix) About(pivot Point, o Matrix) Matrix {
	return m.Then(TranslateMatrix(-pivot.X, -pivot.Y)).Then(o).Then(TranslateMatrix(pivot.X, pivot.Y))
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

// Invert returns the inverse transform. A singular matrix inverts to the
// identity.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return IdentityMatrix()
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// IsIdentity reports whether m is the identity within a small epsilon.
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	id := IdentityMatrix()
	for i := range m {
		if math.Abs(m[i]-id[i]) > eps {
			return false
		}
	}
	return true
}
