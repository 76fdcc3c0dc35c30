package tilemap

import "math"

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as not invertible.
const singularEpsilon = 1e-10

// Mat2 is a 2x2 matrix in row-major order:
//
//	| A  B |
//	| C  D |
type Mat2 struct {
	A, B float64
	C, D float64
}

// MulVec applies the matrix to a vector.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.C*v.X + m.D*v.Y,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat2) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the inverse matrix.
// The second result is false if the matrix is not invertible, in which case
// the returned matrix is the zero matrix.
func (m Mat2) Inverse() (Mat2, bool) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Mat2{}, false
	}
	invDet := 1.0 / det
	return Mat2{
		A: m.D * invDet, B: -m.B * invDet,
		C: -m.C * invDet, D: m.A * invDet,
	}, true
}

// Mat3 is a 3x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//	| G  H  I |
//
// Vectors are treated as columns, so MulVec computes M·v.
type Mat3 struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Scale3 creates a diagonal scaling matrix.
func Scale3(x, y, z float64) Mat3 {
	return Mat3{
		A: x,
		E: y,
		I: z,
	}
}

// RotateZ creates a rotation about the z axis (angle in radians).
func RotateZ(angle float64) Mat3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Mat3{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// MulVec applies the matrix to a vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m.A*v.X + m.B*v.Y + m.C*v.Z,
		Y: m.D*v.X + m.E*v.Y + m.F*v.Z,
		Z: m.G*v.X + m.H*v.Y + m.I*v.Z,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Mat3) Multiply(o Mat3) Mat3 {
	return Mat3{
		A: m.A*o.A + m.B*o.D + m.C*o.G,
		B: m.A*o.B + m.B*o.E + m.C*o.H,
		C: m.A*o.C + m.B*o.F + m.C*o.I,
		D: m.D*o.A + m.E*o.D + m.F*o.G,
		E: m.D*o.B + m.E*o.E + m.F*o.H,
		F: m.D*o.C + m.E*o.F + m.F*o.I,
		G: m.G*o.A + m.H*o.D + m.I*o.G,
		H: m.G*o.B + m.H*o.E + m.I*o.H,
		I: m.G*o.C + m.H*o.F + m.I*o.I,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m.A*(m.E*m.I-m.F*m.H) -
		m.B*(m.D*m.I-m.F*m.G) +
		m.C*(m.D*m.H-m.E*m.G)
}

// Inverse returns the inverse matrix.
// The second result is false if the matrix is not invertible.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Mat3{}, false
	}
	invDet := 1.0 / det
	return Mat3{
		A: (m.E*m.I - m.F*m.H) * invDet,
		B: (m.C*m.H - m.B*m.I) * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: (m.F*m.G - m.D*m.I) * invDet,
		E: (m.A*m.I - m.C*m.G) * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
		G: (m.D*m.H - m.E*m.G) * invDet,
		H: (m.B*m.G - m.A*m.H) * invDet,
		I: (m.A*m.E - m.B*m.D) * invDet,
	}, true
}

// Linear2 returns the upper-left 2x2 block, the part of the matrix that acts
// on the xy plane.
func (m Mat3) Linear2() Mat2 {
	return Mat2{
		A: m.A, B: m.B,
		C: m.D, D: m.E,
	}
}

// Column returns column i (0, 1 or 2).
func (m Mat3) Column(i int) Vec3 {
	switch i {
	case 0:
		return Vec3{X: m.A, Y: m.D, Z: m.G}
	case 1:
		return Vec3{X: m.B, Y: m.E, Z: m.H}
	default:
		return Vec3{X: m.C, Y: m.F, Z: m.I}
	}
}

// Affine3 is a 3D affine transform: p' = Matrix·p + Translation.
// It describes how a map object is placed in the world.
type Affine3 struct {
	Matrix      Mat3
	Translation Vec3
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine3 {
	return Affine3{Matrix: Identity3()}
}

// TranslateAffine creates a pure translation.
func TranslateAffine(x, y, z float64) Affine3 {
	return Affine3{Matrix: Identity3(), Translation: Vec3{X: x, Y: y, Z: z}}
}

// TransformPoint applies the transform to a point.
func (a Affine3) TransformPoint(p Vec3) Vec3 {
	return a.Matrix.MulVec(p).Add(a.Translation)
}

// Then returns the transform that applies a first and then next.
func (a Affine3) Then(next Affine3) Affine3 {
	return Affine3{
		Matrix:      next.Matrix.Multiply(a.Matrix),
		Translation: next.Matrix.MulVec(a.Translation).Add(next.Translation),
	}
}

// Inverse returns the inverse transform.
// The second result is false if the linear part is not invertible.
func (a Affine3) Inverse() (Affine3, bool) {
	inv, ok := a.Matrix.Inverse()
	if !ok {
		return Affine3{}, false
	}
	t := inv.MulVec(a.Translation)
	return Affine3{
		Matrix:      inv,
		Translation: Vec3{X: -t.X, Y: -t.Y, Z: -t.Z},
	}, true
}

// nanAffine is stored as the inverse of a singular transform so that inverse
// queries produce visibly non-finite results.
func nanAffine() Affine3 {
	n := math.NaN()
	return Affine3{
		Matrix:      Mat3{A: n, B: n, C: n, D: n, E: n, F: n, G: n, H: n, I: n},
		Translation: Vec3{X: n, Y: n, Z: n},
	}
}
