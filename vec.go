package tilemap

import "math"

// Vec2 is a 2D vector used for pixel sizes, offsets and local positions.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the component-wise product of two vectors.
func (v Vec2) Mul(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// Div returns the component-wise quotient of two vectors.
func (v Vec2) Div(w Vec2) Vec2 {
	return Vec2{X: v.X / w.X, Y: v.Y / w.Y}
}

// Scale returns the vector scaled by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Min returns the component-wise minimum.
func (v Vec2) Min(w Vec2) Vec2 {
	return Vec2{X: math.Min(v.X, w.X), Y: math.Min(v.Y, w.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{X: math.Max(v.X, w.X), Y: math.Max(v.Y, w.Y)}
}

// Round rounds both components to the nearest integer, half away from zero.
func (v Vec2) Round() Vec2 {
	return Vec2{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// Extend appends a z component.
func (v Vec2) Extend(z float64) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float64) bool {
	return math.Abs(v.X-w.X) <= epsilon && math.Abs(v.Y-w.Y) <= epsilon
}

// Vec3 is a 3D vector. Map coordinates use Z as a layer or depth hint.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the component-wise product of two vectors.
func (v Vec3) Mul(w Vec3) Vec3 {
	return Vec3{X: v.X * w.X, Y: v.Y * w.Y, Z: v.Z * w.Z}
}

// XY drops the z component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec3) Approx(w Vec3, epsilon float64) bool {
	return math.Abs(v.X-w.X) <= epsilon &&
		math.Abs(v.Y-w.Y) <= epsilon &&
		math.Abs(v.Z-w.Z) <= epsilon
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// UVec2 is an unsigned 2D size or index, in tiles.
type UVec2 struct {
	X, Y uint32
}

// U2 is a convenience function to create a UVec2.
func U2(x, y uint32) UVec2 {
	return UVec2{X: x, Y: y}
}

// Float converts to a Vec2.
func (u UVec2) Float() Vec2 {
	return Vec2{X: float64(u.X), Y: float64(u.Y)}
}

// Area returns X*Y as an int.
func (u UVec2) Area() int {
	return int(u.X) * int(u.Y)
}
