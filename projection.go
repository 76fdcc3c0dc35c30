package tilemap

import "fmt"

// Projection determines how map coordinates relate to local coordinates.
//
// Matrix maps a (fractional) map index to local space normalized to the tile
// dimensions: 1.0 means a full tile width or height. Anchor is the point
// inside a tile that sits at the tile's nominal position, (0, 0) is the
// top-left corner and (1, 1) the bottom-right one.
//
// A Projection is a value; presets are never mutated.
type Projection struct {
	Matrix Mat3
	Anchor Vec2
}

// Identity renders every tile as-is in a rectangular grid with map y and
// local y pointing the same way.
var Identity = Projection{
	Matrix: Identity3(),
}

// Rectangular is a rectangular grid with y flipped, so that row 0 is at the
// top when local y points up.
var Rectangular = Projection{
	Matrix: Mat3{
		A: 1, B: 0, C: 0,
		D: 0, E: -1, F: 0,
		G: 0, H: 0, I: 1,
	},
}

// Isometric is a 2:1 diamond layout. Moving one tile along map x goes half a
// tile right and half a tile down, moving along map y goes half a tile left
// and half a tile down.
var Isometric = Projection{
	Matrix: Mat3{
		A: 0.5, B: -0.5, C: 0,
		D: 0.5, E: 0.5, F: 0,
		G: 0, H: 0, I: 1,
	},
	Anchor: Vec2{X: 0.5, Y: 0},
}

// NewProjection creates a custom projection.
// It returns ErrSingularProjection if the xy part of m is not invertible,
// since world to map queries need the inverse.
func NewProjection(m Mat3, anchor Vec2) (Projection, error) {
	if _, ok := m.Linear2().Inverse(); !ok {
		return Projection{}, fmt.Errorf("%w: det=%g", ErrSingularProjection, m.Linear2().Determinant())
	}
	return Projection{Matrix: m, Anchor: anchor}, nil
}

// MustProjection is like NewProjection but panics on error.
func MustProjection(m Mat3, anchor Vec2) Projection {
	p, err := NewProjection(m, anchor)
	if err != nil {
		panic(err)
	}
	return p
}

// ProjectionByName returns a preset by name: "identity", "rectangular" or
// "isometric".
func ProjectionByName(name string) (Projection, bool) {
	switch name {
	case "identity", "":
		return Identity, true
	case "rectangular":
		return Rectangular, true
	case "isometric", "iso":
		return Isometric, true
	}
	return Projection{}, false
}

// Inverse returns the inverse of the xy part of the projection.
// For a singular matrix it returns the zero matrix, so inverse queries
// collapse instead of failing loudly; use NewProjection to catch this early.
func (p Projection) Inverse() Mat2 {
	inv, _ := p.Matrix.Linear2().Inverse()
	return inv
}

// AxisAligned reports whether the projection keeps tile edges parallel to
// the local axes.
func (p Projection) AxisAligned() bool {
	return p.Matrix.B == 0 && p.Matrix.D == 0
}
