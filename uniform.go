package tilemap

import (
	"log/slog"
	"math"
)

// CoordinateUniform holds everything needed to convert between map, local and
// world coordinates, and everything the tilemap shader reads per map.
//
// Inputs are set by the Builder and the Map setters. Derived values are
// recomputed by UpdateWorldSize and UpdateAtlasSize:
//   - world size and offset are valid after a derivation pass following any
//     change of map size, tile size or projection;
//   - atlas tile counts are valid only after the atlas size was accepted.
//
// A CoordinateUniform is not safe for concurrent mutation. Renderers that
// read it from another goroutine must synchronize with the owner.
type CoordinateUniform struct {
	// Inputs.
	mapSize   UVec2
	atlasSize Vec2
	tileSize  Vec2
	padding   Padding

	projection        Projection
	inverseProjection Mat2

	transform        Affine3
	inverseTransform Affine3

	// Derived.
	worldSize   Vec2
	worldOffset Vec2
	tileCount   UVec2
}

// newCoordinateUniform returns a uniform with the identity projection and
// identity transform and no derived state.
func newCoordinateUniform(mapSize UVec2, tileSize Vec2) CoordinateUniform {
	u := CoordinateUniform{
		mapSize:          mapSize,
		tileSize:         tileSize,
		transform:        IdentityAffine(),
		inverseTransform: IdentityAffine(),
	}
	u.SetProjection(Identity)
	return u
}

// MapSize returns the map size in tiles.
func (u *CoordinateUniform) MapSize() UVec2 { return u.mapSize }

// TileSize returns the tile size in pixels.
func (u *CoordinateUniform) TileSize() Vec2 { return u.tileSize }

// AtlasSize returns the atlas size in pixels, zero until an atlas was accepted.
func (u *CoordinateUniform) AtlasSize() Vec2 { return u.atlasSize }

// Padding returns the atlas padding.
func (u *CoordinateUniform) Padding() Padding { return u.padding }

// Projection returns the current projection.
func (u *CoordinateUniform) Projection() Projection { return u.projection }

// InverseProjection returns the inverse of the projection's xy part.
func (u *CoordinateUniform) InverseProjection() Mat2 { return u.inverseProjection }

// Transform returns the object-to-world transform.
func (u *CoordinateUniform) Transform() Affine3 { return u.transform }

// InverseTransform returns the world-to-object transform.
func (u *CoordinateUniform) InverseTransform() Affine3 { return u.inverseTransform }

// WorldSize returns the size of the projected map's bounding box.
func (u *CoordinateUniform) WorldSize() Vec2 { return u.worldSize }

// WorldOffset returns the translation that centers the projected map around
// the local origin.
func (u *CoordinateUniform) WorldOffset() Vec2 { return u.worldOffset }

// TileCount returns the number of tiles in the atlas along each axis.
func (u *CoordinateUniform) TileCount() UVec2 { return u.tileCount }

// SetTileSize changes the tile size. World size must be re-derived afterwards.
func (u *CoordinateUniform) SetTileSize(size Vec2) {
	u.tileSize = size
}

// SetPadding changes the atlas padding. It takes effect at the next accepted
// atlas size.
func (u *CoordinateUniform) SetPadding(p Padding) {
	u.padding = p
}

// SetProjection changes the projection and its cached inverse. World size
// must be re-derived afterwards.
func (u *CoordinateUniform) SetProjection(p Projection) {
	u.projection = p
	u.inverseProjection = p.Inverse()
}

// SetTransform sets the object-to-world transform and recomputes its inverse.
// A transform that cannot be inverted is kept for MapToWorld, but WorldToMap
// then returns NaN coordinates.
func (u *CoordinateUniform) SetTransform(t Affine3) {
	u.transform = t
	inv, ok := t.Inverse()
	if !ok {
		Logger().Warn("tilemap: object transform is not invertible",
			slog.Float64("det", t.Matrix.Determinant()))
		inv = nanAffine()
	}
	u.inverseTransform = inv
}

// MapToLocal converts a map position to local coordinates. The z component
// passes through the projection unscaled and can carry a layer or depth hint.
func (u *CoordinateUniform) MapToLocal(p Vec3) Vec3 {
	projected := u.projection.Matrix.MulVec(p)
	return projected.Mul(u.tileSize.Extend(1)).Add(u.worldOffset.Extend(0))
}

// MapToWorld converts a map position to world coordinates.
func (u *CoordinateUniform) MapToWorld(p Vec3) Vec3 {
	return u.transform.TransformPoint(u.MapToLocal(p))
}

// LocalToMap converts local coordinates to a fractional map position.
// The z component of local is ignored and the result always lies on the
// base tile plane, z = 0.
func (u *CoordinateUniform) LocalToMap(local Vec3) Vec3 {
	normalized := local.XY().Sub(u.worldOffset).Div(u.tileSize)
	return u.inverseProjection.MulVec(normalized).Extend(0)
}

// WorldToMap converts world coordinates to a fractional map position on the
// base tile plane.
func (u *CoordinateUniform) WorldToMap(world Vec3) Vec3 {
	return u.LocalToMap(u.inverseTransform.TransformPoint(world))
}

// UpdateWorldSize derives the world size and offset from the projected map
// corners.
//
// The corners are projected with the offset currently in effect, so calling
// this again on an already offset uniform shifts the result by that offset.
// RederiveWorldSize starts from a zero offset instead.
func (u *CoordinateUniform) UpdateWorldSize() {
	w := float64(u.mapSize.X)
	h := float64(u.mapSize.Y)

	low := u.MapToLocal(V3(0, 0, 0)).XY()
	high := low
	for _, corner := range []Vec2{{X: w}, {Y: h}, {X: w, Y: h}} {
		pos := u.MapToLocal(corner.Extend(0)).XY()
		low = low.Min(pos)
		high = high.Max(pos)
	}
	u.worldSize = high.Sub(low)

	// The projection keeps map (0, 0) at local (0, 0). Shift so that the
	// bounding box is centered on the local origin instead.
	u.worldOffset = V2(-0.5, -0.5).Mul(u.worldSize).Sub(low)

	Logger().Debug("tilemap: world size derived",
		slog.Any("map_size", u.mapSize),
		slog.Any("world_size", u.worldSize),
		slog.Any("world_offset", u.worldOffset))
}

// RederiveWorldSize resets the world offset and runs UpdateWorldSize, giving
// the same result as the first derivation on a fresh uniform.
func (u *CoordinateUniform) RederiveWorldSize() {
	u.worldOffset = Vec2{}
	u.UpdateWorldSize()
}

// CheckAtlasSize validates an atlas pixel size against the tile size and
// padding without changing the uniform. It returns the integral tile counts
// or an *AtlasGeometryError.
func (u *CoordinateUniform) CheckAtlasSize(size Vec2) (UVec2, error) {
	if !validTileSize(u.tileSize) {
		return UVec2{}, ErrInvalidTileSize
	}
	n := u.padding.tileCount(size, u.tileSize)
	counts, ok := integralTileCount(n)
	if !ok {
		return UVec2{}, &AtlasGeometryError{
			AtlasSize: size,
			TileSize:  u.tileSize,
			Padding:   u.padding,
			TileCount: n,
		}
	}
	return counts, nil
}

func validTileSize(s Vec2) bool {
	return s.X > 0 && s.Y > 0 && !math.IsInf(s.X, 0) && !math.IsInf(s.Y, 0)
}

// UpdateAtlasSize accepts the pixel size of a loaded atlas and recomputes the
// atlas tile counts. It returns false without changes if size equals the
// current atlas size, and true when the new size was stored, meaning the map
// just became ready to render.
//
// It panics with an *AtlasGeometryError if the atlas does not hold a whole
// number of tiles (within 0.01 tiles) in either direction. Nothing is stored
// in that case.
func (u *CoordinateUniform) UpdateAtlasSize(size Vec2) bool {
	if u.atlasSize == size {
		return false
	}
	counts, err := u.CheckAtlasSize(size)
	if err != nil {
		Logger().Error("tilemap: rejecting atlas", slog.String("err", err.Error()))
		panic(err)
	}
	u.atlasSize = size
	u.tileCount = counts

	Logger().Debug("tilemap: atlas tile counts derived",
		slog.Any("atlas_size", size),
		slog.Any("tile_count", counts))
	return true
}
