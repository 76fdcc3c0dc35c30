package tilemap

import "math"

// atlasEpsilon is how far, in tiles, a computed atlas tile count may be from
// an integer before the atlas is rejected.
const atlasEpsilon = 0.01

// Padding describes spacing in the atlas texture, in pixels.
//
// These values must be exact: they are used to derive how many tiles the
// atlas holds, and a count that is not close to an integer is rejected when
// the atlas size becomes known.
type Padding struct {
	// Inner is the gap between neighboring tiles.
	Inner Vec2
	// TopLeft is the margin before the first column and row.
	TopLeft Vec2
	// BottomRight is the margin after the last column and row.
	BottomRight Vec2
}

// tileCount returns the fractional number of tiles along each axis of an
// atlas of the given pixel size.
//
// n tiles occupy topLeft + n*tile + (n-1)*inner + bottomRight pixels.
func (p Padding) tileCount(atlasSize, tileSize Vec2) Vec2 {
	usable := atlasSize.Sub(p.TopLeft).Sub(p.BottomRight).Add(p.Inner)
	return usable.Div(tileSize.Add(p.Inner))
}

// integralTileCount rounds a fractional tile count, reporting false if either
// component is not finite, out of uint32 range, or further than atlasEpsilon
// from its rounded value.
func integralTileCount(n Vec2) (UVec2, bool) {
	r := n.Round()
	// Written as !(d <= eps) so that NaN is rejected.
	if !(math.Abs(n.X-r.X) <= atlasEpsilon) || !(math.Abs(n.Y-r.Y) <= atlasEpsilon) {
		return UVec2{}, false
	}
	if r.X < 0 || r.Y < 0 || r.X > math.MaxUint32 || r.Y > math.MaxUint32 {
		return UVec2{}, false
	}
	return UVec2{X: uint32(r.X), Y: uint32(r.Y)}, true
}

// Rect is an axis-aligned pixel rectangle, Min inclusive, Max exclusive.
type Rect struct {
	Min, Max Vec2
}

// Size returns the rectangle's width and height.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// AtlasRegion returns the pixel rectangle of atlas tile index, counting
// row-major through the atlas. It reports false if the atlas size is not
// known yet or index is beyond the last tile.
func (u *CoordinateUniform) AtlasRegion(index uint32) (Rect, bool) {
	n := u.tileCount
	if n.X == 0 || n.Y == 0 {
		return Rect{}, false
	}
	if uint64(index) >= uint64(n.X)*uint64(n.Y) {
		return Rect{}, false
	}
	col := float64(index % n.X)
	row := float64(index / n.X)
	stride := u.tileSize.Add(u.padding.Inner)
	lo := u.padding.TopLeft.Add(V2(col, row).Mul(stride))
	return Rect{Min: lo, Max: lo.Add(u.tileSize)}, true
}
