package tilemap

import (
	"errors"
	"fmt"
)

var (
	// ErrAtlasGeometry indicates that the atlas pixel size, after removing
	// padding, is not an integral number of tiles.
	ErrAtlasGeometry = errors.New("tilemap: atlas size is not a whole number of tiles")

	// ErrSingularProjection is returned by NewProjection when the xy part of
	// the matrix cannot be inverted.
	ErrSingularProjection = errors.New("tilemap: projection matrix is not invertible")

	// ErrInvalidTileSize is returned when a tile size component is not a
	// positive finite number.
	ErrInvalidTileSize = errors.New("tilemap: tile size must be positive")
)

// AtlasGeometryError describes an atlas whose pixel dimensions do not fit
// the declared tile size and padding.
type AtlasGeometryError struct {
	AtlasSize Vec2
	TileSize  Vec2
	Padding   Padding

	// TileCount is the fractional number of tiles computed for each axis.
	TileCount Vec2
}

func (e *AtlasGeometryError) Error() string {
	return fmt.Sprintf(
		"%v: atlas %vx%v px with tile size %vx%v px (padding inner %v, top-left %v, bottom-right %v) gives %.4f x %.4f tiles",
		ErrAtlasGeometry,
		e.AtlasSize.X, e.AtlasSize.Y,
		e.TileSize.X, e.TileSize.Y,
		e.Padding.Inner, e.Padding.TopLeft, e.Padding.BottomRight,
		e.TileCount.X, e.TileCount.Y,
	)
}

func (e *AtlasGeometryError) Unwrap() error {
	return ErrAtlasGeometry
}
