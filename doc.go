// Package tilemap provides the coordinate core of a GPU tile map that is
// drawn as a single quad.
//
// # Overview
//
// A tile map is a grid of uint32 tile codes plus a tile atlas texture. The
// whole grid is rendered with one quad; a shader looks up the tile under each
// fragment. tilemap keeps the CPU side of that arrangement consistent: the
// mapping between map, local and world coordinates, the bounding box of the
// projected map, and the number of tiles in the atlas.
//
// # Quick Start
//
//	import "github.com/gogpu/tilemap"
//
//	m := tilemap.New(tilemap.U2(32, 32), atlasHandle, tilemap.V2(16, 16)).
//	    WithProjection(tilemap.Isometric).
//	    BuildAndSet(func(x, y uint32) uint32 { return (x ^ y) & 3 })
//
//	// Later, once the host has loaded the atlas texture:
//	if m.AtlasLoaded(tilemap.V2(64, 64)) {
//	    // first frame with a usable atlas
//	}
//
//	x, y, ok := m.TileAt(cursorWorldPos)
//
// # Coordinate Spaces
//
//   - Map: fractional tile indices, (0, 0) is the corner of the first tile.
//     Z may carry a layer hint.
//   - Local: map coordinates after the Projection, scaled by the tile size
//     and centered around the origin by the world offset.
//   - World: local coordinates after the map's object-to-world transform.
//
// Queries from local or world space always resolve to the base tile plane
// (z = 0).
//
// # Errors
//
// Configuration mistakes are not recoverable: an atlas whose size is not a
// whole number of tiles, or tile access outside the map, panic. Loaders that
// prefer an error can validate first with CoordinateUniform.CheckAtlasSize.
//
// # Sub-packages
//
//   - gpulayout: WGSL byte layout of the uniform and tile data, bind group layout
//   - mapfile: YAML map definitions
//   - atlasimage: atlas pixel size probing from image files
//   - preview: software rendering of a map to an image via gg
//   - ebitenmap: drawing a map with ebiten
package tilemap

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
