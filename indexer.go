package tilemap

// Indexer is a short-lived mutable view of a map's tiles.
//
// It is handed to initializer callbacks by the Builder and to Map.Edit.
// The callback owns the map exclusively while it runs; the Indexer must not
// be kept after the callback returns.
type Indexer struct {
	grid *Grid
	size UVec2
}

// Size returns the map size in tiles.
func (ix *Indexer) Size() UVec2 {
	return ix.size
}

// Set writes the tile code at (x, y).
// x must be less than the map width and y less than the map height; a
// coordinate outside the map panics.
func (ix *Indexer) Set(x, y, code uint32) {
	ix.grid.Set(x, y, code)
}

// At returns the tile code at (x, y). It panics outside the map.
func (ix *Indexer) At(x, y uint32) uint32 {
	return ix.grid.At(x, y)
}
