package tilemap

import "log/slog"

// Map is a tile map rendered as a single quad.
//
// It owns the tile grid and the coordinate uniform. The atlas is an opaque
// handle supplied by the host; the map only learns the atlas pixel size
// through AtlasLoaded. Use a Builder to create a Map.
type Map[T UserData] struct {
	uniform  CoordinateUniform
	grid     *Grid
	userData T
	atlas    any

	ready bool
	dirty bool
	gen   uint64
}

// Uniform returns the coordinate uniform. Renderers read it to fill the GPU
// uniform buffer; mutate it only through the Map.
func (m *Map[T]) Uniform() *CoordinateUniform {
	return &m.uniform
}

// Size returns the map size in tiles.
func (m *Map[T]) Size() UVec2 {
	return m.uniform.mapSize
}

// Atlas returns the opaque atlas handle.
func (m *Map[T]) Atlas() any {
	return m.atlas
}

// UserData returns the custom shader data.
func (m *Map[T]) UserData() T {
	return m.userData
}

// SetUserData replaces the custom shader data.
func (m *Map[T]) SetUserData(d T) {
	m.userData = d
	m.touch()
}

// Tiles returns the row-major tile codes for upload. Callers must not modify
// the slice; use Edit instead.
func (m *Map[T]) Tiles() []uint32 {
	return m.grid.Cells()
}

// At returns the tile code at (x, y). It panics outside the map.
func (m *Map[T]) At(x, y uint32) uint32 {
	return m.grid.At(x, y)
}

// Edit runs fn with exclusive access to the tiles and marks the map dirty.
func (m *Map[T]) Edit(fn func(ix *Indexer)) {
	fn(&Indexer{grid: m.grid, size: m.uniform.mapSize})
	m.touch()
}

func (m *Map[T]) touch() {
	m.dirty = true
	m.gen++
}

// Dirty reports whether tiles, user data or geometry changed since the last
// ClearDirty.
//
// The flag serves a single consumer. Hosts that feed several consumers, such
// as a gpulayout.Stager and an ebitenmap.Renderer, should compare Generation
// values instead.
func (m *Map[T]) Dirty() bool {
	return m.dirty
}

// ClearDirty is called by the renderer after uploading the map. It does not
// affect Generation.
func (m *Map[T]) ClearDirty() {
	m.dirty = false
}

// Generation is a counter that increases with every change that sets the
// dirty flag. Each consumer remembers the value it last saw.
func (m *Map[T]) Generation() uint64 {
	return m.gen
}

// Ready reports whether an atlas size has been accepted, so the atlas can be
// sampled correctly.
func (m *Map[T]) Ready() bool {
	return m.ready
}

// AtlasLoaded is called by the host once the atlas texture is loaded or its
// size changed. It returns true if this call made the map ready to render,
// that is, the map was not ready before and is now.
//
// It panics with an *AtlasGeometryError if the atlas size does not match the
// tile size and padding.
func (m *Map[T]) AtlasLoaded(size Vec2) bool {
	if !m.uniform.UpdateAtlasSize(size) {
		return false
	}
	m.touch()
	wasReady := m.ready
	m.ready = true
	if !wasReady {
		Logger().Info("tilemap: map ready",
			slog.Any("map_size", m.uniform.mapSize),
			slog.Any("atlas_tiles", m.uniform.tileCount))
	}
	return !wasReady
}

// SetTransform sets the object-to-world transform, as resolved by the host's
// scene graph.
func (m *Map[T]) SetTransform(t Affine3) {
	m.uniform.SetTransform(t)
	m.touch()
}

// SetProjection changes the projection and re-derives the world size.
func (m *Map[T]) SetProjection(p Projection) {
	m.uniform.SetProjection(p)
	m.uniform.RederiveWorldSize()
	m.touch()
}

// SetTileSize changes the tile size and re-derives the world size. If an
// atlas is already known, it is validated against the new tile size first.
//
// It panics with ErrInvalidTileSize if a component of size is not a positive
// finite number, and with an *AtlasGeometryError if the known atlas does not
// hold a whole number of tiles of the new size. The map is unchanged in both
// cases.
func (m *Map[T]) SetTileSize(size Vec2) {
	next := m.uniform
	next.SetTileSize(size)
	if !validTileSize(size) {
		panic(ErrInvalidTileSize)
	}
	if atlas := next.atlasSize; !atlas.IsZero() {
		counts, err := next.CheckAtlasSize(atlas)
		if err != nil {
			Logger().Error("tilemap: rejecting tile size", slog.String("err", err.Error()))
			panic(err)
		}
		next.tileCount = counts
	}
	next.RederiveWorldSize()
	m.uniform = next
	m.touch()
}

// MapToLocal converts a map position to local coordinates.
func (m *Map[T]) MapToLocal(p Vec3) Vec3 { return m.uniform.MapToLocal(p) }

// MapToWorld converts a map position to world coordinates.
func (m *Map[T]) MapToWorld(p Vec3) Vec3 { return m.uniform.MapToWorld(p) }

// LocalToMap converts local coordinates to a map position with z = 0.
func (m *Map[T]) LocalToMap(p Vec3) Vec3 { return m.uniform.LocalToMap(p) }

// WorldToMap converts world coordinates to a map position with z = 0.
func (m *Map[T]) WorldToMap(p Vec3) Vec3 { return m.uniform.WorldToMap(p) }

// TileAt returns the tile containing a world position. It reports false if
// the position is outside the map.
func (m *Map[T]) TileAt(world Vec3) (x, y uint32, ok bool) {
	p := m.uniform.WorldToMap(world)
	size := m.uniform.mapSize.Float()
	if !p.IsFinite() || p.X < 0 || p.Y < 0 || p.X >= size.X || p.Y >= size.Y {
		return 0, 0, false
	}
	return uint32(p.X), uint32(p.Y), true
}

// TileCorners returns the world positions of the corners of tile (x, y), in
// the order (x, y), (x+1, y), (x+1, y+1), (x, y+1).
func (m *Map[T]) TileCorners(x, y uint32) [4]Vec3 {
	fx, fy := float64(x), float64(y)
	return [4]Vec3{
		m.uniform.MapToWorld(V3(fx, fy, 0)),
		m.uniform.MapToWorld(V3(fx+1, fy, 0)),
		m.uniform.MapToWorld(V3(fx+1, fy+1, 0)),
		m.uniform.MapToWorld(V3(fx, fy+1, 0)),
	}
}

// SpriteCorners returns the world positions of the atlas sprite drawn for
// tile (x, y), in the order top-left, top-right, bottom-right, bottom-left of
// the sprite. The sprite is a tile-sized rectangle in local space whose
// projection anchor sits at the tile's projected map position.
func (m *Map[T]) SpriteCorners(x, y uint32) [4]Vec3 {
	u := &m.uniform
	p := u.MapToLocal(V3(float64(x), float64(y), 0))
	tl := p.XY().Sub(u.projection.Anchor.Mul(u.tileSize))
	w, h := u.tileSize.X, u.tileSize.Y
	return [4]Vec3{
		u.transform.TransformPoint(tl.Extend(p.Z)),
		u.transform.TransformPoint(tl.Add(V2(w, 0)).Extend(p.Z)),
		u.transform.TransformPoint(tl.Add(V2(w, h)).Extend(p.Z)),
		u.transform.TransformPoint(tl.Add(V2(0, h)).Extend(p.Z)),
	}
}
