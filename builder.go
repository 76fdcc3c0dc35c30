package tilemap

// Builder constructs a Map. This is the preferred way of creating one.
//
// Required parameters are passed to New or Custom; everything else has a
// default and can be changed with the With methods before one of the Build
// methods finalizes the map. A Builder can be finalized only once.
//
//	m := tilemap.New(tilemap.U2(64, 64), atlas, tilemap.V2(16, 16)).
//	    WithProjection(tilemap.Isometric).
//	    BuildAndSet(func(x, y uint32) uint32 { return (x + y) % 4 })
type Builder[T UserData] struct {
	m        *Map[T]
	consumed bool
}

// New creates a builder for a map of mapSize tiles, using the given atlas
// handle and the tile size in atlas pixels.
func New(mapSize UVec2, atlas any, tileSize Vec2) *Builder[NoUserData] {
	return Custom(mapSize, atlas, tileSize, NoUserData{})
}

// Custom is like New but with custom shader data.
func Custom[T UserData](mapSize UVec2, atlas any, tileSize Vec2, userData T) *Builder[T] {
	return &Builder[T]{
		m: &Map[T]{
			uniform:  newCoordinateUniform(mapSize, tileSize),
			userData: userData,
			atlas:    atlas,
		},
	}
}

// WithUserData replaces the custom shader data.
func (b *Builder[T]) WithUserData(d T) *Builder[T] {
	b.check()
	b.m.userData = d
	return b
}

// WithPadding specifies the padding in the atlas texture: inner between the
// tiles, topLeft before the first column and row, bottomRight after the last
// column and row.
//
// The values must be exact. They are used to determine how many tiles the
// atlas holds, and a count that is not close to an integer panics when the
// atlas is loaded.
func (b *Builder[T]) WithPadding(inner, topLeft, bottomRight Vec2) *Builder[T] {
	b.check()
	b.m.uniform.SetPadding(Padding{Inner: inner, TopLeft: topLeft, BottomRight: bottomRight})
	return b
}

// WithProjection sets the projection. The default is Identity.
func (b *Builder[T]) WithProjection(p Projection) *Builder[T] {
	b.check()
	b.m.uniform.SetProjection(p)
	return b
}

// WithTransform sets the initial object-to-world transform. The default is
// the identity.
func (b *Builder[T]) WithTransform(t Affine3) *Builder[T] {
	b.check()
	b.m.uniform.SetTransform(t)
	return b
}

func (b *Builder[T]) check() {
	if b.consumed {
		panic("tilemap: Builder used after Build")
	}
}

// Build finalizes the map with every tile set to code 0.
func (b *Builder[T]) Build() *Map[T] {
	return b.BuildAndInitialize(func(*Indexer) {})
}

// BuildAndInitialize finalizes the map, calling initializer once with an
// Indexer to fill in tile codes.
func (b *Builder[T]) BuildAndInitialize(initializer func(ix *Indexer)) *Map[T] {
	b.check()
	b.consumed = true

	m := b.m
	b.m = nil

	m.grid = NewGrid(m.uniform.mapSize)
	initializer(&Indexer{grid: m.grid, size: m.uniform.mapSize})

	m.uniform.UpdateWorldSize()
	m.touch()
	return m
}

// BuildAndSet finalizes the map, setting every tile to initializer(x, y).
// Tiles are visited row by row: y in the outer loop, x in the inner one.
func (b *Builder[T]) BuildAndSet(initializer func(x, y uint32) uint32) *Map[T] {
	return b.BuildAndInitialize(func(ix *Indexer) {
		size := ix.Size()
		for y := uint32(0); y < size.Y; y++ {
			for x := uint32(0); x < size.X; x++ {
				ix.Set(x, y, initializer(x, y))
			}
		}
	})
}
