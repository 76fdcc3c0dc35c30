// Package ebitenmap draws a tilemap.Map with Ebitengine.
//
// Tiles are batched into DrawTriangles calls. With an atlas every tile is
// drawn as its atlas sprite (see Map.SpriteCorners); without one, tiles are
// filled with palette colors over their projected quads. Vertex positions are
// rebuilt only when the map is dirty.
package ebitenmap

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxTilesPerDraw is limited by the uint16 index buffer: 65535 / 4.
const maxTilesPerDraw = 16383

// DefaultPalette is used for untextured maps.
var DefaultPalette = []color.RGBA{
	{0x3b, 0x42, 0x52, 0xff},
	{0x88, 0xc0, 0xd0, 0xff},
	{0xa3, 0xbe, 0x8c, 0xff},
	{0xeb, 0xcb, 0x8b, 0xff},
	{0xd0, 0x87, 0x70, 0xff},
	{0xb4, 0x8e, 0xad, 0xff},
}

// Renderer draws one map. It follows the map's Generation and leaves the
// dirty flag to other consumers.
type Renderer[T tilemap.UserData] struct {
	m       *tilemap.Map[T]
	atlas   *ebiten.Image
	white   *ebiten.Image
	palette []color.RGBA

	world    []ebiten.Vertex // 4 vertices per tile in world space
	vertices []ebiten.Vertex // world vertices moved by the view
	indices  []uint16
	gen      uint64
}

// NewRenderer creates a renderer for m. atlas may be nil, in which case the
// palette is used and the map need not be ready.
func NewRenderer[T tilemap.UserData](m *tilemap.Map[T], atlas *ebiten.Image) *Renderer[T] {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	r := &Renderer[T]{
		m:       m,
		atlas:   atlas,
		white:   white,
		palette: DefaultPalette,
		indices: quadIndices(min(m.Size().Area(), maxTilesPerDraw)),
	}
	r.rebuild()
	return r
}

// SetPalette replaces the colors used for untextured tiles.
func (r *Renderer[T]) SetPalette(p []color.RGBA) {
	if len(p) == 0 {
		p = DefaultPalette
	}
	r.palette = p
	r.rebuild()
}

// rebuild recomputes world-space vertices from the map.
func (r *Renderer[T]) rebuild() {
	textured := r.atlas != nil && r.m.Ready()
	r.world = appendVertices(r.world[:0], r.m, r.palette, textured)
	if cap(r.vertices) < len(r.world) {
		r.vertices = make([]ebiten.Vertex, len(r.world))
	}
	r.vertices = r.vertices[:len(r.world)]
	r.gen = r.m.Generation()

	tilemap.Logger().Debug("ebitenmap: vertices rebuilt",
		slog.Int("tiles", len(r.world)/4),
		slog.Bool("textured", textured))
}

// quadIndices returns two triangles per quad for n quads of 4 vertices each.
func quadIndices(n int) []uint16 {
	indices := make([]uint16, n*6)
	for i := range n {
		base := uint16(i * 4)
		off := i * 6
		indices[off+0] = base + 0
		indices[off+1] = base + 1
		indices[off+2] = base + 2
		indices[off+3] = base + 0
		indices[off+4] = base + 2
		indices[off+5] = base + 3
	}
	return indices
}

// appendVertices appends 4 world-space vertices per tile of m, row by row.
// Textured tiles are atlas sprites; otherwise tiles are palette-colored quads.
// A textured map whose atlas holds no tiles yields no vertices.
func appendVertices[T tilemap.UserData](dst []ebiten.Vertex, m *tilemap.Map[T], palette []color.RGBA, textured bool) []ebiten.Vertex {
	size := m.Size()
	u := m.Uniform()
	n := u.TileCount()
	if textured && (n.X == 0 || n.Y == 0) {
		return dst
	}
	for y := range size.Y {
		for x := range size.X {
			code := m.At(x, y)
			if textured {
				region, _ := u.AtlasRegion(code % (n.X * n.Y))
				dst = appendSprite(dst, region, m.SpriteCorners(x, y))
			} else {
				dst = appendQuad(dst, palette[int(code)%len(palette)], m.TileCorners(x, y))
			}
		}
	}
	return dst
}

// appendSprite maps the corners, in SpriteCorners order, to the region's
// top-left, top-right, bottom-right and bottom-left texels.
func appendSprite(dst []ebiten.Vertex, region tilemap.Rect, corners [4]tilemap.Vec3) []ebiten.Vertex {
	uv := [4]tilemap.Vec2{
		region.Min,
		{X: region.Max.X, Y: region.Min.Y},
		region.Max,
		{X: region.Min.X, Y: region.Max.Y},
	}
	for i, c := range corners {
		dst = append(dst, ebiten.Vertex{
			DstX: float32(c.X), DstY: float32(c.Y),
			SrcX: float32(uv[i].X), SrcY: float32(uv[i].Y),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	return dst
}

func appendQuad(dst []ebiten.Vertex, col color.RGBA, corners [4]tilemap.Vec3) []ebiten.Vertex {
	cr := float32(col.R) / 0xff
	cg := float32(col.G) / 0xff
	cb := float32(col.B) / 0xff
	ca := float32(col.A) / 0xff
	for _, c := range corners {
		dst = append(dst, ebiten.Vertex{
			DstX: float32(c.X), DstY: float32(c.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	return dst
}

// applyView moves world vertices into dst through view. dst must be at
// least as long as world.
func applyView(dst, world []ebiten.Vertex, view ebiten.GeoM) {
	for i, v := range world {
		x, y := view.Apply(float64(v.DstX), float64(v.DstY))
		v.DstX, v.DstY = float32(x), float32(y)
		dst[i] = v
	}
}

// batch is a range of tiles drawn by one DrawTriangles call.
type batch struct {
	start, n int
}

// batches splits tiles into runs that fit the uint16 index buffer.
func batches(tiles int) []batch {
	var out []batch
	for start := 0; start < tiles; start += maxTilesPerDraw {
		out = append(out, batch{start: start, n: min(tiles-start, maxTilesPerDraw)})
	}
	return out
}

// Draw draws the map onto dst with view mapping world to screen coordinates.
// Textured maps are skipped until the map is ready.
func (r *Renderer[T]) Draw(dst *ebiten.Image, view ebiten.GeoM) {
	if r.m.Generation() != r.gen {
		r.rebuild()
	}
	src := r.white
	if r.atlas != nil {
		if !r.m.Ready() {
			return
		}
		src = r.atlas
	}

	applyView(r.vertices, r.world, view)
	for _, b := range batches(len(r.vertices) / 4) {
		dst.DrawTriangles(
			r.vertices[b.start*4:(b.start+b.n)*4],
			r.indices[:b.n*6],
			src,
			&ebiten.DrawTrianglesOptions{},
		)
	}
}

// Pick converts a screen position to the tile under it, inverting view.
func (r *Renderer[T]) Pick(view ebiten.GeoM, sx, sy int) (x, y uint32, ok bool) {
	return Pick(r.m, view, sx, sy)
}

// Pick converts a screen position to the tile of m under it, where view maps
// world to screen coordinates. It reports false if view cannot be inverted or
// the position is outside the map.
func Pick[T tilemap.UserData](m *tilemap.Map[T], view ebiten.GeoM, sx, sy int) (x, y uint32, ok bool) {
	if !view.IsInvertible() {
		return 0, 0, false
	}
	view.Invert()
	wx, wy := view.Apply(float64(sx), float64(sy))
	return m.TileAt(tilemap.V3(wx, wy, 0))
}
