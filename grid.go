package tilemap

import "fmt"

// Grid stores one uint32 tile code per cell in row-major order.
// Cell (x, y) lives at index y*Width+x. The length never changes after
// allocation.
type Grid struct {
	width  uint32
	height uint32
	cells  []uint32
}

// NewGrid allocates a zero-filled grid.
func NewGrid(size UVec2) *Grid {
	return &Grid{
		width:  size.X,
		height: size.Y,
		cells:  make([]uint32, size.Area()),
	}
}

// Size returns the grid dimensions in tiles.
func (g *Grid) Size() UVec2 {
	return UVec2{X: g.width, Y: g.height}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y uint32) bool {
	return x < g.width && y < g.height
}

// At returns the tile code at (x, y). It panics if (x, y) is out of range.
func (g *Grid) At(x, y uint32) uint32 {
	return g.cells[g.index(x, y)]
}

// Set writes the tile code at (x, y). It panics if (x, y) is out of range.
func (g *Grid) Set(x, y, code uint32) {
	g.cells[g.index(x, y)] = code
}

// Cells returns the backing slice. Renderers read it to fill the tile data
// buffer; it must not be modified outside an Indexer.
func (g *Grid) Cells() []uint32 {
	return g.cells
}

func (g *Grid) index(x, y uint32) int {
	if !g.Contains(x, y) {
		panic(fmt.Sprintf("tilemap: tile (%d, %d) out of range for map size %dx%d", x, y, g.width, g.height))
	}
	return int(y)*int(g.width) + int(x)
}
