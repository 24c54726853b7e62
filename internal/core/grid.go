package core

// Grid stores a 2D grid of faction ids in row-major order.
type Grid struct {
	W, H int
	data []uint32
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]uint32, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint32 { return g.data }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Coords is the inverse of Index.
func (g *Grid) Coords(idx int) (int, int) { return idx % g.W, idx / g.W }

// At returns the value stored at (x, y).
func (g *Grid) At(x, y int) uint32 { return g.data[y*g.W+x] }

// CopyFrom copies src into g. Both grids must share dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.data, src.data)
}

// Fill sets every cell to v.
func (g *Grid) Fill(v uint32) {
	for i := range g.data {
		g.data[i] = v
	}
}
