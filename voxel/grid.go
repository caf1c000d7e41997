package voxel

import "fmt"

// Run is a vertical stretch of Len cells of the same Type.
type Run struct {
	Type Type
	Len  uint32
}

// column is an (x, y) stack of runs covering z = 0 … Height-1 bottom-up.
type column []Run

// Change describes one effective write to a Grid.
type Change struct {
	Key Key
	Old Type
	New Type
}

// Grid is a bounded voxel world stored as run-length encoded columns.
// Width spans x, Depth spans y and Height spans z; valid coordinates start at 0.
type Grid struct {
	Width, Depth, Height int
	columns              []column
}

// NewGrid returns an all-Air grid of the given size.
// Returns ErrDimensions if any size is non-positive or exceeds MaxCoord+1.
// Complexity: O(W×D) time and memory.
func NewGrid(width, depth, height int) (*Grid, error) {
	if width <= 0 || depth <= 0 || height <= 0 ||
		width > MaxCoord+1 || depth > MaxCoord+1 || height > MaxCoord+1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrDimensions, width, depth, height)
	}
	g := &Grid{
		Width:   width,
		Depth:   depth,
		Height:  height,
		columns: make([]column, width*depth),
	}
	for i := range g.columns {
		g.columns[i] = column{{Type: Air, Len: uint32(height)}}
	}

	return g, nil
}

// Bounds returns the grid size.
func (g *Grid) Bounds() (width, depth, height int) { return g.Width, g.Depth, g.Height }

// IsValid reports whether (x, y, z) lies inside the grid.
// Complexity: O(1).
func (g *Grid) IsValid(x, y, z int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Depth && z >= 0 && z < g.Height
}

// index maps (x, y) to a row-major column index.
func (g *Grid) index(x, y int) int { return y*g.Width + x }

// Get returns the material at (x, y, z), or Air outside the grid.
// Complexity: O(runs in the column).
func (g *Grid) Get(x, y, z int) Type {
	if !g.IsValid(x, y, z) {
		return Air
	}

	return g.columns[g.index(x, y)].at(z)
}

// GetKey is Get addressed by a packed key.
func (g *Grid) GetKey(k Key) Type {
	x, y, z := k.Unpack()

	return g.Get(x, y, z)
}

// Set writes t at (x, y, z). ok is false when the coordinate is outside the
// grid or the cell already holds t; no Change is produced in either case.
func (g *Grid) Set(x, y, z int, t Type) (Change, bool) {
	if !g.IsValid(x, y, z) {
		return Change{}, false
	}
	i := g.index(x, y)
	old := g.columns[i].at(z)
	if old == t {
		return Change{}, false
	}
	g.columns[i] = g.columns[i].with(z, t)

	return Change{Key: Pack(x, y, z), Old: old, New: t}, true
}

// Fill writes t into every valid cell of the inclusive box and returns the
// effective changes in x-fastest, then y, then z order.
func (g *Grid) Fill(x0, y0, z0, x1, y1, z1 int, t Type) []Change {
	var out []Change
	for z := z0; z <= z1; z++ {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if c, ok := g.Set(x, y, z, t); ok {
					out = append(out, c)
				}
			}
		}
	}

	return out
}

// adjacentOffsets lists the six face neighbours followed by the twelve
// edge-diagonal neighbours, in a fixed order.
var adjacentOffsets = [18][3]int{
	{0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1},
	{1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {-1, -1, 0},
	{0, -1, 1}, {1, 0, 1}, {0, 1, 1}, {-1, 0, 1},
	{0, -1, -1}, {1, 0, -1}, {0, 1, -1}, {-1, 0, -1},
}

// ForAdjacent calls fn for every valid face and edge-diagonal neighbour of
// (x, y, z), faces first.
func (g *Grid) ForAdjacent(x, y, z int, fn func(nx, ny, nz int, t Type)) {
	for _, o := range adjacentOffsets {
		nx, ny, nz := x+o[0], y+o[1], z+o[2]
		if !g.IsValid(nx, ny, nz) {
			continue
		}
		fn(nx, ny, nz, g.Get(nx, ny, nz))
	}
}

// Neighborhood returns the keys of the valid cells in the box
// [x-rx, x+rx] × [y-ry, y+ry] × [z-down, z+up] around k.
func (g *Grid) Neighborhood(k Key, rx, ry, down, up int) KeySet {
	return k.Box(-rx, rx, -ry, ry, -down, up, g.IsValid)
}

// All returns the keys of every cell in the grid.
func (g *Grid) All() KeySet {
	s := make(KeySet, g.Width*g.Depth*g.Height)
	for z := 0; z < g.Height; z++ {
		for y := 0; y < g.Depth; y++ {
			for x := 0; x < g.Width; x++ {
				s.Add(Pack(x, y, z))
			}
		}
	}

	return s
}

// Runs returns the total number of runs, a measure of storage size.
func (g *Grid) Runs() int {
	n := 0
	for _, c := range g.columns {
		n += len(c)
	}

	return n
}

// TopSolid returns the highest solid z in column (x, y), or -1 if the column
// is empty or outside the grid.
func (g *Grid) TopSolid(x, y int) int {
	if !g.IsValid(x, y, 0) {
		return -1
	}
	top, z := -1, 0
	for _, r := range g.columns[g.index(x, y)] {
		if r.Type.Solid() {
			top = z + int(r.Len) - 1
		}
		z += int(r.Len)
	}

	return top
}

func (c column) at(z int) Type {
	for _, r := range c {
		if z < int(r.Len) {
			return r.Type
		}
		z -= int(r.Len)
	}

	return Air
}

// with returns a copy of c holding t at z, with equal neighbours merged.
func (c column) with(z int, t Type) column {
	out := make(column, 0, len(c)+2)
	base := 0
	for _, r := range c {
		end := base + int(r.Len)
		if z < base || z >= end {
			out = out.push(r)
			base = end
			continue
		}
		if below := z - base; below > 0 {
			out = out.push(Run{Type: r.Type, Len: uint32(below)})
		}
		out = out.push(Run{Type: t, Len: 1})
		if above := end - z - 1; above > 0 {
			out = out.push(Run{Type: r.Type, Len: uint32(above)})
		}
		base = end
	}

	return out
}

// push appends r, merging it into the last run when the types match.
func (c column) push(r Run) column {
	if n := len(c); n > 0 && c[n-1].Type == r.Type {
		c[n-1].Len += r.Len
		return c
	}

	return append(c, r)
}
