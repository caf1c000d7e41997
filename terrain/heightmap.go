package terrain

import (
	"fmt"

	"github.com/katalvlaran/voxnav/voxel"
)

// conn4 lists the orthogonal neighbour offsets in N, E, S, W order.
var conn4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Heightmap is an immutable grid of column heights.
type Heightmap struct {
	Width, Depth int
	heights      [][]int
}

// NewHeightmap constructs a Heightmap from a non-empty, rectangular 2D slice
// of non-negative heights. It deep-copies the input.
// Returns ErrEmptyHeights, ErrNonRectangular or ErrHeightRange.
func NewHeightmap(values [][]int) (*Heightmap, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyHeights
	}
	d, w := len(values), len(values[0])
	cells := make([][]int, d)
	for y, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: %d at %d,%d", ErrHeightRange, v, x, y)
			}
		}
		cells[y] = make([]int, w)
		copy(cells[y], row)
	}

	return &Heightmap{Width: w, Depth: d, heights: cells}, nil
}

// HeightsOf reads the heightmap back from a grid: each column's height is one
// above its highest solid cell. Overhangs are ignored.
func HeightsOf(g *voxel.Grid) *Heightmap {
	cells := make([][]int, g.Depth)
	for y := range cells {
		cells[y] = make([]int, g.Width)
		for x := range cells[y] {
			cells[y][x] = g.TopSolid(x, y) + 1
		}
	}

	return &Heightmap{Width: g.Width, Depth: g.Depth, heights: cells}
}

// InBounds reports whether (x, y) lies within the map.
func (h *Heightmap) InBounds(x, y int) bool {
	return x >= 0 && x < h.Width && y >= 0 && y < h.Depth
}

// At returns the height of column (x, y), or 0 outside the map.
func (h *Heightmap) At(x, y int) int {
	if !h.InBounds(x, y) {
		return 0
	}

	return h.heights[y][x]
}

// Max returns the tallest column height.
func (h *Heightmap) Max() int {
	m := 0
	for _, row := range h.heights {
		for _, v := range row {
			m = max(m, v)
		}
	}

	return m
}

func (h *Heightmap) index(x, y int) int { return y*h.Width + x }

// Coordinate converts a row-major index back to (x, y).
func (h *Heightmap) Coordinate(idx int) (x, y int) {
	return idx % h.Width, idx / h.Width
}

// Basins finds the 4-connected regions of columns whose height is below
// level. Each basin lists row-major indices in BFS order; basins appear in
// row-major order of their first cell.
//
// Time: O(W·D). Memory: O(W·D).
func (h *Heightmap) Basins(level float64) [][]int {
	seen := make([]bool, h.Width*h.Depth)
	wet := func(x, y int) bool { return float64(h.heights[y][x]) < level }

	var basins [][]int
	for y := 0; y < h.Depth; y++ {
		for x := 0; x < h.Width; x++ {
			i0 := h.index(x, y)
			if seen[i0] || !wet(x, y) {
				continue
			}
			queue := []int{i0}
			seen[i0] = true
			for qi := 0; qi < len(queue); qi++ {
				ux, uy := h.Coordinate(queue[qi])
				for _, d := range conn4 {
					vx, vy := ux+d[0], uy+d[1]
					if !h.InBounds(vx, vy) || !wet(vx, vy) {
						continue
					}
					vi := h.index(vx, vy)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			basins = append(basins, queue)
		}
	}

	return basins
}
