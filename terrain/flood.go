package terrain

import (
	"math"

	"github.com/katalvlaran/voxnav/voxel"
	"github.com/katalvlaran/voxnav/water"
)

// Flood fills every basin below level with still water. A cell at height z
// gets depth level-z clamped to [0, 1]; the walkable cell of a column is its
// lowest wet cell.
func Flood(h *Heightmap, level float64) *water.Table {
	t := water.NewTable()
	for _, basin := range h.Basins(level) {
		for _, idx := range basin {
			x, y := h.Coordinate(idx)
			for z := h.At(x, y); float64(z) < level; z++ {
				t.Set(voxel.Pack(x, y, z), math.Min(level-float64(z), 1))
			}
		}
	}

	return t
}
