// Package water models the fluid layer that the path finder consults for
// hazards. The simulation that moves water is external; this package only
// exposes per-cell depth.
package water

import (
	"math"

	"github.com/katalvlaran/voxnav/voxel"
)

// Layer reports the fluid volume of a cell in [0, 1].
type Layer interface {
	Depth(k voxel.Key) float64
}

// Dry is a Layer without any water.
type Dry struct{}

// Depth always returns 0.
func (Dry) Depth(voxel.Key) float64 { return 0 }

// Table is a map-backed Layer. The zero value is not usable; call NewTable.
type Table struct {
	depth map[voxel.Key]float64
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{depth: make(map[voxel.Key]float64)}
}

// Depth returns the stored depth of k, 0 if none.
func (t *Table) Depth(k voxel.Key) float64 { return t.depth[k] }

// Set stores d for k, clamped to [0, 1]. Zero and NaN remove the entry.
func (t *Table) Set(k voxel.Key, d float64) {
	switch {
	case d <= 0 || math.IsNaN(d):
		delete(t.depth, k)
		return
	case d > 1:
		d = 1
	}
	t.depth[k] = d
}

// Len returns the number of wet cells.
func (t *Table) Len() int { return len(t.depth) }
