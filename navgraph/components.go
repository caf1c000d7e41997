package navgraph

import (
	"github.com/katalvlaran/voxnav/bfs"
	"github.com/katalvlaran/voxnav/voxel"
)

// Components partitions the waypoints into islands connected by exits.
// Islands are ordered by their smallest key and each island is sorted.
// Exits are reciprocal, so reachability is symmetric.
func (g *Graph) Components() [][]voxel.Key {
	seen := make(voxel.KeySet, len(g.waypoints))
	var out [][]voxel.Key
	for _, k := range g.Keys() {
		if seen.Has(k) {
			continue
		}
		res, err := bfs.BFS(g, k)
		if err != nil {
			// k comes from Keys, so BFS cannot miss it.
			continue
		}
		island := voxel.NewKeySet(res.Order...)
		seen.Merge(island)
		out = append(out, island.Sorted())
	}

	return out
}
