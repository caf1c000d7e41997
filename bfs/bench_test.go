package bfs_test

import (
	"testing"

	"github.com/katalvlaran/voxnav/bfs"
	"github.com/katalvlaran/voxnav/voxel"
)

// BenchmarkBFS_Chain measures BFS on a linear chain of N keys.
func BenchmarkBFS_Chain(b *testing.B) {
	const N = 10000
	ks := row(N)
	g := chain(ks)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, ks[0])
	}
}

// BenchmarkBFS_Plane measures BFS over a 64×64 4-connected plane.
func BenchmarkBFS_Plane(b *testing.B) {
	const side = 64
	g := adjacency{}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			k := voxel.Pack(x, y, 0)
			if _, ok := g[k]; !ok {
				g[k] = nil
			}
			if x+1 < side {
				g.link(k, voxel.Pack(x+1, y, 0))
			}
			if y+1 < side {
				g.link(k, voxel.Pack(x, y+1, 0))
			}
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, voxel.Pack(0, 0, 0))
	}
}
