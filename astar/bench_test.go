package astar_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/voxnav/astar"
	"github.com/katalvlaran/voxnav/voxel"
)

// BenchmarkFinder_Search measures corner-to-corner searches on a 64×64
// random terrain.
func BenchmarkFinder_Search(b *testing.B) {
	g := build(b, terrain(b, rand.New(rand.NewSource(3)), 64, 64, 12))
	f, err := astar.NewFinder(g, nil)
	if err != nil {
		b.Fatal(err)
	}
	keys := g.Keys()
	pairs := make([][2]voxel.Key, 16)
	rng := rand.New(rand.NewSource(4))
	for i := range pairs {
		pairs[i] = [2]voxel.Key{keys[rng.Intn(len(keys))], keys[rng.Intn(len(keys))]}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		_ = f.Search(p[0], p[1])
	}
}
