package terrain_test

import (
	"testing"

	"github.com/katalvlaran/voxnav/terrain"
)

// BenchmarkGenerate measures building the default 64×64×32 world.
func BenchmarkGenerate(b *testing.B) {
	p := terrain.DefaultParams()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := terrain.Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}
