package navgraph_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxnav/navgraph"
	"github.com/katalvlaran/voxnav/surface"
	"github.com/katalvlaran/voxnav/voxel"
)

// newGrid returns an empty grid of the given size.
func newGrid(t testing.TB, w, d, h int) *voxel.Grid {
	t.Helper()
	g, err := voxel.NewGrid(w, d, h)
	require.NoError(t, err)

	return g
}

// floor returns a w×d grid of height h with a rock floor at z=0.
func floor(t testing.TB, w, d, h int) *voxel.Grid {
	g := newGrid(t, w, d, h)
	g.Fill(0, 0, 0, w-1, d-1, 0, voxel.Rock)

	return g
}

// build classifies grid and derives its navigation graph.
func build(t testing.TB, grid *voxel.Grid, opts ...navgraph.Option) (*surface.Classifier, *navgraph.Graph) {
	t.Helper()
	c := surface.NewClassifier(grid)
	c.RebuildAll()
	g, err := navgraph.NewGraph(c, opts...)
	require.NoError(t, err)
	g.RebuildAll()

	return c, g
}

// terrain fills a random heightmap with a few base and lava columns mixed in.
func terrain(t testing.TB, rng *rand.Rand, w, d, h int) *voxel.Grid {
	g := newGrid(t, w, d, h)
	for y := 0; y < d; y++ {
		for x := 0; x < w; x++ {
			top := 1 + rng.Intn(h-2)
			mat := voxel.Dirt
			switch rng.Intn(12) {
			case 0:
				mat = voxel.Base
			case 1:
				mat = voxel.Lava
			}
			g.Fill(x, y, 0, x, y, top-1, mat)
		}
	}

	return g
}

// snapshot copies every waypoint of g.
func snapshot(g *navgraph.Graph) map[voxel.Key]navgraph.Waypoint {
	out := make(map[voxel.Key]navgraph.Waypoint, g.Len())
	for _, k := range g.Keys() {
		w, _ := g.Waypoint(k)
		out[k] = w
	}

	return out
}

// requireReciprocal checks that every exit targets an existing waypoint that
// lists the source back in the opposite slot.
func requireReciprocal(t *testing.T, g *navgraph.Graph) {
	t.Helper()
	for _, k := range g.Keys() {
		w, _ := g.Waypoint(k)
		for _, s := range navgraph.Slots {
			to, weight, ok := w.Exit(s)
			if !ok {
				continue
			}
			back, found := g.Waypoint(to)
			require.True(t, found, "exit %s of %v targets a missing waypoint", s, k)
			require.Equal(t, k, back.Exits[s.Opposite()], "exit %s of %v is not reciprocal", s, k)
			require.Greater(t, weight, 0.0)
		}
	}
}

func TestNewGraph_Errors(t *testing.T) {
	_, err := navgraph.NewGraph(nil)
	assert.ErrorIs(t, err, navgraph.ErrNilSurfaces)

	c := surface.NewClassifier(floor(t, 2, 2, 2))
	bad := navgraph.DefaultWeights()
	bad.Slope = 0
	_, err = navgraph.NewGraph(c, navgraph.WithWeights(bad))
	assert.ErrorIs(t, err, navgraph.ErrOptionViolation)

	_, err = navgraph.NewGraph(c, navgraph.WithCornerPolicy(navgraph.CornerPolicy(9)))
	assert.ErrorIs(t, err, navgraph.ErrOptionViolation)
}

func TestParseCornerPolicy(t *testing.T) {
	for _, p := range []navgraph.CornerPolicy{navgraph.CornerRequireFlanks, navgraph.CornerSuppressFlanked} {
		got, err := navgraph.ParseCornerPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := navgraph.ParseCornerPolicy(" Suppress-Flanked ")
	require.NoError(t, err)
	assert.Equal(t, navgraph.CornerSuppressFlanked, got)

	_, err = navgraph.ParseCornerPolicy("diagonal")
	assert.ErrorIs(t, err, navgraph.ErrOptionViolation)
}

func TestDefaultOptions_CornerPolicy(t *testing.T) {
	assert.Equal(t, navgraph.CornerRequireFlanks, navgraph.DefaultOptions().CornerPolicy)

	g, err := navgraph.NewGraph(surface.NewClassifier(newGrid(t, 1, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, navgraph.CornerRequireFlanks, g.CornerPolicy())

	g, err = navgraph.NewGraph(surface.NewClassifier(newGrid(t, 1, 1, 1)),
		navgraph.WithCornerPolicy(navgraph.CornerSuppressFlanked))
	require.NoError(t, err)
	assert.Equal(t, navgraph.CornerSuppressFlanked, g.CornerPolicy())
}

func TestSlot_Opposite(t *testing.T) {
	for _, s := range navgraph.Slots {
		assert.Equal(t, s, s.Opposite().Opposite(), s.String())
		assert.NotEqual(t, s, s.Opposite(), s.String())
		assert.Equal(t, s.Diagonal(), s.Opposite().Diagonal(), s.String())
	}
	assert.Equal(t, navgraph.SouthWest, navgraph.CornerSlot(voxel.NorthEast).Opposite())
	assert.Equal(t, navgraph.West, navgraph.CardinalSlot(voxel.East).Opposite())
}

func TestGraph_FlatFloorCornerPolicies(t *testing.T) {
	w := navgraph.DefaultWeights()
	cases := []struct {
		name       string
		policy     navgraph.CornerPolicy
		center     int
		corner     int
		edge       int
		diagonalAt bool
	}{
		{"RequireFlanks", navgraph.CornerRequireFlanks, 8, 3, 5, true},
		{"SuppressFlanked", navgraph.CornerSuppressFlanked, 4, 2, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, g := build(t, floor(t, 3, 3, 2), navgraph.WithCornerPolicy(tc.policy))
			require.Equal(t, 9, g.Len())
			requireReciprocal(t, g)

			center, ok := g.Waypoint(voxel.Pack(1, 1, 1))
			require.True(t, ok)
			assert.Equal(t, tc.center, center.Degree())

			corner, _ := g.Waypoint(voxel.Pack(0, 0, 1))
			assert.Equal(t, tc.corner, corner.Degree())

			edge, _ := g.Waypoint(voxel.Pack(1, 0, 1))
			assert.Equal(t, tc.edge, edge.Degree())

			to, weight, ok := center.Exit(navgraph.NorthWest)
			assert.Equal(t, tc.diagonalAt, ok)
			if ok {
				assert.Equal(t, voxel.Pack(0, 0, 1), to)
				assert.InDelta(t, w.Diagonal, weight, 1e-12)
			}
			_, weight, ok = center.Exit(navgraph.North)
			require.True(t, ok)
			assert.InDelta(t, w.Flat, weight, 1e-12)
			assert.Len(t, g.Components(), 1)
		})
	}
}

// rampWorld is a one-cell-deep strip: a floor, a ramp rising east and an
// upper floor on a rock step.
//
//	z=2   . . .
//	z=1   . / #
//	z=0   # # #
func rampWorld(t testing.TB) *voxel.Grid {
	g := floor(t, 3, 1, 3)
	g.Set(2, 0, 1, voxel.Rock)

	return g
}

func TestGraph_RampExitsAndWeights(t *testing.T) {
	c, g := build(t, rampWorld(t))
	low, ramp, high := voxel.Pack(0, 0, 1), voxel.Pack(1, 0, 1), voxel.Pack(2, 0, 2)

	s, ok := c.Get(ramp)
	require.True(t, ok)
	require.Equal(t, surface.Ramp, s.Shape)
	require.Equal(t, surface.Facing(voxel.East), s.Facing)

	assert.ElementsMatch(t, []voxel.Key{low, ramp, high}, g.Keys())
	requireReciprocal(t, g)

	w := g.Weights()
	up := w.Slope * w.SlopeEffort
	cases := []struct {
		name     string
		from, to voxel.Key
		slot     navgraph.Slot
		weight   float64
	}{
		{"FloorOntoRamp", low, ramp, navgraph.East, up},
		{"RampOntoStep", ramp, high, navgraph.East, up},
		{"StepOntoRamp", high, ramp, navgraph.West, w.Slope},
		{"RampOntoFloor", ramp, low, navgraph.West, w.Slope},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wp, ok := g.Waypoint(tc.from)
			require.True(t, ok)
			to, weight, ok := wp.Exit(tc.slot)
			require.True(t, ok)
			assert.Equal(t, tc.to, to)
			assert.InDelta(t, tc.weight, weight, 1e-12)
			assert.True(t, g.HasExit(tc.from, tc.to))
		})
	}
	assert.False(t, g.HasExit(low, high), "no exit skips the ramp")
}

// stackWorld holds a double ramp at (1,1,1) with its half-floor above.
func stackWorld(t testing.TB) *voxel.Grid {
	g := floor(t, 3, 3, 3)
	g.Set(0, 2, 0, voxel.Air)
	g.Set(1, 0, 1, voxel.Rock)
	g.Set(2, 1, 1, voxel.Rock)

	return g
}

func TestGraph_UpDownPairs(t *testing.T) {
	c, g := build(t, stackWorld(t))
	requireReciprocal(t, g)

	pairs := []struct{ lower, upper voxel.Key }{
		{voxel.Pack(1, 1, 1), voxel.Pack(1, 1, 2)},
		{voxel.Pack(2, 0, 1), voxel.Pack(2, 0, 2)},
	}
	for _, p := range pairs {
		s, _ := c.Get(p.lower)
		require.Equal(t, surface.DoubleRamp, s.Shape)

		lower, ok := g.Waypoint(p.lower)
		require.True(t, ok)
		to, weight, ok := lower.Exit(navgraph.Up)
		require.True(t, ok)
		assert.Equal(t, p.upper, to)
		assert.InDelta(t, g.Weights().Center, weight, 1e-12)

		upper, ok := g.Waypoint(p.upper)
		require.True(t, ok)
		to, _, ok = upper.Exit(navgraph.Down)
		require.True(t, ok)
		assert.Equal(t, p.lower, to)
	}
}

func TestGraph_Components(t *testing.T) {
	g := floor(t, 5, 1, 3)
	g.Fill(2, 0, 1, 2, 0, 2, voxel.Rock)
	_, ng := build(t, g)

	got := ng.Components()
	require.Len(t, got, 2)
	assert.Equal(t, []voxel.Key{voxel.Pack(0, 0, 1), voxel.Pack(1, 0, 1)}, got[0])
	assert.Equal(t, []voxel.Key{voxel.Pack(3, 0, 1), voxel.Pack(4, 0, 1)}, got[1])
}

func TestGraph_RebuildIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, g := build(t, terrain(t, rng, 8, 8, 6))
	before := snapshot(g)

	assert.Zero(t, g.RebuildAll().Len())
	assert.Zero(t, g.Rebuild(voxel.NewKeySet(c.Keys()...)).Len())
	assert.Equal(t, before, snapshot(g))
}

func TestGraph_ReciprocalOnRandomTerrain(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, p := range []navgraph.CornerPolicy{navgraph.CornerRequireFlanks, navgraph.CornerSuppressFlanked} {
			_, g := build(t, terrain(t, rng, 10, 10, 7), navgraph.WithCornerPolicy(p))
			requireReciprocal(t, g)
		}
	}
}

func TestGraph_EditPrunesNeighbours(t *testing.T) {
	grid := floor(t, 11, 11, 3)
	c, g := build(t, grid)
	edited := voxel.Pack(5, 5, 1)
	require.True(t, g.Has(edited))
	before := snapshot(g)

	change, ok := grid.Set(5, 5, 1, voxel.Rock)
	require.True(t, ok)
	surfaces := c.Rebuild(c.Region(change.Key))
	require.True(t, surfaces.Has(edited))
	_, still := c.Get(edited)
	assert.False(t, still, "the filled cell has no surface")

	changed := g.Rebuild(surfaces)
	assert.True(t, changed.Has(edited))
	assert.False(t, g.Has(edited))
	for _, k := range g.Keys() {
		assert.False(t, g.HasExit(k, edited), "%v still lists the filled cell", k)
	}
	requireReciprocal(t, g)

	for k, w := range before {
		x, y, _ := k.Unpack()
		if abs(x-5) <= 4 && abs(y-5) <= 4 {
			continue
		}
		now, ok := g.Waypoint(k)
		require.True(t, ok)
		assert.Equal(t, w, now, "waypoint far from the edit changed")
		assert.False(t, changed.Has(k))
	}
}

func TestGraph_IncrementalMatchesFull(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grid := terrain(t, rng, 8, 8, 6)
	c, g := build(t, grid)
	mats := []voxel.Type{voxel.Air, voxel.Rock, voxel.Dirt, voxel.Base}

	for i := 0; i < 40; i++ {
		x, y, z := rng.Intn(8), rng.Intn(8), rng.Intn(6)
		change, ok := grid.Set(x, y, z, mats[rng.Intn(len(mats))])
		if !ok {
			continue
		}
		g.Rebuild(c.Rebuild(c.Region(change.Key)))

		_, fresh := build(t, grid)
		require.Equal(t, snapshot(fresh), snapshot(g), "edit %d at %d,%d,%d", i, x, y, z)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
