package voxel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxnav/voxel"
)

func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name    string
		w, d, h int
	}{
		{"ZeroWidth", 0, 4, 4},
		{"NegativeDepth", 4, -1, 4},
		{"ZeroHeight", 4, 4, 0},
		{"TooTall", 1, 1, voxel.MaxCoord + 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := voxel.NewGrid(tc.w, tc.d, tc.h)
			assert.ErrorIs(t, err, voxel.ErrDimensions)
		})
	}
}

func TestGrid_SetGet(t *testing.T) {
	g, err := voxel.NewGrid(4, 3, 8)
	require.NoError(t, err)

	assert.Equal(t, voxel.Air, g.Get(1, 1, 1))
	c, ok := g.Set(1, 1, 1, voxel.Rock)
	require.True(t, ok)
	assert.Equal(t, voxel.Change{Key: voxel.Pack(1, 1, 1), Old: voxel.Air, New: voxel.Rock}, c)
	assert.Equal(t, voxel.Rock, g.Get(1, 1, 1))
	assert.Equal(t, voxel.Rock, g.GetKey(voxel.Pack(1, 1, 1)))

	// no-op and out-of-range writes produce no change
	_, ok = g.Set(1, 1, 1, voxel.Rock)
	assert.False(t, ok)
	_, ok = g.Set(4, 0, 0, voxel.Rock)
	assert.False(t, ok)
	assert.Equal(t, voxel.Air, g.Get(-1, 0, 0))
}

func TestGrid_RunsMergeAndSplit(t *testing.T) {
	g, err := voxel.NewGrid(1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Runs())

	g.Fill(0, 0, 0, 0, 0, 3, voxel.Rock)
	assert.Equal(t, 2, g.Runs(), "rock run below one air run")

	g.Set(0, 0, 2, voxel.Air)
	assert.Equal(t, 4, g.Runs(), "rock, air, rock, air")
	assert.Equal(t, voxel.Rock, g.Get(0, 0, 1))
	assert.Equal(t, voxel.Air, g.Get(0, 0, 2))
	assert.Equal(t, voxel.Rock, g.Get(0, 0, 3))

	g.Set(0, 0, 2, voxel.Rock)
	assert.Equal(t, 2, g.Runs(), "split runs merge back")
	assert.Equal(t, 3, g.TopSolid(0, 0))
}

func TestGrid_ForAdjacent(t *testing.T) {
	g, err := voxel.NewGrid(3, 3, 3)
	require.NoError(t, err)
	g.Set(1, 0, 1, voxel.Dirt)

	var n, solid int
	g.ForAdjacent(1, 1, 1, func(x, y, z int, tp voxel.Type) {
		n++
		if tp.Solid() {
			solid++
		}
	})
	assert.Equal(t, 18, n)
	assert.Equal(t, 1, solid)

	n = 0
	g.ForAdjacent(0, 0, 0, func(int, int, int, voxel.Type) { n++ })
	assert.Equal(t, 6, n, "corner cell keeps three faces and three edge diagonals")
}

func TestGrid_NeighborhoodClipped(t *testing.T) {
	g, err := voxel.NewGrid(4, 4, 4)
	require.NoError(t, err)

	assert.Equal(t, 27, g.Neighborhood(voxel.Pack(1, 1, 1), 1, 1, 1, 1).Len())
	assert.Equal(t, 8, g.Neighborhood(voxel.Pack(0, 0, 0), 1, 1, 1, 1).Len())
	assert.Equal(t, 64, g.All().Len())
}
