package bfs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxnav/bfs"
	"github.com/katalvlaran/voxnav/voxel"
)

// adjacency is a minimal Neighborer for tests.
type adjacency map[voxel.Key][]voxel.Key

func (a adjacency) Has(k voxel.Key) bool { _, ok := a[k]; return ok }

func (a adjacency) Neighbors(k voxel.Key) []voxel.Key { return a[k] }

func (a adjacency) link(u, v voxel.Key) {
	a[u] = append(a[u], v)
	a[v] = append(a[v], u)
}

// row returns keys (0,0,0) .. (n-1,0,0).
func row(n int) []voxel.Key {
	ks := make([]voxel.Key, n)
	for i := range ks {
		ks[i] = voxel.Pack(i, 0, 0)
	}

	return ks
}

// chain links consecutive keys into a path graph.
func chain(ks []voxel.Key) adjacency {
	g := adjacency{}
	for _, k := range ks {
		g[k] = nil
	}
	for i := 1; i < len(ks); i++ {
		g.link(ks[i-1], ks[i])
	}

	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, voxel.Pack(0, 0, 0))
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	g := chain(row(2))
	_, err = bfs.BFS(g, voxel.Pack(9, 9, 9))
	assert.ErrorIs(t, err, bfs.ErrStartNotFound)

	_, err = bfs.BFS(g, voxel.Pack(0, 0, 0), bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_SingleVertex(t *testing.T) {
	k := voxel.Pack(1, 2, 3)
	res, err := bfs.BFS(adjacency{k: nil}, k)
	require.NoError(t, err)
	assert.Equal(t, []voxel.Key{k}, res.Order)
	assert.Equal(t, 0, res.Depth[k])
	assert.Empty(t, res.Parent)
}

func TestBFS_CycleDepths(t *testing.T) {
	ks := row(4)
	g := chain(ks)
	g.link(ks[3], ks[0])

	res, err := bfs.BFS(g, ks[0])
	require.NoError(t, err)
	require.Len(t, res.Order, 4)
	assert.Equal(t, ks[0], res.Order[0])
	assert.ElementsMatch(t, []voxel.Key{ks[1], ks[3]}, res.Order[1:3])
	assert.Equal(t, ks[2], res.Order[3])
	assert.Equal(t, 2, res.Depth[ks[2]])
}

func TestBFS_Disconnected(t *testing.T) {
	ks := row(4)
	g := adjacency{}
	for _, k := range ks {
		g[k] = nil
	}
	g.link(ks[0], ks[1])
	g.link(ks[2], ks[3])

	res, err := bfs.BFS(g, ks[0])
	require.NoError(t, err)
	assert.Equal(t, ks[:2], res.Order)
}

func TestBFS_MaxDepth(t *testing.T) {
	ks := row(5)
	g := chain(ks)

	cases := []struct {
		name  string
		depth int
		want  int
	}{
		{"One", 1, 2},
		{"Three", 3, 4},
		{"Unlimited", 0, 5},
		{"Generous", 100, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := bfs.BFS(g, ks[0], bfs.WithMaxDepth(tc.depth))
			require.NoError(t, err)
			assert.Len(t, res.Order, tc.want)
		})
	}
}

func TestBFS_FilterAndHooks(t *testing.T) {
	ks := row(4)
	g := chain(ks)

	var enqueued []voxel.Key
	res, err := bfs.BFS(g, ks[0],
		bfs.WithFilterNeighbor(func(_, nbr voxel.Key) bool { return nbr != ks[2] }),
		bfs.WithOnEnqueue(func(k voxel.Key, _ int) { enqueued = append(enqueued, k) }),
	)
	require.NoError(t, err)
	assert.Equal(t, ks[:2], res.Order)
	assert.Equal(t, ks[:2], enqueued)

	boom := errors.New("boom")
	_, err = bfs.BFS(g, ks[0], bfs.WithOnVisit(func(k voxel.Key, _ int) error {
		if k == ks[1] {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
}

func TestResult_PathTo(t *testing.T) {
	ks := row(4)
	g := chain(ks)
	res, err := bfs.BFS(g, ks[1])
	require.NoError(t, err)

	path, err := res.PathTo(ks[3])
	require.NoError(t, err)
	assert.Equal(t, ks[1:], path)

	path, err = res.PathTo(ks[1])
	require.NoError(t, err)
	assert.Equal(t, []voxel.Key{ks[1]}, path)

	_, err = res.PathTo(voxel.Pack(7, 7, 7))
	assert.ErrorIs(t, err, bfs.ErrNoPath)
}
