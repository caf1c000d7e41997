package astar

import "github.com/katalvlaran/voxnav/voxel"

// nodeItem is one open-set entry. seq records insertion order and breaks
// ties between equal f scores.
type nodeItem struct {
	key voxel.Key
	g   float64
	f   float64
	seq uint64
}

// nodePQ is a min-heap of *nodeItem ordered by f, then seq. Stale entries
// are skipped when popped (lazy decrease-key).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
