package bfs

import (
	"fmt"

	"github.com/katalvlaran/voxnav/voxel"
)

// queueItem pairs a key with its BFS depth.
type queueItem struct {
	key   voxel.Key
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph Neighborer
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, or any hook error.
func BFS(g Neighborer, start voxel.Key, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Has(start) {
		return nil, ErrStartNotFound
	}

	w := &walker{
		graph: g,
		opts:  o,
		res: &Result{
			Depth:  make(map[voxel.Key]int),
			Parent: make(map[voxel.Key]voxel.Key),
		},
	}
	w.enqueue(start, 0, start)

	return w.res, w.loop()
}

// enqueue marks k seen at depth d, records its parent (a key is its own
// parent only at the root) and appends it to the queue.
func (w *walker) enqueue(k voxel.Key, d int, parent voxel.Key) {
	w.res.Depth[k] = d
	if parent != k {
		w.res.Parent[k] = parent
	}
	w.opts.OnEnqueue(k, d)
	w.queue = append(w.queue, queueItem{key: k, depth: d})
}

// loop processes the queue until empty or a hook fails.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.key)
		if err := w.opts.OnVisit(item.key, item.depth); err != nil {
			x, y, z := item.key.Unpack()
			return fmt.Errorf("bfs: OnVisit error at %d,%d,%d: %w", x, y, z, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.graph.Neighbors(item.key) {
			if !w.opts.FilterNeighbor(item.key, nbr) {
				continue
			}
			if _, seen := w.res.Depth[nbr]; !seen {
				w.enqueue(nbr, next, item.key)
			}
		}
	}

	return nil
}
