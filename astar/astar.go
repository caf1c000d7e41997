package astar

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/voxnav/navgraph"
	"github.com/katalvlaran/voxnav/voxel"
	"github.com/katalvlaran/voxnav/water"
)

// Finder runs hazard-aware A* searches over a navigation graph. It holds no
// per-search state and never mutates the graph.
type Finder struct {
	graph Source
	water water.Layer
	opts  Options
	scale float64
}

// NewFinder returns a Finder over graph with water hazards read from layer
// (nil means dry). Returns ErrNilGraph or ErrOptionViolation.
func NewFinder(graph Source, layer water.Layer, opts ...Option) (*Finder, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	o, err := Configure(opts...)
	if err != nil {
		return nil, err
	}
	if layer == nil {
		layer = water.Dry{}
	}
	w := graph.Weights()
	if o.Weights != nil {
		w = *o.Weights
	}

	return &Finder{
		graph: graph,
		water: layer,
		opts:  o,
		scale: heuristicScale(w, o.CellSize),
	}, nil
}

// Options returns the effective configuration.
func (f *Finder) Options() Options { return f.opts }

// heuristicScale is the cheapest cost per world unit of Manhattan distance
// any single exit can achieve. Scaling the distance by it keeps the
// heuristic admissible and consistent.
func heuristicScale(w navgraph.Weights, cell [3]float64) float64 {
	cx, cy, cz := cell[0], cell[1], cell[2]
	straight := math.Min(w.Flat, math.Min(w.Slope, w.Slope*w.SlopeEffort))
	diagonal := math.Min(w.Diagonal, math.Min(w.DiagonalSlope, w.DiagonalSlope*w.SlopeEffort))

	scale := straight / (math.Max(cx, cy) + cz)
	scale = math.Min(scale, diagonal/(cx+cy+cz))
	scale = math.Min(scale, w.Center/cz)

	return scale
}

// heuristic estimates the remaining cost from k to goal.
func (f *Finder) heuristic(k, goal voxel.Key) float64 {
	x0, y0, z0 := k.Unpack()
	x1, y1, z1 := goal.Unpack()
	d := f.opts.CellSize[0]*math.Abs(float64(x1-x0)) +
		f.opts.CellSize[1]*math.Abs(float64(y1-y0)) +
		f.opts.CellSize[2]*math.Abs(float64(z1-z0))

	return f.scale * d
}

// FindPath returns the cheapest route from start to end, both included. The
// result is empty when either endpoint has no waypoint, the goal is
// unreachable, or the node budget runs out.
func (f *Finder) FindPath(start, end voxel.Key) []voxel.Key {
	return f.Search(start, end).Path
}

// HasExit reports whether from currently has an exit to to.
func (f *Finder) HasExit(from, to voxel.Key) bool {
	w, ok := f.graph.Waypoint(from)
	if !ok || to == voxel.NoKey {
		return false
	}
	for _, t := range w.Exits {
		if t == to {
			return true
		}
	}

	return false
}

// Search is FindPath with the route cost and the number of expanded nodes.
//
// Preconditions (checked in order, each failing with an empty Result):
//   - start has a waypoint;
//   - end has a waypoint.
//
// A start equal to end yields a one-cell path at cost 0.
//
// Complexity: O(E log E) for E exits relaxed, bounded by the node budget.
func (f *Finder) Search(start, end voxel.Key) Result {
	// 1) Validate both endpoints against the graph.
	if _, ok := f.graph.Waypoint(start); !ok {
		return Result{}
	}
	if _, ok := f.graph.Waypoint(end); !ok {
		return Result{}
	}
	// 2) Trivial route.
	if start == end {
		return Result{Path: []voxel.Key{start}}
	}

	// 3) Seed the queue with the start at g = 0 and run.
	r := &runner{
		f:      f,
		goal:   end,
		g:      map[voxel.Key]float64{start: 0},
		parent: make(map[voxel.Key]voxel.Key),
		closed: make(voxel.KeySet),
	}
	r.push(start, 0)

	return r.run()
}

// runner holds the mutable state of one search.
type runner struct {
	f        *Finder
	goal     voxel.Key
	g        map[voxel.Key]float64
	parent   map[voxel.Key]voxel.Key
	closed   voxel.KeySet
	pq       nodePQ
	seq      uint64
	expanded int
}

func (r *runner) push(k voxel.Key, g float64) {
	heap.Push(&r.pq, &nodeItem{key: k, g: g, f: g + r.f.heuristic(k, r.goal), seq: r.seq})
	r.seq++
}

// run pops nodes in (f, seq) order until the goal settles, the queue drains
// or the node budget is spent.
func (r *runner) run() Result {
	budget := r.f.opts.NodeBudget
	for r.pq.Len() > 0 {
		// 1) Pop the lowest f; skip entries made stale by a cheaper push.
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.closed.Has(item.key) || item.g > r.g[item.key] {
			continue
		}
		// 2) The heuristic is consistent, so the goal's g is final here.
		if item.key == r.goal {
			return Result{Path: r.path(), Cost: item.g, Expanded: r.expanded}
		}
		// 3) Budget is checked before expanding, never mid-relaxation.
		if budget > 0 && r.expanded >= budget {
			return Result{Expanded: r.expanded}
		}
		// 4) Settle and expand.
		r.closed.Add(item.key)
		r.expanded++
		r.relax(item)
	}

	return Result{Expanded: r.expanded}
}

// relax pushes every exit of item that survives the water hazard rule and
// improves on the best known cost of its target.
func (r *runner) relax(item *nodeItem) {
	w, ok := r.f.graph.Waypoint(item.key)
	if !ok {
		return
	}
	o := r.f.opts
	for _, s := range navgraph.Slots {
		to, cost, ok := w.Exit(s)
		if !ok || r.closed.Has(to) {
			continue
		}
		depth := r.f.water.Depth(to)
		if depth > o.MaxDepth {
			continue
		}
		if depth > o.DeepDepth {
			cost *= o.DeepPenalty
		}
		g := item.g + cost
		if best, seen := r.g[to]; seen && g >= best {
			continue
		}
		r.g[to] = g
		r.parent[to] = item.key
		r.push(to, g)
	}
}

// path follows parent links back from the goal.
func (r *runner) path() []voxel.Key {
	out := []voxel.Key{r.goal}
	for k := r.goal; ; {
		p, ok := r.parent[k]
		if !ok {
			break
		}
		out = append(out, p)
		k = p
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}
