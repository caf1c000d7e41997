package navgraph

import (
	"github.com/katalvlaran/voxnav/surface"
	"github.com/katalvlaran/voxnav/voxel"
)

// Surfaces is the read-only classifier view the Graph depends on.
type Surfaces interface {
	Get(k voxel.Key) (surface.Surface, bool)
	Keys() []voxel.Key
}

// Graph owns the Waypoint map derived from a surface source. Only Rebuild
// and RebuildAll mutate it; both swap results in after all exits are culled.
type Graph struct {
	src       Surfaces
	opts      Options
	waypoints map[voxel.Key]Waypoint
}

// NewGraph returns an empty Graph over src. Call RebuildAll to populate it.
// Returns ErrNilSurfaces or ErrOptionViolation.
func NewGraph(src Surfaces, opts ...Option) (*Graph, error) {
	if src == nil {
		return nil, ErrNilSurfaces
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Graph{
		src:       src,
		opts:      o,
		waypoints: make(map[voxel.Key]Waypoint),
	}, nil
}

// Weights returns the exit costs the Graph was built with.
func (g *Graph) Weights() Weights { return g.opts.Weights }

// CornerPolicy returns the diagonal filter in use.
func (g *Graph) CornerPolicy() CornerPolicy { return g.opts.CornerPolicy }

// RebuildAll recomputes every waypoint from the current surfaces.
func (g *Graph) RebuildAll() voxel.KeySet {
	all := voxel.NewKeySet(g.src.Keys()...)
	for k := range g.waypoints {
		all.Add(k)
	}
	keys := all.Sorted()

	return g.rebuild(keys, keys)
}

// Rebuild recomputes the waypoints that can depend on the surfaces in
// changed and returns the keys whose Waypoint was added, removed or whose
// exits changed.
//
// Raw exits of a cell depend on surfaces one cell away, and culled exits on
// raw exits one cell further, so raw exits are recomputed within one cell of
// changed and culling is redone within two.
func (g *Graph) Rebuild(changed voxel.KeySet) voxel.KeySet {
	near := make(voxel.KeySet)
	far := make(voxel.KeySet)
	for k := range changed {
		near.Merge(k.Box(-1, 1, -1, 1, -1, 1, voxel.InRange))
		far.Merge(k.Box(-2, 2, -2, 2, -2, 2, voxel.InRange))
	}

	return g.rebuild(near.Sorted(), far.Sorted())
}

// rebuild recomputes raw exits for fresh, culls every key in recull (a
// superset of fresh) and merges the result into the waypoint map.
//
// Preconditions:
//   - fresh and recull are sorted, and every key of fresh is in recull.
//   - Raw exits stored outside fresh are still valid.
//
// Complexity: O(|recull| × SlotCount) time, O(|recull|) memory.
func (g *Graph) rebuild(fresh, recull []voxel.Key) voxel.KeySet {
	// 1) Raw exits of fresh keys go to a scratch map; the stored map is untouched.
	scratch := make(map[voxel.Key]exitSet, len(fresh))
	inFresh := make(voxel.KeySet, len(fresh))
	for _, k := range fresh {
		inFresh.Add(k)
		if e, ok := g.exitsOf(k); ok {
			scratch[k] = e
		}
	}
	rawOf := func(k voxel.Key) (exitSet, bool) {
		if inFresh.Has(k) {
			e, ok := scratch[k]
			return e, ok
		}
		w, ok := g.waypoints[k]
		return w.raw, ok
	}

	// 2) Cull: keep exit s only when the target's raw exit back is this key.
	next := make(map[voxel.Key]Waypoint, len(recull))
	for _, k := range recull {
		e, ok := rawOf(k)
		if !ok {
			continue
		}
		w := Waypoint{Key: k, raw: e}
		for _, s := range Slots {
			w.Exits[s] = voxel.NoKey
			t := e.keys[s]
			if t == voxel.NoKey {
				continue
			}
			if back, ok := rawOf(t); ok && back.keys[s.Opposite()] == k {
				w.Exits[s], w.Weights[s] = t, e.weights[s]
			}
		}
		next[k] = w
	}

	// 3) Merge and record keys whose public exits or weights moved.
	changed := make(voxel.KeySet)
	for _, k := range recull {
		w, ok := next[k]
		prev, had := g.waypoints[k]
		switch {
		case ok:
			if !had || prev.Exits != w.Exits || prev.Weights != w.Weights {
				changed.Add(k)
			}
			g.waypoints[k] = w
		case had:
			delete(g.waypoints, k)
			changed.Add(k)
		}
	}

	return changed
}

// Waypoint returns the node stored for k.
func (g *Graph) Waypoint(k voxel.Key) (Waypoint, bool) {
	w, ok := g.waypoints[k]

	return w, ok
}

// Has reports whether k has a Waypoint.
func (g *Graph) Has(k voxel.Key) bool {
	_, ok := g.waypoints[k]

	return ok
}

// Len returns the number of waypoints.
func (g *Graph) Len() int { return len(g.waypoints) }

// Keys returns every waypoint key in ascending order.
func (g *Graph) Keys() []voxel.Key {
	s := make(voxel.KeySet, len(g.waypoints))
	for k := range g.waypoints {
		s.Add(k)
	}

	return s.Sorted()
}

// Neighbors returns the exit targets of k in slot order.
func (g *Graph) Neighbors(k voxel.Key) []voxel.Key {
	w, ok := g.waypoints[k]
	if !ok {
		return nil
	}
	out := make([]voxel.Key, 0, SlotCount)
	for _, t := range w.Exits {
		if t != voxel.NoKey {
			out = append(out, t)
		}
	}

	return out
}

// HasExit reports whether from currently lists to as one of its exits.
// Movement code uses it to notice a route invalidated by an edit.
func (g *Graph) HasExit(from, to voxel.Key) bool {
	w, ok := g.waypoints[from]
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

// Edges returns the total number of directed exits.
func (g *Graph) Edges() int {
	n := 0
	for _, w := range g.waypoints {
		n += w.Degree()
	}

	return n
}
