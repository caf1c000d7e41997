// Package bfs provides breadth-first search over any graph of voxel keys,
// returning unweighted hop distances, parent links, and visit order.
//
// What
//
//   - Explore keys in non-decreasing hop count from a start key.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from key → hops from start
//   - Parent: map from key → its predecessor in the BFS tree
//   - Supports hooks at two stages:
//   - OnEnqueue (before a key is enqueued)
//   - OnVisit   (when visiting; may abort with an error)
//   - Allows filtering of individual edges via WithFilterNeighbor.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//
// Why
//
//   - Reference hop counts for weighted searches in tests.
//   - Connected islands of a navigation graph (navgraph.Components).
//
// Determinism
//
//	BFS enqueues neighbors in the order the Neighborer returns them. The
//	navigation graph returns exits in fixed slot order, so visit sequences
//	are reproducible run to run.
//
// Complexity (V = visited keys, E = edges among them)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g, start, bfs.WithMaxDepth(8))
//	if err != nil {
//	    // ErrGraphNil, ErrStartNotFound, ErrOptionViolation or a hook error
//	}
//	path, err := res.PathTo(goal)
//
// Errors
//
//   - ErrGraphNil         if the graph is nil.
//   - ErrStartNotFound    if the start key is not a vertex.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNoPath           from PathTo when the key was never reached.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
