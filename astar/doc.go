// Package astar finds cheapest routes over a navgraph.Graph with A*.
//
// Costs are the exit weights of the graph, adjusted by a water layer:
//
//	depth > MaxDepth    the step is impassable
//	depth > DeepDepth   the step costs DeepPenalty times its weight
//
// The heuristic is the world-space Manhattan distance between cells (per-axis
// CellSize × coordinate delta) scaled by the cheapest cost per world unit any
// exit can achieve. It never overestimates and is consistent, so the first
// time the goal is popped its cost is optimal.
//
// The open set is a binary heap ordered by f = g + h and then by insertion
// sequence, so equal-cost alternatives resolve the same way on every run.
//
// Failure is never an error: FindPath returns an empty route for missing
// endpoints, unreachable goals and exhausted node budgets. Search exposes
// the cost and the expansion count alongside the route.
//
// Complexity:
//
//   - Time:  O(E log E) over the E exits relaxed
//   - Space: O(V) for costs, parents and the closed set
//
// Example:
//
//	f, err := astar.NewFinder(graph, water, astar.WithNodeBudget(4096))
//	if err != nil {
//	    return err
//	}
//	route := f.FindPath(from, to)
package astar
