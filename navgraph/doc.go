// Package navgraph derives the navigation graph of a classified voxel world:
// one Waypoint per walkable surface, each with up to ten weighted exits.
//
// Exit slots
//
//	N, E, S, W        cardinal steps (same level, or one level up/down over a ramp)
//	Up, Down          the stacked double-ramp / half-floor pair
//	NE, SE, SW, NW    diagonal steps
//
// Openings
//
// Where a floor meets a cell side (midpoint) or a corner (corner point) it
// has a height class: bottom (0), middle (0.5) or top (1). A step is a
// candidate exit when the neighbour's facing boundary fits:
//
//	bottom ↔ bottom   same level
//	middle ↔ middle   same level
//	top    → bottom   one level up
//	bottom → top      one level down
//
// Weights
//
// Costs come from Weights and the rise dh between the two cell-centre floors:
// level steps cost Flat (Diagonal), downhill steps Slope (DiagonalSlope) and
// uphill steps Slope×SlopeEffort (DiagonalSlope×SlopeEffort). Up and Down
// cost Center.
//
// Diagonals are filtered by a CornerPolicy against the cardinal exits that
// flank them, then every exit is culled unless the target lists the source in
// the opposite slot. The kept exits are therefore always reciprocal.
//
// Rebuild is incremental: given the keys whose surfaces changed it touches
// only the two-cell neighbourhood whose exits can depend on them, and
// returns the keys whose Waypoint changed.
//
// A Graph is not safe for concurrent mutation. Readers may share it between
// rebuilds.
package navgraph
