// Package voxnav is navigation for voxel worlds: it turns a grid of material
// cubes into walkable surfaces, links them into a weighted graph and finds
// hazard-aware routes across it.
//
// Packages:
//
//	voxel/      materials, directions, packed keys, RLE grid, zstd snapshots
//	water/      per-cell fluid depth consulted for hazards
//	surface/    three-pass classification into twelve rotatable floor shapes
//	navgraph/   waypoints with up to ten reciprocal exits, incremental rebuild
//	bfs/        breadth-first traversal used for hop counts and islands
//	astar/      A* with deterministic tie-breaking, water hazards, node budget
//	terrain/    perlin heightmaps, layered grids, basin flooding
//	config/     YAML tuning for weights, hazards and world generation
//	metrics/    prometheus collectors for rebuilds and searches
//	nav/        World facade: edit, propagate, query
//	cmd/voxnav  CLI: generate or load a world, build it, route across it
//
// Quick ASCII example (side view, a ramp onto a step):
//
//	z=2        . . ▄
//	z=1        . ◢ █
//	z=0        █ █ █
//
// The ramp cell links west to the low floor and east to the top of the step.
//
//	go get github.com/katalvlaran/voxnav
package voxnav
