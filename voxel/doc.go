// Package voxel provides the sparse 3D cell store that the navigation
// packages of github.com/katalvlaran/voxnav read from.
//
// Overview:
//
//   - Key packs integer (x, y, z) coordinates into one uint64 that round-trips
//     exactly and can be used as a map key.
//   - Type enumerates cell materials (Air, terrain, Base, Lava).
//   - Dir and Corner name the four cardinal directions and the four cell
//     corners, clockwise from north, used by every rotation in voxnav.
//   - Grid stores a bounded world as run-length encoded (x, y) columns and
//     reports every effective write as a Change.
//   - WriteSnapshot / ReadSnapshot persist a Grid as a zstd stream.
//
// Axes:
//
//	x grows east, y grows south, z grows up. North is therefore -y.
//
//	      N (-y)
//	  W (-x) + E (+x)
//	      S (+y)
//
// Validation:
//
//   - Coordinates outside the Grid bounds are rejected by IsValid and ignored
//     by Set; Get returns Air for them. Downstream packages never validate
//     coordinates themselves.
//
// Thread safety:
//
//   - Grid is not safe for concurrent mutation. voxnav runs as part of a
//     single-threaded deterministic simulation step.
package voxel
