// Package terrain builds voxel worlds from heightmaps: hand-written ones for
// fixtures and Perlin-noise ones for larger scenes.
//
// What:
//
//   - Heightmap wraps a rectangular [][]int of column heights (solid cells
//     per column, row index = y).
//   - PerlinHeights samples github.com/aquilax/go-perlin into a Heightmap.
//   - Build layers each column: base bedrock at z=0, rock, dirt topsoil and
//     a grass (or, at the shore, sand) top.
//   - Basins finds 4-connected regions of columns lying below a water level;
//     Flood turns them into a water.Table.
//
// Complexity:
//
//   - Build:          O(W×D×H) writes, run-length merged per column.
//   - Basins / Flood: O(W×D), Memory: O(W×D).
//
// Errors:
//
//   - ErrEmptyHeights, ErrNonRectangular: malformed input heights.
//   - ErrHeightRange: a column would be negative, empty or leave no air above.
//   - ErrBadParams: invalid Params.
package terrain
