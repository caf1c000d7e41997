// Package surface classifies the air cells of a voxel grid into navigable
// surface geometry.
//
// Overview:
//
//   - Every air cell that borders solid material (or that inherits a ramp
//     triangle from a neighbour) receives a Surface: a Shape, a Facing, the
//     materials of its six neighbours and a filler mark for each side.
//   - Twelve shapes exist. Each is defined once in canonical orientation
//     (Facing 0) and rotated in 90° clockwise steps.
//   - Elevation turns (Shape, Facing, u, v) into a floor height in [0, 1]. It
//     is a pure, total function: shapes without a floor report 0.
//
// Local coordinates:
//
//	u grows east, v grows north, both in [0, 1]:
//
//	  (0,1) ── N ── (1,1)
//	    │             │
//	    W    cell     E
//	    │             │
//	  (0,0) ── S ── (1,0)
//
// Canonical floors (Facing 0):
//
//	Flat           0
//	Ramp           v                  rises toward north
//	HalfFloor      0 where u+v ≥ 1    upper half of a DoubleRamp below
//	Shim           u+v-1 where u+v ≥ 1
//	DoubleRamp     min(u+v, 1)        corner ramp toward north-east
//	Wedge          max(0, u+v-1)
//	Butterfly      max(0, u+v-1, 1-u-v)
//	Cuban          max(0, u+v-1, v-u)
//	RampShimLeft   max(v, 1-u-v)
//	RampShimRight  max(v, u-v)
//
// Classification runs three ordered passes over a region. Every pass reads
// the previous pass's results for the whole region before anything is written,
// and the region is merged into the stored map only once all passes finish, so
// readers never observe a half-rebuilt map:
//
//  1. faces and ramps: neighbour materials, wall/floor, single and double ramps;
//  2. inheritance: half-floors above double ramps, filler triangles next to
//     exposed ramp sides;
//  3. composites: corners raised by filler triangles fuse into wedge,
//     butterfly, cuban and ramp-shim shapes; misoriented half-floors become shims.
//
// Build with -tags navdebug to turn invariant violations (a half-floor without
// its double ramp) into panics. Release builds stay silent.
package surface
