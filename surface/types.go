package surface

import "github.com/katalvlaran/voxnav/voxel"

// Shape is the discrete geometric case of a Surface.
type Shape uint8

const (
	// None has no geometry; such surfaces are never stored.
	None Shape = iota
	// Wall has side or ceiling geometry but no floor.
	Wall
	// Flat is a level floor.
	Flat
	// Ramp rises one level toward its facing.
	Ramp
	// HalfFloor is the level upper half of a DoubleRamp directly below.
	HalfFloor
	// Shim is a HalfFloor whose fillers require a sloped patch.
	Shim
	// DoubleRamp is a corner ramp rising toward the corner clockwise of its facing.
	DoubleRamp
	// Wedge is a Flat floor with one raised corner.
	Wedge
	// Butterfly is a Flat floor with two opposite raised corners.
	Butterfly
	// Cuban is a Flat floor with two adjacent raised corners.
	Cuban
	// RampShimLeft is a Ramp with its low left corner raised.
	RampShimLeft
	// RampShimRight is a Ramp with its low right corner raised.
	RampShimRight
)

// ShapeCount is the number of shapes.
const ShapeCount = 12

var shapeNames = [ShapeCount]string{
	"none", "wall", "flat", "ramp", "half-floor", "shim",
	"double-ramp", "wedge", "butterfly", "cuban", "ramp-shim-left", "ramp-shim-right",
}

// String returns the shape name.
func (s Shape) String() string {
	if int(s) < ShapeCount {
		return shapeNames[s]
	}

	return "invalid"
}

// Walkable reports whether the shape carries a floor.
func (s Shape) Walkable() bool { return s > Wall && s < ShapeCount }

// IsRamp reports whether the shape is a single ramp, with or without a shim.
func (s Shape) IsRamp() bool { return s == Ramp || s == RampShimLeft || s == RampShimRight }

// Facing is a rotation of the canonical shape in 90° clockwise steps.
type Facing uint8

// Dir returns the cardinal direction the canonical north is rotated onto.
func (f Facing) Dir() voxel.Dir { return voxel.Dir(f & 3) }

// Side marks a triangular cut on one cardinal side of a cell.
type Side uint8

const (
	// SideWall is a full side (no filler triangle).
	SideWall Side = iota
	// SideLeft is a filler triangle high on the left half, looking out.
	SideLeft
	// SideRight is a filler triangle high on the right half, looking out.
	SideRight
)

// Surface describes the geometry of one air cell.
type Surface struct {
	Key    voxel.Key
	Shape  Shape
	Facing Facing
	// Faces holds the material of each neighbour, indexed by voxel.Face.
	Faces [voxel.FaceCount]voxel.Type
	// Sides holds the filler mark of each cardinal side, indexed by voxel.Dir.
	Sides [4]Side
}

// Walkable reports whether s has a floor.
func (s Surface) Walkable() bool { return s.Shape.Walkable() }

// Floor returns the floor height at world-oriented (u, v), and false where
// the shape has no floor. Inputs are clamped to [0, 1].
func (s Surface) Floor(u, v float64) (float64, bool) {
	cu, cv := canonical(s.Facing, clamp01(u), clamp01(v))

	return canonicalFloor(s.Shape, cu, cv)
}

// Elevation returns the floor height at (u, v), or 0 where undefined.
func (s Surface) Elevation(u, v float64) float64 {
	h, ok := s.Floor(u, v)
	if !ok {
		return 0
	}

	return h
}

// Center returns the floor height at the cell centre.
func (s Surface) Center() float64 { return s.Elevation(0.5, 0.5) }

// Elevation is the package-level form of Surface.Elevation.
func Elevation(s Surface, u, v float64) float64 { return s.Elevation(u, v) }

// exposedRise reports whether s shows a ramp triangle on its side, and the
// direction the triangle rises toward.
func (s Surface) exposedRise(side voxel.Dir) (voxel.Dir, bool) {
	f := s.Facing.Dir()
	switch {
	case s.Shape.IsRamp():
		if side == f.Rotate(1) || side == f.Rotate(3) {
			return f, true
		}
	case s.Shape == DoubleRamp:
		switch side {
		case f.Rotate(2):
			return f.Rotate(1), true
		case f.Rotate(3):
			return f, true
		}
	}

	return 0, false
}
