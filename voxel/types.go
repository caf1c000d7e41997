package voxel

import "errors"

// Sentinel errors for grid construction, key parsing and snapshot decoding.
var (
	// ErrDimensions indicates a grid size that is non-positive or exceeds the
	// packed coordinate range.
	ErrDimensions = errors.New("voxel: grid dimensions out of range")

	// ErrBadSnapshot indicates a snapshot stream with a wrong header or a
	// column layout that does not match its declared dimensions.
	ErrBadSnapshot = errors.New("voxel: malformed snapshot")

	// ErrKeySyntax indicates text that is not of the form "x,y,z".
	ErrKeySyntax = errors.New("voxel: malformed key")

	// ErrOutOfRange indicates a coordinate outside [MinCoord, MaxCoord].
	ErrOutOfRange = errors.New("voxel: coordinate out of range")
)

// Type is the material held by one cell.
type Type uint8

const (
	// Air is empty space; every navigable surface lives in an Air cell.
	Air Type = iota
	// Rock is bedrock terrain.
	Rock
	// Dirt is soil terrain.
	Dirt
	// Grass is topsoil terrain.
	Grass
	// Sand is loose terrain.
	Sand
	// Base is a placed, non-terrain material (walls, foundations). It is
	// solid but never produces ramps.
	Base
	// Lava is a solid floor hazard. Ramps are never generated against it.
	Lava
)

var typeNames = [...]string{"air", "rock", "dirt", "grass", "sand", "base", "lava"}

// String returns the lower-case material name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}

	return "unknown"
}

// Solid reports whether t blocks movement and can carry a floor.
func (t Type) Solid() bool { return t != Air }

// Rampable reports whether a ramp may be shaped against t.
func (t Type) Rampable() bool { return t.Solid() && t != Base && t != Lava }

// Dir is a cardinal direction, numbered clockwise from north.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// Cardinals lists the four directions in clockwise order.
var Cardinals = [4]Dir{North, East, South, West}

var dirOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var dirNames = [4]string{"north", "east", "south", "west"}

// Offset returns the (dx, dy) step for d.
func (d Dir) Offset() (dx, dy int) {
	o := dirOffsets[d&3]

	return o[0], o[1]
}

// Rotate returns d turned n quarter turns clockwise. n may be negative.
func (d Dir) Rotate(n int) Dir { return Dir((int(d) + n%4 + 4) & 3) }

// Opposite returns the direction facing away from d.
func (d Dir) Opposite() Dir { return d.Rotate(2) }

// String returns the direction name.
func (d Dir) String() string { return dirNames[d&3] }

// Corner is a horizontal cell corner. Corner c lies between Dir(c) and
// Dir(c+1): NorthEast sits between North and East.
type Corner uint8

const (
	NorthEast Corner = iota
	SouthEast
	SouthWest
	NorthWest
)

// Corners lists the four corners in clockwise order.
var Corners = [4]Corner{NorthEast, SouthEast, SouthWest, NorthWest}

var cornerNames = [4]string{"north-east", "south-east", "south-west", "north-west"}

// Offset returns the (dx, dy) step to the diagonal neighbour at c.
func (c Corner) Offset() (dx, dy int) {
	ax, ay := Dir(c).Offset()
	bx, by := Dir(c).Rotate(1).Offset()

	return ax + bx, ay + by
}

// Rotate returns c turned n quarter turns clockwise.
func (c Corner) Rotate(n int) Corner { return Corner(Dir(c).Rotate(n)) }

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner { return c.Rotate(2) }

// Flanks returns the two cardinal directions adjacent to c.
func (c Corner) Flanks() (Dir, Dir) { return Dir(c), Dir(c).Rotate(1) }

// String returns the corner name.
func (c Corner) String() string { return cornerNames[c&3] }

// Face indexes the six neighbours of a cell. The first four match Dir.
type Face uint8

const (
	FaceNorth Face = iota
	FaceEast
	FaceSouth
	FaceWest
	FaceAbove
	FaceBelow
)

// FaceCount is the number of faces of a cell.
const FaceCount = 6

var faceOffsets = [FaceCount][3]int{
	{0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1},
}

// Offset returns the (dx, dy, dz) step for f.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]

	return o[0], o[1], o[2]
}

// FaceOf returns the side face for a cardinal direction.
func FaceOf(d Dir) Face { return Face(d & 3) }
