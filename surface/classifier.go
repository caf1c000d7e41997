package surface

import (
	"fmt"

	"github.com/katalvlaran/voxnav/voxel"
)

// Grid is the read-only voxel view the Classifier depends on.
// Get must return voxel.Air for coordinates outside the grid.
type Grid interface {
	Get(x, y, z int) voxel.Type
	IsValid(x, y, z int) bool
	Bounds() (width, depth, height int)
}

// Classifier owns the Surface map of one grid. Only Rebuild mutates it.
type Classifier struct {
	grid     Grid
	surfaces map[voxel.Key]Surface
}

// NewClassifier returns an empty Classifier over grid. Call RebuildAll (or
// Rebuild with the grid's keys) to populate it.
func NewClassifier(grid Grid) *Classifier {
	return &Classifier{
		grid:     grid,
		surfaces: make(map[voxel.Key]Surface),
	}
}

// Get returns the stored Surface for k.
func (c *Classifier) Get(k voxel.Key) (Surface, bool) {
	s, ok := c.surfaces[k]

	return s, ok
}

// Elevation returns the floor height of the surface at k, or 0 when there is
// no surface or no floor at (u, v).
func (c *Classifier) Elevation(k voxel.Key, u, v float64) float64 {
	return c.surfaces[k].Elevation(u, v)
}

// Len returns the number of stored surfaces.
func (c *Classifier) Len() int { return len(c.surfaces) }

// Keys returns the stored keys in ascending order.
func (c *Classifier) Keys() []voxel.Key {
	s := make(voxel.KeySet, len(c.surfaces))
	for k := range c.surfaces {
		s.Add(k)
	}

	return s.Sorted()
}

// Region returns the cells whose Surface can change when the voxel at k
// changes: two cells around horizontally, one below and two above, clipped
// to the grid.
func (c *Classifier) Region(k voxel.Key) voxel.KeySet {
	return k.Box(-2, 2, -2, 2, -1, 2, c.grid.IsValid)
}

// RebuildAll classifies every cell of the grid.
func (c *Classifier) RebuildAll() voxel.KeySet {
	w, d, h := c.grid.Bounds()
	all := make(voxel.KeySet, w*d*h)
	for z := 0; z < h; z++ {
		for y := 0; y < d; y++ {
			for x := 0; x < w; x++ {
				all.Add(voxel.Pack(x, y, z))
			}
		}
	}

	return c.Rebuild(all)
}

// Rebuild recomputes the surfaces of exactly the cells in region and returns
// the keys whose Surface was added, removed or changed. Cells outside region
// are read from the stored map.
//
// Complexity: O(|region|) time and memory.
func (c *Classifier) Rebuild(region voxel.KeySet) voxel.KeySet {
	keys := region.Sorted()

	faces := make(map[voxel.Key]Surface, len(keys))
	for _, k := range keys {
		if s, ok := c.detect(k); ok {
			faces[k] = s
		}
	}
	view := func(k voxel.Key) (Surface, bool) {
		if region.Has(k) {
			s, ok := faces[k]
			return s, ok
		}
		s, ok := c.surfaces[k]
		return s, ok
	}

	filled := make(map[voxel.Key]Surface, len(faces))
	for _, k := range keys {
		if s, ok := faces[k]; ok {
			filled[k] = inherit(s, view)
		}
	}

	changed := make(voxel.KeySet)
	for _, k := range keys {
		next, ok := filled[k]
		if ok {
			next = compose(next)
		}
		ok = ok && next.Shape != None
		prev, had := c.surfaces[k]
		switch {
		case ok && (!had || prev != next):
			c.surfaces[k] = next
			changed.Add(k)
		case !ok && had:
			delete(c.surfaces, k)
			changed.Add(k)
		}
	}

	if debugAssertions {
		for _, k := range keys {
			c.checkPairing(k)
		}
	}

	return changed
}

// detect runs the first pass for one cell: neighbour faces, wall/floor and
// ramp detection. ok is false for solid or out-of-grid cells.
func (c *Classifier) detect(k voxel.Key) (Surface, bool) {
	x, y, z := k.Unpack()
	if !c.grid.IsValid(x, y, z) || c.grid.Get(x, y, z).Solid() {
		return Surface{}, false
	}

	s := Surface{Key: k}
	touching := false
	for f := voxel.Face(0); f < voxel.FaceCount; f++ {
		dx, dy, dz := f.Offset()
		t := c.grid.Get(x+dx, y+dy, z+dz)
		s.Faces[f] = t
		touching = touching || t.Solid()
	}
	if !touching {
		return s, true
	}

	s.Shape = Wall
	floor := s.Faces[voxel.FaceBelow]
	if !floor.Solid() {
		return s, true
	}
	s.Shape = Flat
	if !floor.Rampable() {
		return s, true
	}

	var edges [4]bool
	n := 0
	for _, d := range voxel.Cardinals {
		if !c.rampEdge(s, x, y, z, d) {
			continue
		}
		edges[d] = true
		n++
	}

	switch n {
	case 1:
		for _, d := range voxel.Cardinals {
			if edges[d] {
				s.Shape, s.Facing = Ramp, Facing(d)
			}
		}
	case 2:
		for _, d := range voxel.Cardinals {
			if !edges[d] || !edges[d.Rotate(1)] {
				continue
			}
			cx, cy := voxel.Corner(d.Rotate(2)).Offset()
			if !c.grid.Get(x+cx, y+cy, z-1).Solid() {
				s.Shape, s.Facing = DoubleRamp, Facing(d)
			}
		}
	}

	return s, true
}

// rampEdge reports whether side d of the floor cell at (x, y, z) rises into a
// ramp: solid terrain on d, open space opposite, and headroom above d.
func (c *Classifier) rampEdge(s Surface, x, y, z int, d voxel.Dir) bool {
	if !s.Faces[voxel.FaceOf(d)].Rampable() || s.Faces[voxel.FaceOf(d.Opposite())].Solid() {
		return false
	}
	dx, dy := d.Offset()

	return !c.grid.Get(x+dx, y+dy, z+1).Solid()
}

// inherit runs the second pass for one cell: half-floors above double ramps
// and filler triangles beside exposed ramp sides.
func inherit(s Surface, view func(voxel.Key) (Surface, bool)) Surface {
	s.Sides = [4]Side{}
	if below, ok := view(s.Key.Offset(0, 0, -1)); ok && below.Shape == DoubleRamp && s.Shape <= Wall {
		s.Shape, s.Facing = HalfFloor, below.Facing
	}

	for _, d := range voxel.Cardinals {
		if s.Faces[voxel.FaceOf(d)].Solid() {
			continue
		}
		n, ok := view(s.Key.Step(d, 0))
		if !ok {
			continue
		}
		rise, ok := n.exposedRise(d.Opposite())
		if !ok {
			continue
		}
		if own, ok := s.exposedRise(d); ok && own == rise {
			continue
		}
		if rise == d.Rotate(1) {
			s.Sides[d] = SideRight
		} else {
			s.Sides[d] = SideLeft
		}
		if s.Shape == None {
			s.Shape = Wall
		}
	}

	return s
}

// compose runs the third pass for one cell: fusing filler triangles into
// composite shapes. A corner is raised when a filler on either flanking side
// is high at it. Flat cells need at least two fillers to fuse; ramps fuse a
// single filler at one of their low corners.
func compose(s Surface) Surface {
	var raised []voxel.Corner
	fillers := 0
	for _, c := range voxel.Corners {
		a, b := c.Flanks()
		if s.Sides[a] == SideRight || s.Sides[b] == SideLeft {
			raised = append(raised, c)
		}
		if s.Sides[a] != SideWall {
			fillers++
		}
	}

	switch s.Shape {
	case Flat:
		if fillers < 2 {
			break
		}
		switch len(raised) {
		case 1:
			s.Shape, s.Facing = Wedge, Facing(raised[0])
		case 2:
			first, second := raised[0], raised[1]
			switch second - first {
			case 2:
				s.Shape, s.Facing = Butterfly, Facing(first)
			case 1:
				s.Shape, s.Facing = Cuban, Facing(second)
			case 3:
				s.Shape, s.Facing = Cuban, Facing(first)
			}
		}
	case Ramp:
		f := s.Facing.Dir()
		left := hasCorner(raised, voxel.Corner(f.Rotate(2)))
		right := hasCorner(raised, voxel.Corner(f.Rotate(1)))
		switch {
		case left && !right:
			s.Shape = RampShimLeft
		case right && !left:
			s.Shape = RampShimRight
		}
	case HalfFloor:
		f := s.Facing.Dir()
		if s.Sides[f] == SideLeft && s.Sides[f.Rotate(1)] == SideRight {
			s.Shape = Shim
		}
	}

	return s
}

func hasCorner(cs []voxel.Corner, c voxel.Corner) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}

	return false
}

// checkPairing panics when a half-floor or shim at k does not sit on a double
// ramp with the same facing. Only called in navdebug builds.
func (c *Classifier) checkPairing(k voxel.Key) {
	s, ok := c.surfaces[k]
	if !ok || (s.Shape != HalfFloor && s.Shape != Shim) {
		return
	}
	below, ok := c.surfaces[k.Offset(0, 0, -1)]
	if !ok || below.Shape != DoubleRamp || below.Facing != s.Facing {
		x, y, z := k.Unpack()
		panic(fmt.Sprintf("surface: %s at %d,%d,%d without matching double ramp below", s.Shape, x, y, z))
	}
}
