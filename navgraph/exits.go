package navgraph

import (
	"math"

	"github.com/katalvlaran/voxnav/surface"
	"github.com/katalvlaran/voxnav/voxel"
)

// opening is the floor height class where a surface meets a cell boundary.
type opening uint8

const (
	closed opening = iota
	bottom
	middle
	top
)

// openingAt classifies the floor value of s at the boundary point (u, v).
func openingAt(s surface.Surface, u, v float64) opening {
	h, ok := s.Floor(u, v)
	if !ok {
		return closed
	}
	switch {
	case math.Abs(h) < levelEpsilon:
		return bottom
	case math.Abs(h-1) < levelEpsilon:
		return top
	case math.Abs(h-0.5) < levelEpsilon:
		return middle
	}

	return closed
}

// boundary maps a horizontal offset to the local (u east, v north) point on
// the cell boundary: side midpoints for cardinals, corner points for diagonals.
func boundary(dx, dy int) (u, v float64) {
	return float64(dx+1) / 2, float64(1-dy) / 2
}

// exitsOf computes the exits of the surface at k before reciprocity culling.
// ok is false when k has no walkable surface.
func (g *Graph) exitsOf(k voxel.Key) (exitSet, bool) {
	s, ok := g.src.Get(k)
	if !ok || !s.Walkable() {
		return exitSet{}, false
	}
	base := float64(zOf(k)) + s.Center()

	e := emptyExits()
	for _, d := range voxel.Cardinals {
		dx, dy := d.Offset()
		if n, ok := g.match(s, dx, dy); ok {
			e.set(CardinalSlot(d), n.Key, g.opts.Weights.step(false, float64(zOf(n.Key))+n.Center()-base))
		}
	}
	for _, c := range voxel.Corners {
		a, b := c.Flanks()
		flanked := 0
		if e.has(CardinalSlot(a)) {
			flanked++
		}
		if e.has(CardinalSlot(b)) {
			flanked++
		}
		switch g.opts.CornerPolicy {
		case CornerRequireFlanks:
			if flanked < 2 {
				continue
			}
		case CornerSuppressFlanked:
			if flanked > 0 {
				continue
			}
		}
		dx, dy := c.Offset()
		if n, ok := g.match(s, dx, dy); ok {
			e.set(CornerSlot(c), n.Key, g.opts.Weights.step(true, float64(zOf(n.Key))+n.Center()-base))
		}
	}

	switch s.Shape {
	case surface.DoubleRamp:
		if n, ok := g.src.Get(k.Offset(0, 0, 1)); ok && isHalf(n.Shape) && n.Facing == s.Facing {
			e.set(Up, n.Key, g.opts.Weights.Center)
		}
	case surface.HalfFloor, surface.Shim:
		if n, ok := g.src.Get(k.Offset(0, 0, -1)); ok && n.Shape == surface.DoubleRamp && n.Facing == s.Facing {
			e.set(Down, n.Key, g.opts.Weights.Center)
		}
	}

	return e, true
}

// match finds the walkable neighbour across the boundary toward (dx, dy)
// whose opening fits the opening of s. Level openings meet at the same
// level; a top opening meets a bottom one level up and a bottom opening
// meets a top one level down.
func (g *Graph) match(s surface.Surface, dx, dy int) (surface.Surface, bool) {
	u, v := boundary(dx, dy)
	mine := openingAt(s, u, v)
	if mine == closed {
		return surface.Surface{}, false
	}
	nu, nv := boundary(-dx, -dy)

	try := func(dz int, want opening) (surface.Surface, bool) {
		n, ok := g.src.Get(s.Key.Offset(dx, dy, dz))
		if !ok || !n.Walkable() || openingAt(n, nu, nv) != want {
			return surface.Surface{}, false
		}
		return n, true
	}

	switch mine {
	case bottom:
		if n, ok := try(0, bottom); ok {
			return n, true
		}
		return try(-1, top)
	case middle:
		return try(0, middle)
	default:
		return try(1, bottom)
	}
}

func isHalf(s surface.Shape) bool { return s == surface.HalfFloor || s == surface.Shim }

func zOf(k voxel.Key) int {
	_, _, z := k.Unpack()
	return z
}
