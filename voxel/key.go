package voxel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// axisBits is the width of each packed axis field.
	axisBits = 21
	// axisBias shifts signed coordinates into the unsigned field range.
	axisBias = 1 << (axisBits - 1)
	axisMask = 1<<axisBits - 1

	// MinCoord and MaxCoord bound every axis that Pack accepts (inclusive).
	MinCoord = -axisBias
	MaxCoord = axisBias - 1
)

// Key is a bijective packing of (x, y, z). Bit 63 is never set by Pack,
// which keeps NoKey distinct from every packed coordinate.
type Key uint64

// NoKey marks an absent key (for example an empty exit slot).
const NoKey Key = ^Key(0)

// InRange reports whether every coordinate fits the packed field width.
func InRange(x, y, z int) bool {
	return x >= MinCoord && x <= MaxCoord &&
		y >= MinCoord && y <= MaxCoord &&
		z >= MinCoord && z <= MaxCoord
}

// Pack encodes (x, y, z) into a Key. Coordinates outside [MinCoord, MaxCoord]
// are truncated to the field width; check InRange first when that matters.
func Pack(x, y, z int) Key {
	ux := uint64(x+axisBias) & axisMask
	uy := uint64(y+axisBias) & axisMask
	uz := uint64(z+axisBias) & axisMask

	return Key(ux<<(2*axisBits) | uy<<axisBits | uz)
}

// Unpack decodes k back into (x, y, z).
func (k Key) Unpack() (x, y, z int) {
	x = int(uint64(k)>>(2*axisBits)&axisMask) - axisBias
	y = int(uint64(k)>>axisBits&axisMask) - axisBias
	z = int(uint64(k)&axisMask) - axisBias

	return x, y, z
}

// Offset returns the key displaced by (dx, dy, dz).
func (k Key) Offset(dx, dy, dz int) Key {
	x, y, z := k.Unpack()

	return Pack(x+dx, y+dy, z+dz)
}

// Step returns the neighbour of k in cardinal direction d, dz levels up.
func (k Key) Step(d Dir, dz int) Key {
	dx, dy := d.Offset()

	return k.Offset(dx, dy, dz)
}

// Valid reports whether k is a packed coordinate rather than NoKey.
func (k Key) Valid() bool { return k != NoKey }

// String formats k as "x,y,z", or "none" for NoKey.
func (k Key) String() string {
	if k == NoKey {
		return "none"
	}
	x, y, z := k.Unpack()

	return strconv.Itoa(x) + "," + strconv.Itoa(y) + "," + strconv.Itoa(z)
}

// ParseKey parses the "x,y,z" form produced by String.
// Returns ErrKeySyntax for malformed input and ErrOutOfRange when a
// coordinate cannot be packed.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return NoKey, fmt.Errorf("%w: %q", ErrKeySyntax, s)
	}
	var c [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return NoKey, fmt.Errorf("%w: %q", ErrKeySyntax, s)
		}
		c[i] = n
	}
	if !InRange(c[0], c[1], c[2]) {
		return NoKey, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}

	return Pack(c[0], c[1], c[2]), nil
}

// KeySet is an unordered set of keys.
type KeySet map[Key]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}

	return s
}

// Add inserts k.
func (s KeySet) Add(k Key) { s[k] = struct{}{} }

// Has reports membership of k.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]

	return ok
}

// Len returns the number of keys.
func (s KeySet) Len() int { return len(s) }

// Merge adds every key of other into s.
func (s KeySet) Merge(other KeySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Sorted returns the keys in ascending order. Every iteration over a set that
// can influence results goes through Sorted so that runs stay reproducible.
func (s KeySet) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Box returns the keys of every cell in the box spanning
// [x+dx0, x+dx1] × [y+dy0, y+dy1] × [z+dz0, z+dz1] around k,
// keeping only cells accepted by keep (nil keeps all).
func (k Key) Box(dx0, dx1, dy0, dy1, dz0, dz1 int, keep func(x, y, z int) bool) KeySet {
	x, y, z := k.Unpack()
	s := make(KeySet, (dx1-dx0+1)*(dy1-dy0+1)*(dz1-dz0+1))
	for cz := z + dz0; cz <= z+dz1; cz++ {
		for cy := y + dy0; cy <= y+dy1; cy++ {
			for cx := x + dx0; cx <= x+dx1; cx++ {
				if keep != nil && !keep(cx, cy, cz) {
					continue
				}
				s.Add(Pack(cx, cy, cz))
			}
		}
	}

	return s
}
