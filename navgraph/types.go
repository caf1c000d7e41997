package navgraph

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/voxnav/voxel"
)

// Sentinel errors returned by NewGraph and ParseCornerPolicy.
var (
	// ErrNilSurfaces indicates a nil surface source was passed to NewGraph.
	ErrNilSurfaces = errors.New("navgraph: surface source is nil")

	// ErrOptionViolation indicates an invalid Option (non-positive weight,
	// unknown corner policy).
	ErrOptionViolation = errors.New("navgraph: invalid option supplied")
)

// Slot indexes the ten exits of a Waypoint in fixed order.
type Slot uint8

const (
	North Slot = iota
	East
	South
	West
	Up
	Down
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// SlotCount is the number of exit slots per Waypoint.
const SlotCount = 10

// Slots lists every slot in exit order.
var Slots = [SlotCount]Slot{North, East, South, West, Up, Down, NorthEast, SouthEast, SouthWest, NorthWest}

var slotNames = [SlotCount]string{"N", "E", "S", "W", "up", "down", "NE", "SE", "SW", "NW"}

var slotOpposite = [SlotCount]Slot{South, West, North, East, Down, Up, SouthWest, NorthWest, NorthEast, SouthEast}

func (s Slot) String() string {
	if s < SlotCount {
		return slotNames[s]
	}

	return fmt.Sprintf("slot(%d)", uint8(s))
}

// Opposite returns the slot a reciprocal exit must occupy.
func (s Slot) Opposite() Slot { return slotOpposite[s%SlotCount] }

// Diagonal reports whether s is one of the four corner slots.
func (s Slot) Diagonal() bool { return s >= NorthEast && s < SlotCount }

// CardinalSlot maps a direction to its exit slot.
func CardinalSlot(d voxel.Dir) Slot { return Slot(d & 3) }

// CornerSlot maps a corner to its exit slot.
func CornerSlot(c voxel.Corner) Slot { return NorthEast + Slot(c&3) }

// Waypoint is the navigation node of one walkable surface. Exits holds the
// neighbour key per slot or voxel.NoKey; Weights holds the traversal cost of
// each present exit. Only reciprocal exits are kept.
type Waypoint struct {
	Key     voxel.Key
	Exits   [SlotCount]voxel.Key
	Weights [SlotCount]float64

	// exits before reciprocity culling
	raw exitSet
}

// Exit returns the target and weight stored in slot s.
func (w Waypoint) Exit(s Slot) (voxel.Key, float64, bool) {
	if s >= SlotCount || w.Exits[s] == voxel.NoKey {
		return voxel.NoKey, 0, false
	}

	return w.Exits[s], w.Weights[s], true
}

// Degree returns the number of present exits.
func (w Waypoint) Degree() int {
	n := 0
	for _, k := range w.Exits {
		if k != voxel.NoKey {
			n++
		}
	}

	return n
}

// exitSet is one candidate exit list, keyed by slot.
type exitSet struct {
	keys    [SlotCount]voxel.Key
	weights [SlotCount]float64
}

func emptyExits() exitSet {
	var e exitSet
	for i := range e.keys {
		e.keys[i] = voxel.NoKey
	}

	return e
}

func (e *exitSet) set(s Slot, k voxel.Key, w float64) {
	e.keys[s], e.weights[s] = k, w
}

func (e *exitSet) clear(s Slot) {
	e.keys[s], e.weights[s] = voxel.NoKey, 0
}

func (e *exitSet) has(s Slot) bool { return e.keys[s] != voxel.NoKey }

// Weights are the base traversal costs of each exit kind.
type Weights struct {
	Flat          float64 `yaml:"flat"`
	Slope         float64 `yaml:"slope"`
	SlopeEffort   float64 `yaml:"slope_effort"`
	Diagonal      float64 `yaml:"diagonal"`
	DiagonalSlope float64 `yaml:"diagonal_slope"`
	Center        float64 `yaml:"center"`
}

// DefaultWeights returns the stock costs: unit flat steps, a quarter extra
// for slopes, half again for climbing and √2 for diagonals.
func DefaultWeights() Weights {
	return Weights{
		Flat:          1.0,
		Slope:         1.25,
		SlopeEffort:   1.5,
		Diagonal:      1.4142,
		DiagonalSlope: 1.7678,
		Center:        0.5,
	}
}

// Validate reports the first weight that is not a positive finite number.
func (w Weights) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"flat", w.Flat},
		{"slope", w.Slope},
		{"slope_effort", w.SlopeEffort},
		{"diagonal", w.Diagonal},
		{"diagonal_slope", w.DiagonalSlope},
		{"center", w.Center},
	}
	for _, n := range named {
		if !(n.v > 0) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%w: weight %s must be positive, got %v", ErrOptionViolation, n.name, n.v)
		}
	}

	return nil
}

// levelEpsilon separates a level step from a slope.
const levelEpsilon = 1e-9

// step returns the cost of a horizontal move whose floor rises by dh.
func (w Weights) step(diagonal bool, dh float64) float64 {
	flat, slope := w.Flat, w.Slope
	if diagonal {
		flat, slope = w.Diagonal, w.DiagonalSlope
	}
	switch {
	case math.Abs(dh) < levelEpsilon:
		return flat
	case dh > 0:
		return slope * w.SlopeEffort
	default:
		return slope
	}
}

// CornerPolicy decides how diagonal exits interact with the cardinal exits
// flanking them.
//
// The default is CornerRequireFlanks. The classic rule of zeroing any corner
// exit next to a cardinal exit is CornerSuppressFlanked; select it with
// WithCornerPolicy or "corner_policy: suppress-flanked" in the tuning file.
type CornerPolicy uint8

const (
	// CornerRequireFlanks keeps a diagonal exit only when both flanking
	// cardinal exits exist, so no diagonal clips a wall corner.
	CornerRequireFlanks CornerPolicy = iota

	// CornerSuppressFlanked drops a diagonal exit when either flanking
	// cardinal exit exists. Diagonals then only bridge gaps that cardinal
	// moves cannot.
	CornerSuppressFlanked
)

var cornerPolicyNames = []string{"require-flanks", "suppress-flanked"}

func (p CornerPolicy) String() string {
	if int(p) < len(cornerPolicyNames) {
		return cornerPolicyNames[p]
	}

	return fmt.Sprintf("corner-policy(%d)", uint8(p))
}

// ParseCornerPolicy accepts the names printed by CornerPolicy.String.
func ParseCornerPolicy(s string) (CornerPolicy, error) {
	for i, name := range cornerPolicyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return CornerPolicy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown corner policy %q", ErrOptionViolation, s)
}

// Options configures a Graph.
type Options struct {
	Weights      Weights
	CornerPolicy CornerPolicy

	err error
}

// Option is a functional option for NewGraph.
type Option func(*Options)

// DefaultOptions returns DefaultWeights with CornerRequireFlanks.
func DefaultOptions() Options {
	return Options{Weights: DefaultWeights(), CornerPolicy: CornerRequireFlanks}
}

// WithWeights replaces the exit costs. Invalid weights surface as
// ErrOptionViolation from NewGraph.
func WithWeights(w Weights) Option {
	return func(o *Options) {
		if err := w.Validate(); err != nil {
			o.err = err
			return
		}
		o.Weights = w
	}
}

// WithCornerPolicy selects how diagonal exits are filtered.
func WithCornerPolicy(p CornerPolicy) Option {
	return func(o *Options) {
		if int(p) >= len(cornerPolicyNames) {
			o.err = fmt.Errorf("%w: unknown corner policy %d", ErrOptionViolation, p)
			return
		}
		o.CornerPolicy = p
	}
}
