package astar

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/voxnav/navgraph"
	"github.com/katalvlaran/voxnav/voxel"
)

// Sentinel errors returned by NewFinder.
var (
	// ErrNilGraph indicates a nil graph was passed to NewFinder.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Source is the read-only navigation view a Finder searches.
type Source interface {
	Waypoint(k voxel.Key) (navgraph.Waypoint, bool)
	Weights() navgraph.Weights
}

// Options configures a Finder.
//
// MaxDepth    – water deeper than this makes a cell impassable.
// DeepDepth   – water deeper than this multiplies the step cost by DeepPenalty.
// DeepPenalty – cost multiplier for deep water, ≥ 1.
// CellSize    – world size of one cell along x, y and z, for the heuristic.
// NodeBudget  – maximum expansions per search; 0 means unlimited.
// Weights     – costs the heuristic is scaled against; nil uses the graph's.
type Options struct {
	MaxDepth    float64
	DeepDepth   float64
	DeepPenalty float64
	CellSize    [3]float64
	NodeBudget  int
	Weights     *navgraph.Weights

	err error
}

// Option is a functional option for NewFinder.
type Option func(*Options)

// DefaultOptions returns the stock hazard thresholds with unit cells and no
// node budget.
func DefaultOptions() Options {
	return Options{
		MaxDepth:    0.75,
		DeepDepth:   0.35,
		DeepPenalty: 4,
		CellSize:    [3]float64{1, 1, 1},
	}
}

// Configure applies opts over DefaultOptions and checks the result.
// NewFinder calls it; configuration loaders can call it to validate early.
func Configure(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	if o.DeepDepth > o.MaxDepth {
		return Options{}, fmt.Errorf("%w: DeepDepth %v above MaxDepth %v", ErrOptionViolation, o.DeepDepth, o.MaxDepth)
	}

	return o, nil
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WithMaxDepth sets the impassable water depth (≥ 0).
func WithMaxDepth(d float64) Option {
	return func(o *Options) {
		if !finite(d) || d < 0 {
			o.fail("MaxDepth must be a non-negative number, got %v", d)
			return
		}
		o.MaxDepth = d
	}
}

// WithDeepDepth sets the depth above which DeepPenalty applies (≥ 0).
func WithDeepDepth(d float64) Option {
	return func(o *Options) {
		if !finite(d) || d < 0 {
			o.fail("DeepDepth must be a non-negative number, got %v", d)
			return
		}
		o.DeepDepth = d
	}
}

// WithDeepPenalty sets the deep-water cost multiplier (≥ 1).
func WithDeepPenalty(p float64) Option {
	return func(o *Options) {
		if !finite(p) || p < 1 {
			o.fail("DeepPenalty must be at least 1, got %v", p)
			return
		}
		o.DeepPenalty = p
	}
}

// WithCellSize sets the world size of one cell per axis (each > 0).
func WithCellSize(x, y, z float64) Option {
	return func(o *Options) {
		for _, v := range []float64{x, y, z} {
			if !finite(v) || v <= 0 {
				o.fail("cell size must be positive, got %v,%v,%v", x, y, z)
				return
			}
		}
		o.CellSize = [3]float64{x, y, z}
	}
}

// WithNodeBudget caps expansions per search (0 = unlimited, < 0 invalid).
func WithNodeBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail("NodeBudget cannot be negative (%d)", n)
			return
		}
		o.NodeBudget = n
	}
}

// WithWeights scales the heuristic against w instead of the graph's weights.
// Use it when edge costs are known to be no cheaper than w.
func WithWeights(w navgraph.Weights) Option {
	return func(o *Options) {
		if err := w.Validate(); err != nil {
			o.fail("%v", err)
			return
		}
		o.Weights = &w
	}
}

// Result is the outcome of one search. Path is empty when no route exists.
type Result struct {
	Path     []voxel.Key
	Cost     float64
	Expanded int
}

// Found reports whether a route was found.
func (r Result) Found() bool { return len(r.Path) > 0 }
