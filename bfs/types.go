package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxnav/voxel"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start key is not a vertex.
	ErrStartNotFound = errors.New("bfs: start key not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for keys the search never reached.
	ErrNoPath = errors.New("bfs: no path")
)

// Neighborer is the read-only graph view BFS walks.
type Neighborer interface {
	// Has reports whether k is a vertex.
	Has(k voxel.Key) bool
	// Neighbors returns the keys reachable from k in one hop.
	Neighbors(k voxel.Key) []voxel.Key
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// OnEnqueue is called when a key is enqueued, before visiting.
	OnEnqueue func(k voxel.Key, depth int)

	// OnVisit is called when visiting a key. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(k voxel.Key, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterNeighbor can skip edges by returning false.
	FilterNeighbor func(curr, neighbor voxel.Key) bool

	err error
}

// DefaultOptions returns Options with no depth limit, no filtering and
// no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnEnqueue:      func(voxel.Key, int) {},
		OnVisit:        func(voxel.Key, int) error { return nil },
		FilterNeighbor: func(_, _ voxel.Key) bool { return true },
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(k voxel.Key, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(k voxel.Key, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor voxel.Key) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	Order  []voxel.Key
	Depth  map[voxel.Key]int
	Parent map[voxel.Key]voxel.Key
}

// PathTo reconstructs the path from the start key to dest.
func (r *Result) PathTo(dest voxel.Key) ([]voxel.Key, error) {
	if _, ok := r.Depth[dest]; !ok {
		x, y, z := dest.Unpack()
		return nil, fmt.Errorf("%w to %d,%d,%d", ErrNoPath, x, y, z)
	}
	path := []voxel.Key{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
