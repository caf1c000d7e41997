package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/voxnav/astar"
	"github.com/katalvlaran/voxnav/navgraph"
	"github.com/katalvlaran/voxnav/surface"
	"github.com/katalvlaran/voxnav/voxel"
	"github.com/katalvlaran/voxnav/water"
)

var (
	// ErrNilGrid is returned by New when no grid is given.
	ErrNilGrid = errors.New("nav: grid is nil")

	// ErrOutOfRange is returned by Edit for coordinates outside the grid.
	ErrOutOfRange = errors.New("nav: coordinates out of range")
)

// RebuildRequest carries the keys one stage hands to the next.
type RebuildRequest struct {
	Keys voxel.KeySet
}

// RebuildResult reports what one rebuild changed.
type RebuildResult struct {
	Surfaces  voxel.KeySet
	Waypoints voxel.KeySet
}

// Stats summarises the current state of a World.
type Stats struct {
	Cells     int
	Runs      int
	Surfaces  int
	Waypoints int
	Exits     int
	Islands   int
}

// World owns a grid together with everything derived from it.
type World struct {
	mu       sync.RWMutex
	grid     *voxel.Grid
	surfaces *surface.Classifier
	graph    *navgraph.Graph
	finder   *astar.Finder
	log      *slog.Logger
	obs      Observer
}

// New wires a World over grid and layer (nil means dry). The World is empty
// until Build is called. Option errors from navgraph and astar are returned
// unchanged.
func New(grid *voxel.Grid, layer water.Layer, opts ...Option) (*World, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if layer == nil {
		layer = water.Dry{}
	}

	surfaces := surface.NewClassifier(grid)
	graph, err := navgraph.NewGraph(surfaces, o.Graph...)
	if err != nil {
		return nil, err
	}
	finder, err := astar.NewFinder(graph, layer, o.Search...)
	if err != nil {
		return nil, err
	}

	return &World{
		grid:     grid,
		surfaces: surfaces,
		graph:    graph,
		finder:   finder,
		log:      o.Logger,
		obs:      o.Observer,
	}, nil
}

// Build classifies the whole grid and links every waypoint.
func (w *World) Build() RebuildResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	res := RebuildResult{Surfaces: w.surfaces.RebuildAll()}
	res.Waypoints = w.graph.RebuildAll()
	w.done("build", 0, res, time.Since(start))

	return res
}

// Edit writes t at (x, y, z) and propagates the change. Writing the type a
// cell already holds is a no-op with an empty result.
func (w *World) Edit(x, y, z int, t voxel.Type) (RebuildResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.grid.IsValid(x, y, z) {
		return RebuildResult{}, fmt.Errorf("%w: %d,%d,%d", ErrOutOfRange, x, y, z)
	}
	ch, ok := w.grid.Set(x, y, z, t)
	if !ok {
		return RebuildResult{Surfaces: voxel.KeySet{}, Waypoints: voxel.KeySet{}}, nil
	}
	w.log.Debug("voxel edited", "x", x, "y", y, "z", z, "old", ch.Old, "new", ch.New)

	return w.apply(RebuildRequest{Keys: voxel.NewKeySet(ch.Key)}), nil
}

// Fill writes t into the inclusive box and propagates all changes at once.
// Cells outside the grid are skipped.
func (w *World) Fill(x0, y0, z0, x1, y1, z1 int, t voxel.Type) RebuildResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := RebuildRequest{Keys: make(voxel.KeySet)}
	for _, ch := range w.grid.Fill(x0, y0, z0, x1, y1, z1, t) {
		req.Keys.Add(ch.Key)
	}

	return w.apply(req)
}

// Apply propagates voxel changes made to the grid outside the World, for
// example by a replicated simulation step.
func (w *World) Apply(req RebuildRequest) RebuildResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.apply(req)
}

func (w *World) apply(req RebuildRequest) RebuildResult {
	start := time.Now()
	next := w.classify(req)
	res := RebuildResult{Surfaces: next.Keys, Waypoints: w.link(next)}
	w.done("rebuild", req.Keys.Len(), res, time.Since(start))

	return res
}

// classify rebuilds the surfaces around the edited keys and returns the
// changed surfaces as the graph's request.
func (w *World) classify(req RebuildRequest) RebuildRequest {
	region := make(voxel.KeySet)
	for k := range req.Keys {
		region.Merge(w.surfaces.Region(k))
	}
	if region.Len() == 0 {
		return RebuildRequest{Keys: voxel.KeySet{}}
	}

	return RebuildRequest{Keys: w.surfaces.Rebuild(region)}
}

// link rebuilds the waypoints that depend on the changed surfaces.
func (w *World) link(req RebuildRequest) voxel.KeySet {
	if req.Keys.Len() == 0 {
		return voxel.KeySet{}
	}

	return w.graph.Rebuild(req.Keys)
}

func (w *World) done(op string, edited int, res RebuildResult, took time.Duration) {
	w.obs.ObserveRebuild(res.Surfaces.Len(), res.Waypoints.Len(), took)
	w.log.Debug(op,
		slog.Int("edited", edited),
		slog.Int("surfaces", res.Surfaces.Len()),
		slog.Int("waypoints", res.Waypoints.Len()),
		slog.Duration("took", took),
	)
}

// Grid returns the underlying grid. Callers that write to it directly must
// hand the changed keys to Apply.
func (w *World) Grid() *voxel.Grid { return w.grid }

// Surface returns the surface at k.
func (w *World) Surface(k voxel.Key) (surface.Surface, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.surfaces.Get(k)
}

// Elevation returns the floor height at (u, v) inside the cell k, 0 when k
// has no floor.
func (w *World) Elevation(k voxel.Key, u, v float64) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.surfaces.Elevation(k, u, v)
}

// Waypoint returns the navigation node at k.
func (w *World) Waypoint(k voxel.Key) (navgraph.Waypoint, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.graph.Waypoint(k)
}

// FindPath returns the cheapest route from start to end, or nil.
func (w *World) FindPath(start, end voxel.Key) []voxel.Key {
	return w.Search(start, end).Path
}

// Search is FindPath with cost and expansion count.
func (w *World) Search(start, end voxel.Key) astar.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()

	res := w.finder.Search(start, end)
	w.obs.ObserveSearch(res.Expanded, res.Found())
	if !res.Found() {
		w.log.Debug("no path", "from", start, "to", end, "expanded", res.Expanded)
	}

	return res
}

// HasExit reports whether a unit moving from one cell to the next can still
// take that step.
func (w *World) HasExit(from, to voxel.Key) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.finder.HasExit(from, to)
}

// Islands returns the groups of waypoints connected by exits.
func (w *World) Islands() [][]voxel.Key {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.graph.Components()
}

// Stats counts cells, storage runs, surfaces, waypoints, exits and islands.
// Counting islands walks the whole graph.
func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Stats{
		Cells:     w.grid.Width * w.grid.Depth * w.grid.Height,
		Runs:      w.grid.Runs(),
		Surfaces:  w.surfaces.Len(),
		Waypoints: w.graph.Len(),
		Exits:     w.graph.Edges(),
		Islands:   len(w.graph.Components()),
	}
}
