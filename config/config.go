// Package config loads voxnav tuning from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxnav/astar"
	"github.com/katalvlaran/voxnav/navgraph"
	"github.com/katalvlaran/voxnav/terrain"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid tuning")

// Tuning is the whole configuration file.
type Tuning struct {
	Graph  Graph          `yaml:"graph"`
	Search Search         `yaml:"search"`
	World  terrain.Params `yaml:"world"`
}

// Graph tunes navigation graph construction.
type Graph struct {
	Weights      navgraph.Weights `yaml:"weights"`
	CornerPolicy string           `yaml:"corner_policy"`
}

// Search tunes path finding.
type Search struct {
	MaxDepth    float64   `yaml:"max_depth"`
	DeepDepth   float64   `yaml:"deep_depth"`
	DeepPenalty float64   `yaml:"deep_penalty"`
	CellSize    []float64 `yaml:"cell_size"`
	NodeBudget  int       `yaml:"node_budget"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	s := astar.DefaultOptions()

	return Tuning{
		Graph: Graph{
			Weights:      navgraph.DefaultWeights(),
			CornerPolicy: navgraph.CornerRequireFlanks.String(),
		},
		Search: Search{
			MaxDepth:    s.MaxDepth,
			DeepDepth:   s.DeepDepth,
			DeepPenalty: s.DeepPenalty,
			CellSize:    s.CellSize[:],
			NodeBudget:  s.NodeBudget,
		},
		World: terrain.DefaultParams(),
	}
}

// Load reads the YAML file at path over Default. Keys missing from the file
// keep their defaults; unknown keys are an error.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}

	return Parse(raw)
}

// Parse decodes YAML bytes over Default and validates the result.
func Parse(raw []byte) (Tuning, error) {
	t := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}

	return t, nil
}

// Validate checks every section by building the options it configures.
func (t Tuning) Validate() error {
	if _, err := t.GraphOptions(); err != nil {
		return fmt.Errorf("%w: graph: %v", ErrInvalid, err)
	}
	if len(t.Search.CellSize) != 3 {
		return fmt.Errorf("%w: search.cell_size needs 3 values, got %d", ErrInvalid, len(t.Search.CellSize))
	}
	if _, err := astar.Configure(t.SearchOptions()...); err != nil {
		return fmt.Errorf("%w: search: %v", ErrInvalid, err)
	}
	if err := t.World.Validate(); err != nil {
		return fmt.Errorf("%w: world: %v", ErrInvalid, err)
	}

	return nil
}

// GraphOptions converts the graph section into navgraph options.
func (t Tuning) GraphOptions() ([]navgraph.Option, error) {
	p, err := navgraph.ParseCornerPolicy(t.Graph.CornerPolicy)
	if err != nil {
		return nil, err
	}
	if err := t.Graph.Weights.Validate(); err != nil {
		return nil, err
	}

	return []navgraph.Option{navgraph.WithWeights(t.Graph.Weights), navgraph.WithCornerPolicy(p)}, nil
}

// SearchOptions converts the search section into astar options. A cell size
// without exactly three values is left at its default.
func (t Tuning) SearchOptions() []astar.Option {
	opts := []astar.Option{
		astar.WithMaxDepth(t.Search.MaxDepth),
		astar.WithDeepDepth(t.Search.DeepDepth),
		astar.WithDeepPenalty(t.Search.DeepPenalty),
		astar.WithNodeBudget(t.Search.NodeBudget),
	}
	if c := t.Search.CellSize; len(c) == 3 {
		opts = append(opts, astar.WithCellSize(c[0], c[1], c[2]))
	}

	return opts
}
