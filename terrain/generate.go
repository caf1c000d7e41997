package terrain

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/katalvlaran/voxnav/voxel"
)

// Params controls world generation.
type Params struct {
	Width  int `yaml:"width"`
	Depth  int `yaml:"depth"`
	Height int `yaml:"height"`

	Seed      int64   `yaml:"seed"`
	Alpha     float64 `yaml:"alpha"`     // noise smoothing
	Beta      float64 `yaml:"beta"`      // noise harmonic scaling
	Octaves   int32   `yaml:"octaves"`   // noise octaves
	Frequency float64 `yaml:"frequency"` // noise units per cell

	// Base and Amplitude place the ground at (Base ± Amplitude) × Height.
	Base      float64 `yaml:"base"`
	Amplitude float64 `yaml:"amplitude"`

	TopSoil  int     `yaml:"top_soil"`  // dirt layers under the top cell
	SeaLevel float64 `yaml:"sea_level"` // water surface in cells, 0 for none
}

// DefaultParams returns a 64×64×32 world with gentle hills and a shallow sea.
func DefaultParams() Params {
	return Params{
		Width:     64,
		Depth:     64,
		Height:    32,
		Seed:      1,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
		Frequency: 0.05,
		Base:      0.35,
		Amplitude: 0.25,
		TopSoil:   2,
		SeaLevel:  9.5,
	}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	switch {
	case p.Width < 1 || p.Depth < 1 || p.Height < 3:
		return fmt.Errorf("%w: size %dx%dx%d (height must be at least 3)", ErrBadParams, p.Width, p.Depth, p.Height)
	case !(p.Alpha > 0) || !(p.Beta > 0) || p.Octaves < 1:
		return fmt.Errorf("%w: noise alpha=%v beta=%v octaves=%d", ErrBadParams, p.Alpha, p.Beta, p.Octaves)
	case !(p.Frequency > 0) || math.IsInf(p.Frequency, 0):
		return fmt.Errorf("%w: frequency %v", ErrBadParams, p.Frequency)
	case p.Base < 0 || p.Base > 1 || p.Amplitude < 0 || p.Amplitude > 1:
		return fmt.Errorf("%w: base %v amplitude %v must lie in [0,1]", ErrBadParams, p.Base, p.Amplitude)
	case p.TopSoil < 0:
		return fmt.Errorf("%w: top soil %d", ErrBadParams, p.TopSoil)
	case p.SeaLevel < 0 || p.SeaLevel > float64(p.Height) || math.IsNaN(p.SeaLevel):
		return fmt.Errorf("%w: sea level %v", ErrBadParams, p.SeaLevel)
	}

	return nil
}

// PerlinHeights samples Perlin noise into a heightmap whose columns leave at
// least one air cell above them.
func PerlinHeights(p Params) (*Heightmap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	top := p.Height - 1

	values := make([][]int, p.Depth)
	for y := range values {
		values[y] = make([]int, p.Width)
		for x := range values[y] {
			n := noise.Noise2D(float64(x)*p.Frequency, float64(y)*p.Frequency)
			level := (p.Base + p.Amplitude*n) * float64(p.Height)
			values[y][x] = min(max(int(math.Round(level)), 1), top)
		}
	}

	return NewHeightmap(values)
}

// Build layers the heightmap into a grid of the given height. Columns of
// height 0 stay empty; the bottom cell of every other column is base rock.
// Tops at or below seaLevel are sand, the rest grass.
// Returns ErrHeightRange when a column leaves no air above it.
func Build(h *Heightmap, height, topSoil int, seaLevel float64) (*voxel.Grid, error) {
	if m := h.Max(); m >= height {
		return nil, fmt.Errorf("%w: column of %d in a grid of height %d", ErrHeightRange, m, height)
	}
	g, err := voxel.NewGrid(h.Width, h.Depth, height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h.Depth; y++ {
		for x := 0; x < h.Width; x++ {
			n := h.At(x, y)
			if n == 0 {
				continue
			}
			g.Fill(x, y, 0, x, y, n-1, voxel.Rock)
			g.Fill(x, y, n-1-topSoil, x, y, n-2, voxel.Dirt)
			surface := voxel.Grass
			if float64(n) <= seaLevel {
				surface = voxel.Sand
			}
			g.Set(x, y, n-1, surface)
			g.Set(x, y, 0, voxel.Base)
		}
	}

	return g, nil
}

// Generate runs PerlinHeights and Build with p.
func Generate(p Params) (*voxel.Grid, *Heightmap, error) {
	h, err := PerlinHeights(p)
	if err != nil {
		return nil, nil, err
	}
	g, err := Build(h, p.Height, p.TopSoil, p.SeaLevel)
	if err != nil {
		return nil, nil, err
	}

	return g, h, nil
}
