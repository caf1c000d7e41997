package surface_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/voxnav/surface"
	"github.com/katalvlaran/voxnav/voxel"
)

func TestElevation_Table(t *testing.T) {
	cases := []struct {
		name   string
		shape  surface.Shape
		facing voxel.Dir
		u, v   float64
		want   float64
	}{
		{"FlatCentre", surface.Flat, voxel.North, 0.5, 0.5, 0},
		{"RampNorthHigh", surface.Ramp, voxel.North, 0.2, 1, 1},
		{"RampNorthMid", surface.Ramp, voxel.North, 0.9, 0.5, 0.5},
		{"RampEastHigh", surface.Ramp, voxel.East, 1, 0.5, 1},
		{"RampEastLow", surface.Ramp, voxel.East, 0, 0.5, 0},
		{"RampSouthHigh", surface.Ramp, voxel.South, 0.5, 0, 1},
		{"RampWestQuarter", surface.Ramp, voxel.West, 0.25, 0.5, 0.75},
		{"DoubleRampLowCorner", surface.DoubleRamp, voxel.North, 0, 0, 0},
		{"DoubleRampPlateau", surface.DoubleRamp, voxel.North, 0.9, 0.9, 1},
		{"DoubleRampEdge", surface.DoubleRamp, voxel.North, 0.3, 0, 0.3},
		{"DoubleRampSouthLowCorner", surface.DoubleRamp, voxel.South, 1, 1, 0},
		{"HalfFloorDefined", surface.HalfFloor, voxel.North, 0.8, 0.8, 0},
		{"HalfFloorUndefined", surface.HalfFloor, voxel.North, 0.1, 0.1, 0},
		{"ShimCorner", surface.Shim, voxel.North, 1, 1, 1},
		{"ShimUndefined", surface.Shim, voxel.East, 0, 1, 0},
		{"WedgeCorner", surface.Wedge, voxel.East, 1, 0, 1},
		{"WedgeOpposite", surface.Wedge, voxel.East, 0, 1, 0},
		{"ButterflyLow", surface.Butterfly, voxel.North, 1, 0, 0},
		{"ButterflyHigh", surface.Butterfly, voxel.North, 0, 0, 1},
		{"CubanNorthWest", surface.Cuban, voxel.North, 0, 1, 1},
		{"CubanSouth", surface.Cuban, voxel.North, 0.5, 0, 0},
		{"RampShimLeftLowCorner", surface.RampShimLeft, voxel.North, 0, 0, 1},
		{"RampShimLeftOtherCorner", surface.RampShimLeft, voxel.North, 1, 0, 0},
		{"RampShimRightLowCorner", surface.RampShimRight, voxel.North, 1, 0, 1},
		{"RampShimRightEast", surface.RampShimRight, voxel.East, 0, 0, 1},
		{"WallHasNoFloor", surface.Wall, voxel.North, 0.5, 0.5, 0},
		{"NoneHasNoFloor", surface.None, voxel.North, 0.5, 0.5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := surface.Surface{Shape: tc.shape, Facing: surface.Facing(tc.facing)}
			assert.InDelta(t, tc.want, surface.Elevation(s, tc.u, tc.v), 1e-12)
		})
	}
}

// TestElevation_TotalAndBounded samples every shape and facing, including
// out-of-range and NaN inputs.
func TestElevation_TotalAndBounded(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	inputs := [][2]float64{{-1, 2}, {math.NaN(), 0.5}, {math.Inf(1), math.Inf(-1)}}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, [2]float64{r.Float64(), r.Float64()})
	}
	for shape := surface.Shape(0); shape < surface.ShapeCount+1; shape++ {
		for f := surface.Facing(0); f < 4; f++ {
			s := surface.Surface{Shape: shape, Facing: f}
			for _, in := range inputs {
				h := s.Elevation(in[0], in[1])
				assert.False(t, math.IsNaN(h) || math.IsInf(h, 0), "%s/%d at %v", shape, f, in)
				assert.True(t, h >= 0 && h <= 1, "%s/%d at %v = %v", shape, f, in, h)
			}
		}
	}
}

func TestElevation_RotationConsistent(t *testing.T) {
	// A feature of facing f sits where the canonical feature lands after f
	// clockwise quarter turns: (u,v) -> (v, 1-u).
	r := rand.New(rand.NewSource(5))
	for shape := surface.Flat; shape < surface.ShapeCount; shape++ {
		for i := 0; i < 50; i++ {
			u, v := r.Float64(), r.Float64()
			base := surface.Surface{Shape: shape}
			turned := surface.Surface{Shape: shape, Facing: 1}
			assert.InDelta(t, base.Elevation(u, v), turned.Elevation(v, 1-u), 1e-12, "%s", shape)
		}
	}
}

func TestShape_Walkable(t *testing.T) {
	assert.False(t, surface.None.Walkable())
	assert.False(t, surface.Wall.Walkable())
	for s := surface.Flat; s < surface.ShapeCount; s++ {
		assert.True(t, s.Walkable(), s.String())
	}
	assert.Equal(t, "invalid", surface.Shape(40).String())
	assert.True(t, surface.RampShimLeft.IsRamp())
	assert.False(t, surface.DoubleRamp.IsRamp())
}
