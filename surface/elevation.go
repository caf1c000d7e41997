package surface

import "math"

// canonical rotates world-oriented (u, v) back into the Facing 0 frame, one
// counter-clockwise quarter turn per facing step.
func canonical(f Facing, u, v float64) (float64, float64) {
	for i := Facing(0); i < f&3; i++ {
		u, v = 1-v, u
	}

	return u, v
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	}

	return x
}

// canonicalFloor evaluates the Facing 0 floor of shape at (u, v).
// Every Shape value is listed; anything else has no floor.
func canonicalFloor(shape Shape, u, v float64) (float64, bool) {
	switch shape {
	case None, Wall:
		return 0, false
	case Flat:
		return 0, true
	case Ramp:
		return v, true
	case HalfFloor:
		if u+v < 1 {
			return 0, false
		}
		return 0, true
	case Shim:
		if u+v < 1 {
			return 0, false
		}
		return u + v - 1, true
	case DoubleRamp:
		return math.Min(u+v, 1), true
	case Wedge:
		return math.Max(0, u+v-1), true
	case Butterfly:
		return math.Max(0, math.Max(u+v-1, 1-u-v)), true
	case Cuban:
		return math.Max(0, math.Max(u+v-1, v-u)), true
	case RampShimLeft:
		return math.Max(v, 1-u-v), true
	case RampShimRight:
		return math.Max(v, u-v), true
	}

	return 0, false
}
