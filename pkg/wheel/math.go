package wheel

import "math"

// ClampSymmetric clamps v to [-maxD, maxD].
func ClampSymmetric(maxD, v float32) float32 {
	if v < -maxD {
		return -maxD
	}
	if v > maxD {
		return maxD
	}
	return v
}

// AngleDelta returns the shortest signed angular difference from a to b,
// wrapped into (-π, π].
func AngleDelta(a, b float32) float32 {
	delta := b - a
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	return delta
}

// DampDelta scales an angular delta by min(dist, base)/base.  Near the
// centre of the wheel a small positional wobble maps to a huge polar swing;
// damping keeps that noise out of the wheel angle.
func DampDelta(delta, dist, base float32) float32 {
	factor := dist
	if factor > base {
		factor = base
	}
	return delta * factor / base
}

// clockAngle is the polar angle of (x, y) in the clock convention: zero at
// twelve o'clock, increasing clockwise.  Note the swapped atan2 arguments;
// swapping them back changes the handedness of wheel rotation.
func clockAngle(x, y float32) float32 {
	return float32(math.Atan2(float64(x), float64(y)))
}

func badFloat(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
