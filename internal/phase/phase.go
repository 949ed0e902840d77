// Package phase lifts a wrapped toroidal angle onto the branch nearest a
// reference angle, so that successive samples along a trajectory can be
// compared with ordinary arithmetic instead of modular logic.
package phase

import "math"

// Lift returns the angle in {atan2(y, x) + 2*pi*k : k in Z} closest to ref.
func Lift(x, y, ref float64) float64 {
	phi := math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	nearestMultiple := math.Round(ref/(2*math.Pi)) * 2 * math.Pi
	candidates := [3]float64{
		nearestMultiple - 2*math.Pi + phi,
		nearestMultiple + phi,
		nearestMultiple + 2*math.Pi + phi,
	}

	best := candidates[0]
	bestDist := math.Abs(candidates[0] - ref)
	for _, c := range candidates[1:] {
		if d := math.Abs(c - ref); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
