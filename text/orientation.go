package text

import "math"

// NormalizeAngle folds an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// AngleDelta returns the smallest absolute difference between two angles,
// in [0, 180].
func AngleDelta(a, b float64) float64 {
	return math.Abs(NormalizeAngle(a - b))
}

// RoundAngle snaps an angle to the nearest whole degree, normalized.
func RoundAngle(deg float64) float64 {
	return NormalizeAngle(math.Round(deg))
}
