// Package latlong converts between degree coordinates and the e7 integer
// representation the UULE wire formats use to avoid floating-point drift.
package latlong

import "math"

// ToE7 converts a latitude or longitude in degrees to its e7 integer form,
// rounding to the nearest integer: ToE7(37.4210000) == 374210000.
func ToE7(deg float64) int64 {
	return int64(math.Round(deg * 1e7))
}

// FromE7 converts an e7 integer back to degrees:
// FromE7(-122084000) == -12.2084.
func FromE7(e7 int64) float64 {
	return float64(e7) / 1e7
}
