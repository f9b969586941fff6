package similarity

import "math"

// Experience scores the gap between a candidate's years of experience and the
// required years. A missing value on either side scores 0. Any finite gap
// earns at least 0.1.
func Experience(candidate, required *float64) float64 {
	if candidate == nil || required == nil {
		return 0
	}

	gap := math.Abs(*candidate - *required)

	switch {
	case gap == 0:
		return 1.0
	case gap <= 1:
		return 0.9
	case gap <= 2:
		return 0.7
	case gap <= 3:
		return 0.5
	case gap <= 4:
		return 0.3
	default:
		return 0.1
	}
}
