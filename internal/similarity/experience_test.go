package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func years(v float64) *float64 { return &v }

func TestExperienceBreakpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate float64
		required  float64
		expect    float64
	}{
		{5, 5, 1.0},
		{5.5, 5, 0.9},
		{4, 5, 0.9},
		{7, 5, 0.7},
		{1.5, 3.5, 0.7},
		{8, 5, 0.5},
		{1, 5, 0.3},
		{10, 5, 0.1},
		{0, 40, 0.1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, Experience(years(tt.candidate), years(tt.required)),
			"candidate=%v required=%v", tt.candidate, tt.required)
	}
}

func TestExperienceMissingValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Experience(nil, years(3)))
	assert.Equal(t, 0.0, Experience(years(3), nil))
	assert.Equal(t, 0.0, Experience(nil, nil))
}

func TestExperienceMonotonicWithFloor(t *testing.T) {
	t.Parallel()

	required := 5.0
	previous := Experience(years(required), years(required))
	assert.Equal(t, 1.0, previous)

	for gap := 0.25; gap <= 20; gap += 0.25 {
		score := Experience(years(required+gap), years(required))
		assert.LessOrEqual(t, score, previous, "gap=%v", gap)
		assert.GreaterOrEqual(t, score, 0.1, "gap=%v", gap)
		previous = score
	}
}

func TestExperienceSameValue(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{0, 0.5, 3, 12.75} {
		assert.Equal(t, 1.0, Experience(years(x), years(x)))
	}
}
