package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultsWithTotals(totals ...float64) []Result {
	results := make([]Result, 0, len(totals))
	for _, total := range totals {
		results = append(results, Result{Candidate: &Candidate{}, Scores: Scores{Total: total}})
	}
	return results
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		expect  Summary
	}{
		{name: "empty", results: nil, expect: Summary{}},
		{
			name:    "single",
			results: resultsWithTotals(0.7),
			expect:  Summary{Count: 1, AvgScore: 0.7, MaxScore: 0.7, MinScore: 0.7, Distribution: Distribution{Good: 1}},
		},
		{
			name:    "buckets",
			results: resultsWithTotals(0.9, 0.8, 0.6, 0.5, 0.2),
			expect: Summary{
				Count:        5,
				AvgScore:     0.6,
				MaxScore:     0.9,
				MinScore:     0.2,
				Distribution: Distribution{Excellent: 2, Good: 1, Fair: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.results)
			assert.Equal(t, tt.expect.Count, got.Count)
			assert.InDelta(t, tt.expect.AvgScore, got.AvgScore, 1e-9)
			assert.Equal(t, tt.expect.MaxScore, got.MaxScore)
			assert.Equal(t, tt.expect.MinScore, got.MinScore)
			assert.Equal(t, tt.expect.Distribution, got.Distribution)
		})
	}
}

func TestSummarizeUnsortedInput(t *testing.T) {
	got := Summarize(resultsWithTotals(0.55, 0.95, 0.65))
	assert.Equal(t, 0.95, got.MaxScore)
	assert.Equal(t, 0.55, got.MinScore)
}
