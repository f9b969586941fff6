package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateLocation(t *testing.T) {
	tests := []struct {
		name      string
		candidate *Candidate
		expect    string
	}{
		{name: "nil candidate", candidate: nil, expect: ""},
		{name: "no profile", candidate: &Candidate{ID: "c1"}, expect: ""},
		{name: "nested location", candidate: &Candidate{Profile: withLocation("Austin, TX")}, expect: "Austin, TX"},
		{name: "no personal info", candidate: &Candidate{Profile: map[string]any{"skills": []string{"go"}}}, expect: ""},
		{
			name:      "location of wrong type",
			candidate: &Candidate{Profile: map[string]any{"personal_info": map[string]any{"location": 42}}},
			expect:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.candidate.Location())
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	assert.Equal(t, Weights{Skills: 0.6, Location: 0.2, Experience: 0.2}, DefaultSearchWeights)
	assert.Equal(t, Weights{Skills: 0.4, Experience: 0.3, Title: 0.2, Location: 0.1}, DefaultRankWeights)
}
