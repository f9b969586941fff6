package matching

import (
	"context"
	"math"
)

type staticSource struct {
	candidates []*Candidate
	err        error
	calls      int
}

func (s *staticSource) ListCandidates(context.Context) ([]*Candidate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

type staticJobs map[string]*Job

func (j staticJobs) GetJob(_ context.Context, id string) (*Job, error) {
	job, ok := j[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func years(v float64) *float64 { return &v }

// unitWithCosine returns a unit vector whose cosine to [1, 0] is sim.
func unitWithCosine(sim float64) []float64 {
	return []float64{sim, math.Sqrt(1 - sim*sim)}
}

func withLocation(location string) map[string]any {
	return map[string]any{
		"personal_info": map[string]any{
			"name":     "Jane Doe",
			"location": location,
		},
	}
}

func ids(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Candidate.ID)
	}
	return out
}
