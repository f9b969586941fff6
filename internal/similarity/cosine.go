// Package similarity holds the pure scoring functions used to compare
// candidates with jobs and search queries.
package similarity

import (
	"math"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Empty vectors and zero-norm vectors score 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, dimensionMismatch("cosine", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		if !isFinite(a[i]) || !isFinite(b[i]) {
			return 0, &ScoringError{Op: "cosine", Reason: "vector contains non-finite value"}
		}
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Skills compares a candidate skills embedding with a job requirements
// embedding. Negative similarity is floored at 0 and the result never exceeds 1.
func Skills(candidate, job []float64) (float64, error) {
	sim, err := Cosine(candidate, job)
	if err != nil {
		return 0, err
	}
	return clamp(sim, 0, 1), nil
}

// BestOf returns the highest plain cosine similarity between the candidate
// vector and any of the query vectors. Query vectors with a zero norm are
// ignored. The result is not clamped.
func BestOf(queries [][]float64, candidate []float64) (float64, error) {
	if len(queries) == 0 || len(candidate) == 0 {
		return 0, nil
	}

	best := 0.0
	found := false
	for _, query := range queries {
		if isZero(query) {
			continue
		}
		sim, err := Cosine(query, candidate)
		if err != nil {
			return 0, err
		}
		if !found || sim > best {
			best = sim
			found = true
		}
	}

	return best, nil
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
