package matching

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/similarity"
)

// DefaultSimilarityThreshold is the minimum raw cosine similarity used by
// Nearest when the caller has no preference.
const DefaultSimilarityThreshold = 0.7

// Nearest returns the candidates whose skills embedding is closest to vector,
// keeping those with a raw cosine similarity of at least threshold. Only the
// skills and total scores are set.
func (s *Searcher) Nearest(ctx context.Context, source CandidateSource, vector []float64, threshold float64, limit int) ([]Result, error) {
	candidates, err := source.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || len(candidate.SkillsVector) == 0 {
			continue
		}

		score, err := similarity.Cosine(vector, candidate.SkillsVector)
		if err != nil {
			s.log.Warn("comparing skills failed. It will be skipped.",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err),
			)
			continue
		}

		if score < threshold {
			continue
		}

		results = append(results, Result{
			Candidate: candidate,
			Scores:    Scores{Skills: score, Total: score},
		})
	}

	results = sortAndLimit(results, limit)
	s.log.Info("found matching candidates", zap.Int("count", len(results)))

	return results, nil
}
