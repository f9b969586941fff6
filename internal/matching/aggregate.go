package matching

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// aggregate combines the applied criteria into one score bundle. With
// normalize the weighted sum is divided by the weight actually applied;
// otherwise the raw weighted sum is kept. The applied weight is returned so
// callers can reject candidates nothing was evaluated for.
func aggregate(candidate *Candidate, criteria []criterion, normalize bool) (Scores, float64, error) {
	var (
		scores  Scores
		total   float64
		applied float64
	)

	for _, c := range criteria {
		score, ok, err := c.Score(candidate)
		if err != nil {
			return Scores{}, 0, fmt.Errorf("%s: %w", c.Name(), err)
		}
		if !ok {
			continue
		}

		scores.set(c.Name(), score)
		total += score * c.Weight()
		applied += c.Weight()
	}

	if normalize && applied > 0 {
		total /= applied
	}
	scores.Total = total

	return scores, applied, nil
}

type scanOptions struct {
	normalize bool
	// requireApplied drops candidates without any applied criterion.
	requireApplied bool
	minScore       float64
	limit          int
}

// scan scores every candidate, keeps those reaching the minimum score and
// returns them ordered by total score. A candidate that fails to score is
// logged and skipped.
func scan(logger *zap.Logger, candidates []*Candidate, criteria []criterion, opts scanOptions) []Result {
	results := make([]Result, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		scores, applied, err := aggregate(candidate, criteria, opts.normalize)
		if err != nil {
			logger.Warn("scoring candidate failed. It will be skipped.",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err),
			)
			continue
		}

		if opts.requireApplied && applied == 0 {
			logger.Debug("no criteria applied to candidate",
				zap.String("candidate_id", candidate.ID),
			)
			continue
		}

		logger.Debug("candidate scored",
			zap.String("candidate_id", candidate.ID),
			zap.Float64("skills_score", scores.Skills),
			zap.Float64("location_score", scores.Location),
			zap.Float64("experience_score", scores.Experience),
			zap.Float64("total_score", scores.Total),
		)

		if scores.Total < opts.minScore {
			continue
		}

		results = append(results, Result{Candidate: candidate, Scores: scores})
	}

	return sortAndLimit(results, opts.limit)
}

// sortAndLimit orders results by descending total score, keeping the input
// order for equal scores, and truncates to limit.
func sortAndLimit(results []Result, limit int) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Total > results[j].Scores.Total
	})

	if limit < 0 {
		limit = 0
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results
}
