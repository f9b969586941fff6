package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
)

// ErrNoCriteria is returned by SearchQuery.Validate when no criterion is set.
var ErrNoCriteria = errors.New("at least one search criterion must be provided")

var validate = validator.New()

// SearchQuery holds the optional criteria of a free-form candidate search.
type SearchQuery struct {
	// SkillVectors holds one embedding per requested skill.
	SkillVectors [][]float64
	Location     string
	// Experience is the required experience in years. Zero means unset.
	Experience *float64 `validate:"omitempty,gte=0"`
	MinScore   float64  `validate:"gte=0,lte=1"`
	Limit      int      `validate:"gte=1"`
}

func (q SearchQuery) hasSkills() bool     { return len(q.SkillVectors) > 0 }
func (q SearchQuery) hasLocation() bool   { return q.Location != "" }
func (q SearchQuery) hasExperience() bool { return q.Experience != nil && *q.Experience > 0 }

// Validate checks the query bounds and that at least one criterion is set.
// Search itself tolerates invalid queries; callers validate at their boundary.
func (q SearchQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid search query: %w", err)
	}
	if !q.hasSkills() && !q.hasLocation() && !q.hasExperience() {
		return ErrNoCriteria
	}
	return nil
}

// Searcher runs multi-criteria searches. Scores are normalized by the weight
// of the criteria that could be applied to each candidate.
type Searcher struct {
	weights Weights
	log     *zap.Logger
}

func NewSearcher(weights Weights, log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{weights: weights, log: log}
}

func (s *Searcher) Weights() Weights { return s.weights }

func (s *Searcher) criteria(q SearchQuery) []criterion {
	criteria := make([]criterion, 0, 3)
	if q.hasSkills() {
		criteria = append(criteria, &skillsQueryCriterion{queries: q.SkillVectors, weight: s.weights.Skills})
	}
	if q.hasLocation() {
		criteria = append(criteria, &locationCriterion{location: q.Location, weight: s.weights.Location})
	}
	if q.hasExperience() {
		criteria = append(criteria, &experienceCriterion{required: *q.Experience, weight: s.weights.Experience})
	}
	return criteria
}

// Describe reports which criteria the query enables.
func (s *Searcher) Describe(q SearchQuery) []Status {
	reason := func(enabled bool) string {
		if enabled {
			return ""
		}
		return "not requested"
	}
	return []Status{
		statusOf(CriterionSkills, s.weights.Skills, q.hasSkills(), reason(q.hasSkills())),
		statusOf(CriterionLocation, s.weights.Location, q.hasLocation(), reason(q.hasLocation())),
		statusOf(CriterionExperience, s.weights.Experience, q.hasExperience(), reason(q.hasExperience())),
	}
}

// Search scores every candidate from source against the query and returns
// those whose normalized score reaches q.MinScore, best first, at most
// q.Limit of them.
func (s *Searcher) Search(ctx context.Context, source CandidateSource, q SearchQuery) ([]Result, error) {
	log := logger.WithFields(s.log, logger.EvaluationFields("search", uuid.NewString())...)

	candidates, err := source.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	log.Debug("candidates fetched", zap.Int("count", len(candidates)))

	results := scan(log, candidates, s.criteria(q), scanOptions{
		normalize:      true,
		requireApplied: true,
		minScore:       q.MinScore,
		limit:          q.Limit,
	})

	log.Info("search completed",
		zap.Int("total_candidates", len(candidates)),
		zap.Int("matching_candidates", len(results)),
		topScoreField(results),
	)

	return results, nil
}

func topScoreField(results []Result) zap.Field {
	if len(results) == 0 {
		return zap.String("top_score", "N/A")
	}
	return zap.Float64("top_score", results[0].Scores.Total)
}
