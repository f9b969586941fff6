package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
)

// Ranker ranks candidates against one job. Unlike Searcher it keeps the raw
// weighted sum: a criterion the candidate has no data for contributes zero
// and the total is not renormalized.
type Ranker struct {
	weights Weights
	log     *zap.Logger
}

func NewRanker(weights Weights, log *zap.Logger) *Ranker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ranker{weights: weights, log: log}
}

func (r *Ranker) Weights() Weights { return r.weights }

func (r *Ranker) criteria(job *Job) []criterion {
	criteria := make([]criterion, 0, 3)
	if len(job.RequirementsVector) > 0 {
		criteria = append(criteria, &skillsJobCriterion{requirements: job.RequirementsVector, weight: r.weights.Skills})
	}
	if hasRequiredExperience(job) {
		criteria = append(criteria, &experienceCriterion{
			required:     *job.RequiredExperience,
			weight:       r.weights.Experience,
			positiveOnly: true,
		})
	}
	if job.Location != "" {
		criteria = append(criteria, &locationCriterion{location: job.Location, weight: r.weights.Location})
	}
	return criteria
}

func hasRequiredExperience(job *Job) bool {
	return job.RequiredExperience != nil && *job.RequiredExperience > 0
}

// Describe reports which criteria take part when ranking for job.
func (r *Ranker) Describe(job *Job) []Status {
	if job == nil {
		job = &Job{}
	}

	missing := func(ok bool, what string) string {
		if ok {
			return ""
		}
		return "job has no " + what
	}

	hasSkills := len(job.RequirementsVector) > 0
	hasExperience := hasRequiredExperience(job)
	hasLocation := job.Location != ""

	return []Status{
		statusOf(CriterionSkills, r.weights.Skills, hasSkills, missing(hasSkills, "requirements embedding")),
		statusOf(CriterionExperience, r.weights.Experience, hasExperience, missing(hasExperience, "required experience")),
		statusOf(CriterionTitle, r.weights.Title, false, "title matching is not implemented"),
		statusOf(CriterionLocation, r.weights.Location, hasLocation, missing(hasLocation, "location")),
	}
}

// Rank scores every candidate from source against job and returns those whose
// total reaches minScore, best first, at most limit of them.
func (r *Ranker) Rank(ctx context.Context, job *Job, source CandidateSource, minScore float64, limit int) ([]Result, error) {
	return r.rank(ctx, r.evaluationLogger(), job, source, minScore, limit)
}

func (r *Ranker) evaluationLogger() *zap.Logger {
	return logger.WithFields(r.log, logger.EvaluationFields("rank", uuid.NewString())...)
}

func (r *Ranker) rank(ctx context.Context, log *zap.Logger, job *Job, source CandidateSource, minScore float64, limit int) ([]Result, error) {
	if job == nil {
		log.Warn("job is required for ranking; returning empty result")
		return []Result{}, nil
	}
	log = log.With(zap.String("job_id", job.ID))

	candidates, err := source.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if len(candidates) == 0 {
		log.Info("no candidates found to rank")
		return []Result{}, nil
	}

	log.Debug("candidates fetched", zap.Int("count", len(candidates)))

	results := scan(log, candidates, r.criteria(job), scanOptions{
		minScore: minScore,
		limit:    limit,
	})

	if len(results) == 0 {
		log.Info("no candidates matched minimum score", zap.Float64("min_score", minScore))
		return results, nil
	}

	log.Info("ranking completed",
		zap.Int("total_candidates", len(candidates)),
		zap.Int("ranked_candidates", len(results)),
		topScoreField(results),
	)

	return results, nil
}

// RankByID loads the job from jobs and ranks candidates for it. An unknown job
// yields an empty result rather than an error.
func (r *Ranker) RankByID(ctx context.Context, jobs JobSource, jobID string, source CandidateSource, minScore float64, limit int) ([]Result, error) {
	log := r.evaluationLogger()

	job, err := jobs.GetJob(ctx, jobID)
	if err != nil && !errors.Is(err, ErrJobNotFound) {
		return nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	if err != nil || job == nil {
		log.Error("job not found", zap.String("job_id", jobID))
		return []Result{}, nil
	}

	return r.rank(ctx, log, job, source, minScore, limit)
}
