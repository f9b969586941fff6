package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank all candidates against a stored job",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "id of the job to rank candidates for")
	rankCmd.MarkFlagRequired("job")
	addEvaluationFlags(rankCmd)
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	weights, minScore, limit := evaluationSettings(config.Rank, matching.DefaultRankWeights)
	minScore, limit = overrideFromFlags(cmd, minScore, limit)

	jobID, _ := cmd.Flags().GetString("job")

	st, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	ranker := matching.NewRanker(weights, logger)

	logger.Info("starting the ranking",
		zap.String("job_id", jobID),
		zap.Float64("min_score", minScore),
		zap.Int("limit", limit),
	)

	results, err := ranker.RankByID(ctx, st, jobID, st, minScore, limit)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	r := newReport(results, describeJob(ctx, st, jobID, ranker, logger))
	logSummary(logger, r.Summary)

	printAndFollowUp(cmd, r, logger)
}

// describeJob reports the criteria used for jobID. A missing job was already
// reported by RankByID and is described as having no data.
func describeJob(ctx context.Context, jobs matching.JobSource, jobID string, ranker *matching.Ranker, logger *zap.Logger) []matching.Status {
	job, err := jobs.GetJob(ctx, jobID)
	if err != nil {
		if !errors.Is(err, matching.ErrJobNotFound) {
			logger.Debug("loading job for the criteria report", zap.String("job_id", jobID), zap.Error(err))
		}
		job = nil
	}
	return ranker.Describe(job)
}
