package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/utils"
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find candidates whose skills embedding is closest to the given skills",
	Run: func(cmd *cobra.Command, _ []string) {
		similar(cmd)
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().StringP("skills", "s", "", "comma separated list of skills")
	similarCmd.Flags().Float64("threshold", matching.DefaultSimilarityThreshold, "minimum cosine similarity")
	similarCmd.Flags().Int("limit", matching.DefaultLimit, "maximum number of results")
	similarCmd.Flags().StringP("output", "o", outputTable, "results format: table or json")
	similarCmd.MarkFlagRequired("skills")
}

func similar(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	skillsFlag, _ := cmd.Flags().GetString("skills")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("output")

	skills := utils.SplitList(skillsFlag)
	if len(skills) == 0 {
		logger.Fatal("at least one skill is required")
	}

	client, err := newAIClient(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building ai client", zap.Error(err))
	}

	// Stored skill embeddings are built from space-joined skills.
	vector, err := client.Embed(ctx, strings.Join(skills, " "))
	if err != nil {
		logger.Fatal("embedding skills", zap.Error(err))
	}

	st, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	results, err := matching.NewSearcher(matching.DefaultSearchWeights, logger).Nearest(ctx, st, vector, threshold, limit)
	if err != nil {
		logger.Fatal("similarity lookup failed", zap.Error(err))
	}

	if err := writeResults(cmd.OutOrStdout(), results, format); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}
}
