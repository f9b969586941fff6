package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/utils"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search candidates by skills, location and experience",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("skills", "s", "", "comma separated list of skills")
	searchCmd.Flags().StringP("location", "l", "", "preferred candidate location")
	searchCmd.Flags().Float64P("experience", "e", 0, "required years of experience (0 means any)")
	addEvaluationFlags(searchCmd)
}

func addEvaluationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-score", matching.DefaultMinScore, "minimum total score of a result")
	cmd.Flags().Int("limit", matching.DefaultLimit, "maximum number of results")
	cmd.Flags().StringP("output", "o", outputTable, "results format: table or json")
	cmd.Flags().BoolP("yes", "y", false, "do not show the follow-up menu")
	cmd.Flags().Bool("summary", false, "print the score summary after the results")
}

// overrideFromFlags applies explicitly set flags on top of configured values.
func overrideFromFlags(cmd *cobra.Command, minScore float64, limit int) (float64, int) {
	if cmd.Flags().Changed("min-score") {
		minScore, _ = cmd.Flags().GetFloat64("min-score")
	}
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}
	return minScore, limit
}

func search(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	weights, minScore, limit := evaluationSettings(config.Search, matching.DefaultSearchWeights)
	minScore, limit = overrideFromFlags(cmd, minScore, limit)

	skillsFlag, _ := cmd.Flags().GetString("skills")
	location, _ := cmd.Flags().GetString("location")
	experience, _ := cmd.Flags().GetFloat64("experience")

	query := matching.SearchQuery{
		Location: location,
		MinScore: minScore,
		Limit:    limit,
	}
	if cmd.Flags().Changed("experience") {
		query.Experience = &experience
	}

	skills := utils.SplitList(skillsFlag)
	if len(skills) > 0 {
		// Placeholder vectors let validation see the requested skills before any API call.
		query.SkillVectors = make([][]float64, len(skills))
	}

	if err := query.Validate(); err != nil {
		logger.Fatal("invalid search request", zap.Error(err))
	}

	if len(skills) > 0 {
		client, err := newAIClient(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("building ai client", zap.Error(err))
		}

		query.SkillVectors, err = client.EmbedBatch(ctx, skills)
		if err != nil {
			logger.Fatal("embedding skills", zap.Error(err), zap.Strings("skills", skills))
		}
	}

	st, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	searcher := matching.NewSearcher(weights, logger)

	logger.Info("starting the search",
		zap.Strings("skills", skills),
		zap.String("location", location),
		zap.Float64("min_score", minScore),
		zap.Int("limit", limit),
	)

	results, err := searcher.Search(ctx, st, query)
	if err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	r := newReport(results, searcher.Describe(query))
	logSummary(logger, r.Summary)

	printAndFollowUp(cmd, r, logger)
}

func printAndFollowUp(cmd *cobra.Command, r *report, logger *zap.Logger) {
	format, _ := cmd.Flags().GetString("output")
	if err := writeResults(os.Stdout, r.Results, format); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		if err := writeSummary(os.Stdout, r.Summary); err != nil {
			logger.Fatal("printing summary", zap.Error(err))
		}
	}

	if len(r.Results) == 0 {
		logger.Info("exiting", zap.String("reason", "no matching candidates"))
		return
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes || format == outputJSON {
		return
	}

	interact(r, logger)
}
