package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse, embed and store a resume or a job posting",
}

var ingestCandidateCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Ingest a plain text resume",
	Run: func(cmd *cobra.Command, _ []string) {
		ingestDocument(cmd, false)
	},
}

var ingestJobCmd = &cobra.Command{
	Use:   "job",
	Short: "Ingest a plain text job description",
	Run: func(cmd *cobra.Command, _ []string) {
		ingestDocument(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.AddCommand(ingestCandidateCmd, ingestJobCmd)

	for _, c := range []*cobra.Command{ingestCandidateCmd, ingestJobCmd} {
		c.Flags().StringP("file", "f", "", "file with the document text")
		c.Flags().String("id", "", "record id (generated when empty)")
		c.MarkFlagRequired("file")
	}

	ingestJobCmd.Flags().String("title", "", "job title (parsed from the text when empty)")
	ingestJobCmd.Flags().String("company", "", "company name")
	ingestJobCmd.Flags().String("location", "", "job location (parsed from the text when empty)")
	ingestJobCmd.Flags().Float64("experience", 0, "required years of experience (parsed from the text when unset)")
}

func ingestDocument(cmd *cobra.Command, isJob bool) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path, _ := cmd.Flags().GetString("file")
	id, _ := cmd.Flags().GetString("id")

	text, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading document", zap.Error(err), zap.String("file", path))
	}

	client, err := newAIClient(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building ai client", zap.Error(err))
	}

	st, err := openStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	service := ingest.New(client, client, st, logger)

	var record any
	if isJob {
		in := ingest.JobInput{ID: id, Text: string(text)}
		in.Title, _ = cmd.Flags().GetString("title")
		in.Company, _ = cmd.Flags().GetString("company")
		in.Location, _ = cmd.Flags().GetString("location")
		if cmd.Flags().Changed("experience") {
			years, _ := cmd.Flags().GetFloat64("experience")
			in.RequiredExperience = &years
		}
		record, err = service.Job(ctx, in)
	} else {
		record, err = service.Candidate(ctx, ingest.CandidateInput{ID: id, Text: string(text)})
	}
	if err != nil {
		logger.Fatal("ingesting document", zap.Error(err), zap.String("file", path))
	}

	pretty, _ := json.MarshalIndent(record, "", "  ")
	logger.Debug("stored record", zap.ByteString("record", pretty))
}
