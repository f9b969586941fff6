package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

const (
	PromptShowSummary  = "Show summary"
	PromptShowCriteria = "Show criteria"
	PromptResultsFile  = "Dump results to file"
	PromptExit         = "Exit"

	outputTable = "table"
	outputJSON  = "json"
)

var errExit = errors.New("exit requested")

var followUp = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowSummary, PromptShowCriteria, PromptResultsFile, PromptExit},
}

type report struct {
	Results  []matching.Result `json:"results"`
	Summary  matching.Summary  `json:"summary"`
	Criteria []matching.Status `json:"criteria"`
}

func newReport(results []matching.Result, criteria []matching.Status) *report {
	return &report{Results: results, Summary: matching.Summarize(results), Criteria: criteria}
}

func writeResults(w io.Writer, results []matching.Result, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "", outputTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tCANDIDATE\tTOTAL\tSKILLS\tLOCATION\tEXPERIENCE")
		for i, r := range results {
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
				i+1, r.Candidate.ID, r.Scores.Total, r.Scores.Skills, r.Scores.Location, r.Scores.Experience)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeSummary(w io.Writer, summary matching.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func writeCriteria(w io.Writer, criteria []matching.Status) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CRITERION\tENABLED\tWEIGHT\tREASON")
	for _, c := range criteria {
		fmt.Fprintf(tw, "%s\t%t\t%.2f\t%s\n", c.Name, c.Enabled, c.Weight, c.Reason)
	}
	return tw.Flush()
}

func (r *report) dumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", app+"_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// interact shows the follow-up menu until the user exits.
func interact(r *report, logger *zap.Logger) {
	for {
		_, action, err := followUp.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, r, logger, os.Stdout); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, r *report, logger *zap.Logger, w io.Writer) error {
	switch action {
	case PromptShowSummary:
		return writeSummary(w, r.Summary)
	case PromptShowCriteria:
		return writeCriteria(w, r.Criteria)
	case PromptResultsFile:
		filename, err := r.dumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func logSummary(logger *zap.Logger, summary matching.Summary) {
	logger.Info("results summary",
		zap.Int("count", summary.Count),
		zap.Float64("avg_score", summary.AvgScore),
		zap.Float64("max_score", summary.MaxScore),
		zap.Float64("min_score", summary.MinScore),
		zap.Int("excellent", summary.Distribution.Excellent),
		zap.Int("good", summary.Distribution.Good),
		zap.Int("fair", summary.Distribution.Fair),
	)
}
