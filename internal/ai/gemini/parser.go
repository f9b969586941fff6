package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
)

var (
	//go:embed prompt_resume.md
	resumePrompt string
	//go:embed prompt_job.md
	jobPrompt string
	//go:embed prompt_experience.md
	experiencePrompt string
)

const (
	resumeSystem     = "You are a professional resume parser. Extract information in the specified JSON format."
	jobSystem        = "You are a professional job description parser. Extract information in the specified JSON format."
	experienceSystem = "You are a calculator that only outputs decimal numbers."

	parseTemperature      = 0.3
	experienceTemperature = 0.1
)

// Parse extracts a structured profile of the given kind from text.
func (c *Client) Parse(ctx context.Context, text string, kind ai.Kind) (map[string]any, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text to parse must not be empty")
	}

	system, template := resumeSystem, resumePrompt
	if kind == ai.KindJob {
		system, template = jobSystem, jobPrompt
	}

	raw, err := c.generate(ctx, generateRequest{
		system:      system,
		prompt:      strings.ReplaceAll(template, "{{TEXT}}", text),
		temperature: parseTemperature,
		json:        true,
	})
	if err != nil {
		return nil, err
	}

	profile, err := parseProfile(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Info("document parsed", zap.String("kind", string(kind)), zap.Int("fields", len(profile)))

	return profile, nil
}

// TotalExperience asks the model to sum the work periods of a parsed resume.
// A profile without experience entries yields 0 without calling the API.
func (c *Client) TotalExperience(ctx context.Context, profile map[string]any) (float64, error) {
	entries, ok := profile["experience"].([]any)
	if !ok || len(entries) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshal experience: %w", err)
	}

	raw, err := c.generate(ctx, generateRequest{
		system:      experienceSystem,
		prompt:      strings.ReplaceAll(experiencePrompt, "{{EXPERIENCE_JSON}}", string(payload)),
		temperature: experienceTemperature,
	})
	if err != nil {
		return 0, err
	}

	years := coerceFloat(extractJSON(raw))
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0, fmt.Errorf("parse total experience from %q", raw)
	}
	years = math.Round(years*100) / 100

	c.logger.Info("total experience calculated", zap.Float64("years", years))

	return years, nil
}

func parseProfile(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("gemini response contains no fields")
	}
	return data, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
