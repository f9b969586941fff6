package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/store/file"
)

func TestEvaluationSettingsDefaults(t *testing.T) {
	weights, minScore, limit := evaluationSettings(nil, matching.DefaultSearchWeights)

	if weights != matching.DefaultSearchWeights {
		t.Fatalf("unexpected weights: %+v", weights)
	}
	if minScore != matching.DefaultMinScore || limit != matching.DefaultLimit {
		t.Fatalf("unexpected defaults: %v %d", minScore, limit)
	}
}

func TestEvaluationSettingsOverrides(t *testing.T) {
	skills, location, experience, title := 1.0, 0.0, 0.0, 0.0
	minScore := 0.0

	weights, gotMin, limit := evaluationSettings(&EvaluationConfig{
		Weights: &WeightsConfig{
			Skills:     &skills,
			Location:   &location,
			Experience: &experience,
			Title:      &title,
		},
		MinScore: &minScore,
		Limit:    3,
	}, matching.DefaultRankWeights)

	if weights != (matching.Weights{Skills: 1}) {
		t.Fatalf("unexpected weights: %+v", weights)
	}
	if gotMin != 0 || limit != 3 {
		t.Fatalf("unexpected overrides: %v %d", gotMin, limit)
	}
}

func TestEvaluationSettingsPartialWeights(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(strings.NewReader("search:\n  weights:\n    skills: 0.8\n")); err != nil {
		t.Fatalf("reading config: %v", err)
	}

	cfg, err := getConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	weights, _, _ := evaluationSettings(cfg.Search, matching.DefaultSearchWeights)

	expected := matching.Weights{Skills: 0.8, Location: 0.2, Experience: 0.2}
	if weights != expected {
		t.Fatalf("expected %+v, got %+v", expected, weights)
	}
}

func TestOpenStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := openStore(context.Background(), StoreConfig{Driver: "FILE", Path: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer st.Close()

	if _, ok := st.(*file.Store); !ok {
		t.Fatalf("expected file store, got %T", st)
	}
}

func TestOpenStoreUnsupportedDriver(t *testing.T) {
	if _, err := openStore(context.Background(), StoreConfig{Driver: "mongo"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenStorePostgresNeedsURL(t *testing.T) {
	t.Setenv("RANKER_DATABASE_URL", "")

	_, err := openStore(context.Background(), StoreConfig{Driver: "postgres"}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "database url") {
		t.Fatalf("expected missing database url error, got %v", err)
	}
}

func TestNewAIClientErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	tests := []struct {
		name   string
		config *AIConfig
		expect string
	}{
		{name: "nil config", config: nil, expect: "ai is disabled"},
		{name: "disabled", config: &AIConfig{Enabled: false}, expect: "ai is disabled"},
		{name: "unknown provider", config: &AIConfig{Enabled: true, Provider: "openai"}, expect: "unsupported ai provider"},
		{name: "missing key", config: &AIConfig{Enabled: true}, expect: "gemini api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAIClient(context.Background(), tt.config, zap.NewNop())
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}
}
