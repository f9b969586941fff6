package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai/gemini"
	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/secrets"
	"github.com/spigell/resume-ranker/internal/store"
	"github.com/spigell/resume-ranker/internal/store/file"
	"github.com/spigell/resume-ranker/internal/store/postgres"
)

func openStore(ctx context.Context, cfg StoreConfig, logger *zap.Logger) (store.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	switch driver {
	case "", store.DriverFile:
		fs, err := file.Open(cfg.Path, logger.With(zap.String("store", store.DriverFile)))
		if err != nil {
			return nil, err
		}
		return fs, nil
	case store.DriverPostgres:
		pgConfig := cfg.Postgres
		if cfg.DatabaseURLFile != "" || (pgConfig.URL == "" && pgConfig.Host == "") {
			url, err := secrets.Load(secrets.Source{
				Name:  "database url",
				File:  cfg.DatabaseURLFile,
				Env:   "RANKER_DATABASE_URL",
				Value: pgConfig.URL,
			})
			if err != nil {
				return nil, fmt.Errorf("%w (set store.database-url-file or RANKER_DATABASE_URL_FILE)", err)
			}
			pgConfig.URL = url
		}

		db, err := postgres.Connect(ctx, pgConfig, logger.With(zap.String("store", store.DriverPostgres)))
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

// newAIClient builds the configured provider. The client serves both as
// ai.Parser and ai.Embedder.
func newAIClient(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Client, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai is disabled; enable it under the 'ai' key to embed or parse text")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	return gemini.New(ctx, gemini.Config{
		APIKey:         apiKey,
		Model:          gcfg.Model,
		EmbeddingModel: gcfg.EmbeddingModel,
		MaxRetries:     gcfg.MaxRetries,
		MaxLogLength:   gcfg.MaxLogLength,
	}, logger)
}

// evaluationSettings merges configured overrides into the command defaults.
func evaluationSettings(cfg *EvaluationConfig, weights matching.Weights) (matching.Weights, float64, int) {
	minScore, limit := matching.DefaultMinScore, matching.DefaultLimit
	if cfg == nil {
		return weights, minScore, limit
	}

	if cfg.Weights != nil {
		weights = cfg.Weights.apply(weights)
	}
	if cfg.MinScore != nil {
		minScore = *cfg.MinScore
	}
	if cfg.Limit > 0 {
		limit = cfg.Limit
	}

	return weights, minScore, limit
}

func (w *WeightsConfig) apply(weights matching.Weights) matching.Weights {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&weights.Skills, w.Skills)
	set(&weights.Location, w.Location)
	set(&weights.Experience, w.Experience)
	set(&weights.Title, w.Title)
	return weights
}
