// Package ai declares the language-model capabilities the ranker depends on.
package ai

import (
	"context"
	"fmt"
)

// Kind selects the extraction template used by a Parser.
type Kind string

const (
	KindResume Kind = "resume"
	KindJob    Kind = "job"
)

func (k Kind) Validate() error {
	switch k {
	case KindResume, KindJob:
		return nil
	default:
		return fmt.Errorf("unsupported document kind %q", string(k))
	}
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Parser extracts a structured profile from free text.
type Parser interface {
	Parse(ctx context.Context, text string, kind Kind) (map[string]any, error)
	// TotalExperience estimates the total years of work experience of a parsed
	// resume profile.
	TotalExperience(ctx context.Context, profile map[string]any) (float64, error)
}
