package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// maxParallelEmbeds bounds concurrent EmbedContent calls in EmbedBatch.
const maxParallelEmbeds = 5

// Embed returns the embedding of text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text to embed must not be empty")
	}

	var resp *genai.EmbedContentResponse
	err := retry(ctx, c.maxRetries, c.logger, func() error {
		var err error
		resp, err = c.models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	c.logger.Debug("text embedded",
		zap.String("embedding_model", c.embeddingModel),
		zap.Int("dimensions", len(resp.Embeddings[0].Values)),
	)

	return toFloat64(resp.Embeddings[0].Values), nil
}

// EmbedBatch embeds every text concurrently. The first failure cancels the
// remaining requests and is returned.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	if len(texts) == 0 {
		return vectors, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelEmbeds)

	for i, text := range texts {
		g.Go(func() error {
			vector, err := c.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("embed text %d: %w", i, err)
			}
			vectors[i] = vector
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("batch embedded", zap.Int("count", len(vectors)))

	return vectors, nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
