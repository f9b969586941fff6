package gemini

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestEmbedConvertsValues(t *testing.T) {
	models := &fakeModels{embeddings: map[string][]float32{"golang": {0.5, -0.25, 1}}}
	c := newClient(models, Config{}, zap.NewNop())

	vector, err := c.Embed(context.Background(), "  golang ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expect := []float64{0.5, -0.25, 1}
	if !reflect.DeepEqual(vector, expect) {
		t.Fatalf("expected %v, got %v", expect, vector)
	}
}

func TestEmbedRejectsEmptyText(t *testing.T) {
	models := &fakeModels{}
	c := newClient(models, Config{}, zap.NewNop())

	if _, err := c.Embed(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty text")
	}
	if models.embedCalls != 0 {
		t.Fatalf("expected no calls, got %d", models.embedCalls)
	}
}

func TestEmbedRetriesTransientErrors(t *testing.T) {
	withoutBackOff(t)

	models := &fakeModels{embedErr: genai.APIError{Code: http.StatusServiceUnavailable}}
	c := newClient(models, Config{MaxRetries: 3}, zap.NewNop())

	if _, err := c.Embed(context.Background(), "golang"); err == nil {
		t.Fatal("expected error")
	}
	if models.embedCalls != 3 {
		t.Fatalf("expected 3 calls, got %d", models.embedCalls)
	}
}

func TestEmbedBatchKeepsInputOrder(t *testing.T) {
	models := &fakeModels{embeddings: map[string][]float32{
		"go":         {1, 0},
		"kubernetes": {0, 1},
		"postgres":   {1, 1},
	}}
	c := newClient(models, Config{}, zap.NewNop())

	vectors, err := c.EmbedBatch(context.Background(), []string{"postgres", "go", "kubernetes"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expect := [][]float64{{1, 1}, {1, 0}, {0, 1}}
	if !reflect.DeepEqual(vectors, expect) {
		t.Fatalf("expected %v, got %v", expect, vectors)
	}
}

func TestEmbedBatchFailsOnAnyError(t *testing.T) {
	models := &fakeModels{embeddings: map[string][]float32{"go": {1, 0}}}
	c := newClient(models, Config{}, zap.NewNop())

	if _, err := c.EmbedBatch(context.Background(), []string{"go", "cobol"}); err == nil {
		t.Fatal("expected error for unknown text")
	}
}

func TestEmbedBatchEmpty(t *testing.T) {
	c := newClient(&fakeModels{}, Config{}, zap.NewNop())

	vectors, err := c.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("expected no vectors, got %d", len(vectors))
	}
}
