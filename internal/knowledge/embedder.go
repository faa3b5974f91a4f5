package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"golang.org/x/time/rate"
)

// Embedder maps text to fixed-length vectors through a Genkit ai.Embedder
// with a fixed model identifier. A rate limiter guards the embedding quota:
// ingestion issues one call per fragment.
type Embedder struct {
	embedder ai.Embedder
	model    string
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewEmbedder creates an Embedder. limiter may be nil to disable rate
// limiting; logger may be nil to use the default.
func NewEmbedder(embedder ai.Embedder, model string, limiter *rate.Limiter, logger *slog.Logger) *Embedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Embedder{
		embedder: embedder,
		model:    model,
		limiter:  limiter,
		logger:   logger,
	}
}

// Model returns the fixed embedding model identifier.
func (e *Embedder) Model() string { return e.model }

// Embed maps one text to its embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %v", ErrEmbedding, err)
		}
	}

	resp, err := e.embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{
			ai.DocumentFromText(text, nil),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}

	return resp.Embeddings[0].Embedding, nil
}

// EmbedBatch maps texts to vectors, one call per text. Any single failure
// aborts the batch call; callers that want skip-and-continue semantics
// (the ingestion orchestrator) iterate Embed themselves.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d of %d: %w", i+1, len(texts), err)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}
