// Package retrieval assembles citation-annotated context blocks for the
// downstream generator: the read path of the knowledge base.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Arminious-Now/ai-communication-coach/internal/knowledge"
)

// QueryEmbedder maps query text to a vector. Satisfied by
// *knowledge.Embedder.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// MatchStore performs nearest-neighbor queries. Satisfied by
// *knowledge.Store.
type MatchStore interface {
	Query(ctx context.Context, vector []float32, opts ...knowledge.SearchOption) ([]knowledge.Match, error)
}

// Assembler embeds a live query, fetches the top matches, and renders them
// into a context string for the generator.
type Assembler struct {
	embedder QueryEmbedder
	store    MatchStore
	topK     int
	logger   *slog.Logger
}

// New creates an Assembler. topK <= 0 falls back to knowledge.DefaultTopK;
// logger may be nil to use the default.
func New(embedder QueryEmbedder, store MatchStore, topK int, logger *slog.Logger) *Assembler {
	if topK <= 0 {
		topK = knowledge.DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		embedder: embedder,
		store:    store,
		topK:     topK,
		logger:   logger,
	}
}

// AssembleContext returns the retrieved knowledge for query as a single
// string: one "[Source: origin]\ntext" block per match in score order,
// blocks separated by a blank line.
//
// No matches yields an empty string, not an error; the generator must
// handle an empty context gracefully.
func (a *Assembler) AssembleContext(ctx context.Context, query string) (string, error) {
	vector, err := a.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	matches, err := a.store.Query(ctx, vector, knowledge.WithTopK(a.topK))
	if err != nil {
		return "", fmt.Errorf("querying knowledge store: %w", err)
	}

	if len(matches) == 0 {
		a.logger.Debug("no matches for query")
		return "", nil
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, fmt.Sprintf("[Source: %s]\n%s",
			m.Metadata[knowledge.MetaSource], m.Metadata[knowledge.MetaText]))
	}

	a.logger.Debug("assembled context", "matches", len(matches))
	return strings.Join(blocks, "\n\n"), nil
}
