package knowledge

import (
	"github.com/Arminious-Now/ai-communication-coach/internal/chunk"
	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

// Namespace is the fixed logical index shared by all ingestion and
// retrieval. It maps to the coach_memory table in db/migrations.
const Namespace = "coach-memory"

// Metadata keys stored with every record.
const (
	MetaText   = "text"
	MetaSource = "source"
	MetaType   = "type"
)

// Record is an embedded fragment: the payload upserted into the store.
type Record struct {
	// ID is the fragment id; upserting the same id replaces the record.
	ID string

	// Text is the fragment text (also carried in Metadata for retrieval).
	Text string

	// Vector is the embedding, dimension fixed by the embedding model.
	Vector []float32

	// Metadata carries text, source origin, and source type.
	Metadata map[string]string
}

// NewRecord builds the store payload for an embedded fragment.
func NewRecord(frag chunk.Fragment, vector []float32, src source.Source) Record {
	return Record{
		ID:     frag.ID,
		Text:   frag.Text,
		Vector: vector,
		Metadata: map[string]string{
			MetaText:   frag.Text,
			MetaSource: src.Origin,
			MetaType:   string(src.Kind),
		},
	}
}

// Match is one query result. Matches are ordered by descending score; a
// source may appear more than once.
type Match struct {
	FragmentID string
	Score      float32
	Metadata   map[string]string
}

// DefaultTopK is the retrieval default when no option is given.
const DefaultTopK = 3

// SearchOption configures a query using the functional options pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK int32
}

// WithTopK sets the maximum number of matches to return.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = int32(k)
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{topK: DefaultTopK}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
