// Package knowledge manages embedded fragments in the vector index: the
// Embedder maps text to vectors, the Store upserts and queries records
// keyed by fragment id.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
)

// Querier defines the raw index operations the Store needs. The interface
// lives on the consumer side (like io.Reader, sql.Driver) so tests can
// substitute a mock and the backing index can change without touching
// callers.
type Querier interface {
	// UpsertRecords inserts or replaces records by id.
	UpsertRecords(ctx context.Context, records []Record) error

	// SearchRecords returns at most limit matches ordered by descending
	// similarity to the query vector.
	SearchRecords(ctx context.Context, vector []float32, limit int32) ([]Match, error)

	// CountRecords counts stored records.
	CountRecords(ctx context.Context) (int64, error)
}

// Store manages embedded fragments with vector search over the fixed
// Namespace. Safe for concurrent use when the underlying Querier is.
type Store struct {
	queries Querier
	logger  *slog.Logger
}

// NewStore creates a Store. logger may be nil to use the default.
func NewStore(queries Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{queries: queries, logger: logger}
}

// Upsert writes records into the index, replacing any record sharing an id.
// Order among records in one call is not significant. Empty input is a
// no-op, not an error.
func (s *Store) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	if err := s.queries.UpsertRecords(ctx, records); err != nil {
		return fmt.Errorf("%w: upserting %d records: %v", ErrStoreUnavailable, len(records), err)
	}

	s.logger.Debug("upserted records", "count", len(records))
	return nil
}

// Query returns the nearest records to vector, at most topK (default 3),
// ordered by descending similarity score. Fewer stored records than topK
// is not an error; an empty index returns no matches.
func (s *Store) Query(ctx context.Context, vector []float32, opts ...SearchOption) ([]Match, error) {
	cfg := buildSearchConfig(opts)

	matches, err := s.queries.SearchRecords(ctx, vector, cfg.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: query failed: %v", ErrStoreUnavailable, err)
	}

	return matches, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	count, err := s.queries.CountRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count failed: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
