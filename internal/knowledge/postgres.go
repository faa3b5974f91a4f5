package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PGQuerier implements Querier over PostgreSQL + pgvector. Records live in
// the coach_memory table (see db/migrations); similarity is cosine, via the
// <=> operator, so scores are 1 - distance in [0, 1] for normalized
// embeddings.
type PGQuerier struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPGQuerier creates a PGQuerier on an existing connection pool.
func NewPGQuerier(pool *pgxpool.Pool, logger *slog.Logger) *PGQuerier {
	if logger == nil {
		logger = slog.Default()
	}
	return &PGQuerier{pool: pool, logger: logger}
}

const upsertRecordSQL = `
INSERT INTO coach_memory (id, content, embedding, metadata)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
    content    = EXCLUDED.content,
    embedding  = EXCLUDED.embedding,
    metadata   = EXCLUDED.metadata,
    updated_at = now()`

// UpsertRecords writes all records in one batch round trip.
func (q *PGQuerier) UpsertRecords(ctx context.Context, records []Record) error {
	batch := &pgx.Batch{}
	for _, rec := range records {
		metadata, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for %q: %w", rec.ID, err)
		}
		batch.Queue(upsertRecordSQL, rec.ID, rec.Text, pgvector.NewVector(rec.Vector), metadata)
	}

	results := q.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			q.logger.Warn("closing upsert batch", "error", err)
		}
	}()

	for _, rec := range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upserting record %q: %w", rec.ID, err)
		}
	}
	return nil
}

const searchRecordsSQL = `
SELECT id, metadata, 1 - (embedding <=> $1) AS score
FROM coach_memory
ORDER BY embedding <=> $1
LIMIT $2`

// SearchRecords returns the nearest records by cosine similarity.
func (q *PGQuerier) SearchRecords(ctx context.Context, vector []float32, limit int32) ([]Match, error) {
	rows, err := q.pool.Query(ctx, searchRecordsSQL, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			id          string
			metadataRaw []byte
			score       float64
		)
		if err := rows.Scan(&id, &metadataRaw, &score); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}

		var metadata map[string]string
		if err := json.Unmarshal(metadataRaw, &metadata); err != nil {
			q.logger.Warn("failed to parse metadata", "fragment_id", id, "error", err)
			metadata = make(map[string]string)
		}

		matches = append(matches, Match{
			FragmentID: id,
			Score:      float32(score),
			Metadata:   metadata,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating match rows: %w", err)
	}

	return matches, nil
}

// CountRecords counts stored records.
func (q *PGQuerier) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	if err := q.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coach_memory`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}
