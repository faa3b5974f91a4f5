package knowledge

import "errors"

var (
	// ErrEmbedding indicates a single embedding call failed. Non-fatal for
	// a batch: the orchestrator skips the fragment and continues.
	ErrEmbedding = errors.New("embedding failed")

	// ErrEmptyEmbedding indicates the embedding service returned no vector.
	ErrEmptyEmbedding = errors.New("empty embedding returned")

	// ErrStoreUnavailable indicates the vector index is unreachable.
	// Fatal for the current operation; embedded fragments are discarded
	// for this run rather than queued.
	ErrStoreUnavailable = errors.New("knowledge store unavailable")
)
