package ingest

// State is the lifecycle stage of one source within an ingestion batch.
// Sources advance Pending → Extracting → Chunking → Embedding → Upserted,
// or stop at Failed. One source failing never halts the others.
type State int

const (
	StatePending State = iota
	StateExtracting
	StateChunking
	StateEmbedding
	StateUpserted
	StateFailed
)

// String returns the lowercase state name for logs and status output.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExtracting:
		return "extracting"
	case StateChunking:
		return "chunking"
	case StateEmbedding:
		return "embedding"
	case StateUpserted:
		return "upserted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
