// Package ingest coordinates the write path of the knowledge base:
// extract → chunk → embed → upsert, per source, with partial-failure
// isolation at two levels. A failed source never halts the batch, and a
// failed fragment embedding never fails its source — the fragment is
// skipped and the source lands with a reduced fragment set.
package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Arminious-Now/ai-communication-coach/internal/chunk"
	"github.com/Arminious-Now/ai-communication-coach/internal/knowledge"
	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

// Extractor turns a source into normalized text. Satisfied by
// *source.Extractor.
type Extractor interface {
	Extract(ctx context.Context, src source.Source) (string, error)
}

// FragmentEmbedder maps fragment text to a vector. Satisfied by
// *knowledge.Embedder.
type FragmentEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RecordStore upserts embedded fragments. Satisfied by *knowledge.Store.
type RecordStore interface {
	Upsert(ctx context.Context, records []knowledge.Record) error
}

// Orchestrator runs ingestion batches. Processing is sequential and
// synchronous: one source at a time, one embedding call per fragment.
// Mutation is idempotent upsert-by-id, so re-running a batch overwrites
// rather than duplicates.
type Orchestrator struct {
	extractor Extractor
	embedder  FragmentEmbedder
	store     RecordStore
	opts      chunk.Options
	logger    *slog.Logger
}

// New creates an Orchestrator. logger may be nil to use the default.
func New(extractor Extractor, embedder FragmentEmbedder, store RecordStore, opts chunk.Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		opts:      opts,
		logger:    logger,
	}
}

// IngestRefs resolves raw references (URLs or file paths) and processes the
// batch. A reference that does not resolve becomes a failed source in the
// report, so isolation holds at the parsing boundary too: one bad URL never
// blocks the other arguments.
func (o *Orchestrator) IngestRefs(ctx context.Context, refs []string) *Report {
	report := &Report{
		BatchID: uuid.NewString(),
		Sources: make([]SourceReport, 0, len(refs)),
	}

	logger := o.logger.With("batch_id", report.BatchID)
	logger.Info("starting ingestion batch", "refs", len(refs))

	for _, ref := range refs {
		src, err := source.Resolve(ref)
		if err != nil {
			logger.Warn("unresolvable reference", "ref", ref, "error", err)
			report.Sources = append(report.Sources,
				failed(SourceReport{Source: source.Source{Origin: ref}}, err))
			continue
		}

		sr := o.ingestSource(ctx, src, logger)
		report.Sources = append(report.Sources, sr)
		logger.Info("source processed",
			"source_id", src.ID,
			"state", sr.State.String(),
			"fragments_embedded", sr.FragmentsEmbedded,
			"fragments_total", sr.FragmentsTotal)
	}

	logger.Info("ingestion batch finished",
		"completed", report.Completed(), "failed", report.Failed())
	return report
}

// IngestAll processes each source independently and reports per-source
// outcomes. It never returns an error: failures live in the report.
func (o *Orchestrator) IngestAll(ctx context.Context, sources []source.Source) *Report {
	report := &Report{
		BatchID: uuid.NewString(),
		Sources: make([]SourceReport, 0, len(sources)),
	}

	logger := o.logger.With("batch_id", report.BatchID)
	logger.Info("starting ingestion batch", "sources", len(sources))

	for _, src := range sources {
		sr := o.ingestSource(ctx, src, logger)
		report.Sources = append(report.Sources, sr)
		logger.Info("source processed",
			"source_id", src.ID,
			"state", sr.State.String(),
			"fragments_embedded", sr.FragmentsEmbedded,
			"fragments_total", sr.FragmentsTotal)
	}

	logger.Info("ingestion batch finished",
		"completed", report.Completed(), "failed", report.Failed())
	return report
}

// ingestSource walks one source through the state machine.
func (o *Orchestrator) ingestSource(ctx context.Context, src source.Source, logger *slog.Logger) SourceReport {
	sr := SourceReport{Source: src, State: StatePending}

	sr.State = StateExtracting
	text, err := o.extractor.Extract(ctx, src)
	if err != nil {
		return failed(sr, err)
	}

	sr.State = StateChunking
	fragments, err := chunk.Fragments(src, text, o.opts)
	if err != nil {
		return failed(sr, err)
	}
	sr.FragmentsTotal = len(fragments)

	sr.State = StateEmbedding
	records := make([]knowledge.Record, 0, len(fragments))
	for _, frag := range fragments {
		vector, err := o.embedder.Embed(ctx, frag.Text)
		if err != nil {
			// Skip-and-continue: the fragment is recorded as skipped,
			// not retried, and the source keeps going.
			logger.Warn("skipping fragment",
				"fragment_id", frag.ID, "error", err)
			continue
		}
		records = append(records, knowledge.NewRecord(frag, vector, src))
	}
	sr.FragmentsEmbedded = len(records)

	if err := o.store.Upsert(ctx, records); err != nil {
		// Embedded fragments are discarded for this run; re-ingesting
		// the source regenerates the same ids.
		return failed(sr, err)
	}

	sr.State = StateUpserted
	return sr
}

func failed(sr SourceReport, err error) SourceReport {
	sr.State = StateFailed
	sr.Err = err
	return sr
}
