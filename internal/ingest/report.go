package ingest

import (
	"fmt"

	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

// SourceReport records the outcome of one source.
type SourceReport struct {
	Source source.Source
	State  State

	// FragmentsTotal is how many fragments chunking produced;
	// FragmentsEmbedded how many survived embedding. Skipped fragments
	// are the difference — they are logged but surfaced only in this
	// aggregate.
	FragmentsTotal    int
	FragmentsEmbedded int

	// Err is set when State is StateFailed.
	Err error
}

// Summary renders a human-readable status line for the source.
func (r SourceReport) Summary() string {
	if r.State == StateFailed {
		return fmt.Sprintf("%s: failed: %v", r.Source.Origin, r.Err)
	}
	return fmt.Sprintf("%s: %s, processed %d of %d fragments",
		r.Source.Origin, r.State, r.FragmentsEmbedded, r.FragmentsTotal)
}

// Report is the outcome of one ingestion batch.
type Report struct {
	// BatchID identifies this run in logs.
	BatchID string

	Sources []SourceReport
}

// Completed counts sources that reached StateUpserted.
func (r *Report) Completed() int {
	n := 0
	for _, s := range r.Sources {
		if s.State == StateUpserted {
			n++
		}
	}
	return n
}

// Failed counts sources that stopped at StateFailed.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if s.State == StateFailed {
			n++
		}
	}
	return n
}

// Progress renders "completedSources / totalSources".
func (r *Report) Progress() string {
	return fmt.Sprintf("%d / %d", r.Completed(), len(r.Sources))
}
