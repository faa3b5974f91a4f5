package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/Arminious-Now/ai-communication-coach/internal/chunk"
	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

// mockQuerier implements Querier for testing with call tracking.
type mockQuerier struct {
	upsertErr error
	searchErr error
	countErr  error

	searchResults []Match
	countResult   int64

	upsertCalls int
	searchCalls int
	countCalls  int

	lastUpserted    []Record
	lastSearchLimit int32
}

func (m *mockQuerier) UpsertRecords(ctx context.Context, records []Record) error {
	m.upsertCalls++
	m.lastUpserted = records
	return m.upsertErr
}

func (m *mockQuerier) SearchRecords(ctx context.Context, vector []float32, limit int32) ([]Match, error) {
	m.searchCalls++
	m.lastSearchLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockQuerier) CountRecords(ctx context.Context) (int64, error) {
	m.countCalls++
	return m.countResult, m.countErr
}

func TestStore_Upsert(t *testing.T) {
	querier := &mockQuerier{}
	store := NewStore(querier, nil)

	records := []Record{
		{ID: "yt_abc123def45_0", Text: "fragment text", Vector: []float32{0.1, 0.2}},
	}
	if err := store.Upsert(context.Background(), records); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if querier.upsertCalls != 1 {
		t.Errorf("expected 1 upsert call, got %d", querier.upsertCalls)
	}
	if len(querier.lastUpserted) != 1 || querier.lastUpserted[0].ID != "yt_abc123def45_0" {
		t.Errorf("unexpected upserted records: %+v", querier.lastUpserted)
	}
}

func TestStore_Upsert_EmptyIsNoOp(t *testing.T) {
	querier := &mockQuerier{}
	store := NewStore(querier, nil)

	if err := store.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("Upsert of empty slice should succeed: %v", err)
	}
	if querier.upsertCalls != 0 {
		t.Errorf("empty upsert must not reach the querier, got %d calls", querier.upsertCalls)
	}
}

func TestStore_Upsert_WrapsStoreError(t *testing.T) {
	querier := &mockQuerier{upsertErr: errors.New("connection refused")}
	store := NewStore(querier, nil)

	err := store.Upsert(context.Background(), []Record{{ID: "txt_notes.txt_0"}})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestStore_Query_DefaultTopK(t *testing.T) {
	querier := &mockQuerier{
		searchResults: []Match{
			{FragmentID: "yt_abc123def45_0", Score: 0.91},
			{FragmentID: "yt_abc123def45_3", Score: 0.84},
		},
	}
	store := NewStore(querier, nil)

	matches, err := store.Query(context.Background(), []float32{0.1, 0.2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if querier.lastSearchLimit != DefaultTopK {
		t.Errorf("expected default limit %d, got %d", DefaultTopK, querier.lastSearchLimit)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestStore_Query_WithTopK(t *testing.T) {
	querier := &mockQuerier{}
	store := NewStore(querier, nil)

	if _, err := store.Query(context.Background(), []float32{0.1}, WithTopK(7)); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if querier.lastSearchLimit != 7 {
		t.Errorf("expected limit 7, got %d", querier.lastSearchLimit)
	}

	// Non-positive values are ignored and the default stands.
	if _, err := store.Query(context.Background(), []float32{0.1}, WithTopK(0)); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if querier.lastSearchLimit != DefaultTopK {
		t.Errorf("expected default limit %d, got %d", DefaultTopK, querier.lastSearchLimit)
	}
}

func TestStore_Query_WrapsStoreError(t *testing.T) {
	querier := &mockQuerier{searchErr: errors.New("index offline")}
	store := NewStore(querier, nil)

	_, err := store.Query(context.Background(), []float32{0.1})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestStore_Count(t *testing.T) {
	querier := &mockQuerier{countResult: 42}
	store := NewStore(querier, nil)

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
}

func TestNewRecord_Metadata(t *testing.T) {
	src := source.Source{ID: "dQw4w9WgXcQ", Kind: source.KindVideo, Origin: "https://youtu.be/dQw4w9WgXcQ"}
	frag := chunk.Fragment{ID: "yt_dQw4w9WgXcQ_2", SourceID: src.ID, Ordinal: 2, Text: "fragment body"}

	rec := NewRecord(frag, []float32{0.5, 0.6}, src)

	if rec.ID != frag.ID {
		t.Errorf("record id should be the fragment id, got %q", rec.ID)
	}
	if rec.Metadata[MetaText] != "fragment body" {
		t.Errorf("metadata text mismatch: %q", rec.Metadata[MetaText])
	}
	if rec.Metadata[MetaSource] != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("metadata source mismatch: %q", rec.Metadata[MetaSource])
	}
	if rec.Metadata[MetaType] != "video" {
		t.Errorf("metadata type mismatch: %q", rec.Metadata[MetaType])
	}
}
