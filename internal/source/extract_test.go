package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTranscriptClient returns canned segments or a fixed error.
type stubTranscriptClient struct {
	segments []TranscriptSegment
	err      error
	lastID   string
}

func (s *stubTranscriptClient) Fetch(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	s.lastID = videoID
	if s.err != nil {
		return nil, s.err
	}
	return s.segments, nil
}

func TestExtract_Video(t *testing.T) {
	transcripts := &stubTranscriptClient{
		segments: []TranscriptSegment{
			{Start: 0, Dur: 2.5, Text: "first segment"},
			{Start: 2.5, Dur: 3.0, Text: "second\nsegment"},
		},
	}
	extractor := NewExtractor(transcripts, nil)

	src, err := NewVideo("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	text, err := extractor.Extract(context.Background(), src)
	require.NoError(t, err)

	// Segments joined with spaces, newline inside a segment normalized away.
	assert.Equal(t, "first segment second segment", text)
	assert.Equal(t, "dQw4w9WgXcQ", transcripts.lastID)
}

func TestExtract_VideoFetchFailure(t *testing.T) {
	transcripts := &stubTranscriptClient{
		err: errors.New("captions disabled"),
	}
	extractor := NewExtractor(transcripts, nil)

	src := Source{ID: "dQw4w9WgXcQ", Kind: KindVideo, Origin: "https://youtu.be/dQw4w9WgXcQ"}
	_, err := extractor.Extract(context.Background(), src)
	require.Error(t, err)
}

func TestExtract_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("  some notes\nwith a second line\n"), 0o600))

	extractor := NewExtractor(&stubTranscriptClient{}, nil)

	text, err := extractor.Extract(context.Background(), NewFile(path))
	require.NoError(t, err)
	assert.Equal(t, "some notes with a second line", text)
}

func TestExtract_TextFileNotUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o600))

	extractor := NewExtractor(&stubTranscriptClient{}, nil)

	_, err := extractor.Extract(context.Background(), NewFile(path))
	require.ErrorIs(t, err, ErrDecode)
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := NewExtractor(&stubTranscriptClient{}, nil)

	_, err := extractor.Extract(context.Background(), NewFile("does-not-exist.txt"))
	require.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_MissingPDF(t *testing.T) {
	extractor := NewExtractor(&stubTranscriptClient{}, nil)

	_, err := extractor.Extract(context.Background(), NewFile("does-not-exist.pdf"))
	require.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_UnsupportedKind(t *testing.T) {
	extractor := NewExtractor(&stubTranscriptClient{}, nil)

	_, err := extractor.Extract(context.Background(), Source{ID: "x", Kind: Kind("audio")})
	require.ErrorIs(t, err, ErrUnsupportedKind)
}
