package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// newlineRuns matches one or more consecutive newline characters.
var newlineRuns = regexp.MustCompile(`\n+`)

// Normalize collapses runs of newlines into a single space and trims
// leading/trailing whitespace. PDF page breaks and caption line breaks
// otherwise split sentences across fragment boundaries.
func Normalize(text string) string {
	return strings.TrimSpace(newlineRuns.ReplaceAllString(text, " "))
}

// Extractor turns a Source into one normalized text blob.
type Extractor struct {
	transcripts TranscriptClient
	logger      *slog.Logger
}

// NewExtractor creates an Extractor. logger may be nil to use the default.
func NewExtractor(transcripts TranscriptClient, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{transcripts: transcripts, logger: logger}
}

// Extract fetches and normalizes the text of src.
//
// Failure modes per kind: video fetch/parse problems wrap ErrExtraction,
// unreadable files wrap ErrExtraction, non-UTF-8 text wraps ErrDecode.
func (e *Extractor) Extract(ctx context.Context, src Source) (string, error) {
	var (
		text string
		err  error
	)

	switch src.Kind {
	case KindVideo:
		text, err = e.extractVideo(ctx, src)
	case KindDocument:
		text, err = extractPDF(src.Origin)
	case KindText:
		text, err = extractText(src.Origin)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, src.Kind)
	}
	if err != nil {
		return "", err
	}

	normalized := Normalize(text)
	e.logger.Debug("extracted source",
		"source_id", src.ID, "kind", src.Kind, "length", len(normalized))
	return normalized, nil
}

// extractVideo concatenates transcript segments with single spaces.
// Time alignment is discarded; retrieval only needs the text.
func (e *Extractor) extractVideo(ctx context.Context, src Source) (string, error) {
	segments, err := e.transcripts.Fetch(ctx, src.ID)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " "), nil
}

// extractPDF extracts text page by page in page order, joining pages with a
// newline. Normalize later collapses those into spaces.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening PDF %s: %v", ErrExtraction, path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: reading page %d of %s: %v", ErrExtraction, i, path, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractText decodes raw file bytes as UTF-8 text.
func extractText(path string) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is a user-chosen ingestion target
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrExtraction, path, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrDecode, path)
	}
	return string(raw), nil
}
