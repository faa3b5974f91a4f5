// Package chunk splits normalized source text into overlapping fixed-size
// fragments sized for embedding.
//
// Chunking is deliberately window-based rather than sentence- or
// token-aware: a fixed window with fixed overlap is deterministic and
// restartable, so the same source always yields the same fragment sequence
// and the same fragment ids. Overlap exists solely to keep context that
// straddles a window boundary retrievable.
package chunk

import (
	"errors"
	"fmt"

	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

var (
	// ErrInvalidSize indicates a non-positive chunk size.
	ErrInvalidSize = errors.New("invalid chunk size")

	// ErrInvalidOverlap indicates an overlap that would never advance the
	// window (overlap >= size) or a negative overlap.
	ErrInvalidOverlap = errors.New("invalid chunk overlap")
)

const (
	// DefaultSize and DefaultOverlap are the chunking policy, in runes.
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// Options configures the chunking window.
type Options struct {
	// Size is the window length in runes.
	Size int

	// Overlap is how many trailing runes of one window reappear at the
	// start of the next.
	Overlap int
}

// DefaultOptions returns the standard chunking policy.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Overlap: DefaultOverlap}
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidSize, o.Size)
	}
	if o.Overlap < 0 || o.Overlap >= o.Size {
		return fmt.Errorf("%w: overlap must be in [0, size), got overlap=%d size=%d",
			ErrInvalidOverlap, o.Overlap, o.Size)
	}
	return nil
}

// Window is one chunk of text with its position in the normalized source.
// Offsets are rune positions so multi-byte text never splits mid-character.
type Window struct {
	Text  string
	Start int
	End   int
}

// Split cuts text into overlapping windows.
//
// Starting at offset 0 it takes [offset, offset+size) clipped to the text
// length, then advances by size-overlap until the offset passes the end.
// Empty input yields no windows and no error; input shorter than size
// yields exactly one window holding the whole text.
func Split(text string, opts Options) ([]Window, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := opts.Size - opts.Overlap
	var windows []Window
	for off := 0; off < len(runes); off += step {
		end := off + opts.Size
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, Window{
			Text:  string(runes[off:end]),
			Start: off,
			End:   end,
		})
	}
	return windows, nil
}

// Fragment is a chunk bound to its source with a stable identity.
//
// ID is "{kindLabel}_{sourceID}_{ordinal}" (e.g. yt_dQw4w9WgXcQ_0,
// doc_notes.pdf_3): globally unique across sources and re-derivable from
// the same source and chunking parameters, which makes re-ingestion an
// overwrite rather than an append. Ordinals are dense from zero.
type Fragment struct {
	ID       string
	SourceID string
	Ordinal  int
	Text     string
	Start    int
	End      int
}

// FragmentID derives the stable fragment identifier.
func FragmentID(src source.Source, ordinal int) string {
	return fmt.Sprintf("%s_%s_%d", src.Kind.Label(), src.ID, ordinal)
}

// Fragments chunks normalized text and binds each window to src.
func Fragments(src source.Source, text string, opts Options) ([]Fragment, error) {
	windows, err := Split(text, opts)
	if err != nil {
		return nil, err
	}

	fragments := make([]Fragment, 0, len(windows))
	for i, w := range windows {
		fragments = append(fragments, Fragment{
			ID:       FragmentID(src, i),
			SourceID: src.ID,
			Ordinal:  i,
			Text:     w.Text,
			Start:    w.Start,
			End:      w.End,
		})
	}
	return fragments, nil
}
