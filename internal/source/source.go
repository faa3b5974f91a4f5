// Package source turns heterogeneous inputs (YouTube videos, PDFs, plain
// text files) into normalized text blobs ready for chunking.
//
// A Source carries a deterministic identity derived from its kind and
// origin: the 11-character video id for videos, the base filename for
// files. Re-ingesting the same source therefore produces the same fragment
// ids downstream and overwrites instead of duplicating.
package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies an ingestible source.
type Kind string

const (
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindText     Kind = "text"
)

// Label returns the short id prefix used in fragment identifiers.
func (k Kind) Label() string {
	switch k {
	case KindVideo:
		return "yt"
	case KindDocument:
		return "doc"
	case KindText:
		return "txt"
	default:
		return string(k)
	}
}

// Source is one ingestible unit.
type Source struct {
	// ID is derived deterministically from kind and origin.
	ID string

	// Kind classifies the extraction path.
	Kind Kind

	// Origin is the URL or filename the source came from. It is carried
	// into fragment metadata as the citation string.
	Origin string
}

// videoIDPattern matches the 11-character YouTube video identifier after
// either "v=" or a path separator, covering both
// https://www.youtube.com/watch?v=<id> and https://youtu.be/<id> forms.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ParseVideoID extracts the video identifier from a YouTube URL.
// Returns ErrInvalidReference if no 11-character id segment is present.
func ParseVideoID(rawURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidReference, rawURL)
	}
	return m[1], nil
}

// NewVideo builds a video Source from a YouTube URL.
func NewVideo(rawURL string) (Source, error) {
	id, err := ParseVideoID(rawURL)
	if err != nil {
		return Source{}, err
	}
	return Source{ID: id, Kind: KindVideo, Origin: rawURL}, nil
}

// NewFile builds a document or text Source from a file path. PDFs are
// documents, everything else is treated as plain text.
func NewFile(path string) Source {
	kind := KindText
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		kind = KindDocument
	}
	return Source{ID: filepath.Base(path), Kind: kind, Origin: path}
}

// Resolve classifies a raw CLI argument: http(s) references are treated as
// YouTube URLs, everything else as a local file path.
func Resolve(arg string) (Source, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return NewVideo(arg)
	}
	return NewFile(arg), nil
}
