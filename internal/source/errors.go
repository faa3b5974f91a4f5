package source

import "errors"

var (
	// ErrInvalidReference indicates a video URL without a parseable
	// 11-character video identifier.
	ErrInvalidReference = errors.New("invalid video reference")

	// ErrExtraction indicates an unreachable or malformed source.
	ErrExtraction = errors.New("extraction failed")

	// ErrDecode indicates raw bytes that are not valid UTF-8 text.
	ErrDecode = errors.New("invalid text encoding")

	// ErrUnsupportedKind indicates a source kind the extractor does not handle.
	ErrUnsupportedKind = errors.New("unsupported source kind")
)
