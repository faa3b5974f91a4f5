package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"short form", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch form", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch form with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"id with underscore and dash", "https://youtu.be/a_b-c_d-e_f", "a_b-c_d-e_f", false},
		{"no 11-char segment", "https://example.com/nope", "", true},
		{"id too short", "https://youtu.be/short", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseVideoID(tt.url)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNewVideo(t *testing.T) {
	src, err := NewVideo("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", src.ID)
	assert.Equal(t, KindVideo, src.Kind)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", src.Origin)
}

func TestNewFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantID   string
		wantKind Kind
	}{
		{"pdf", "docs/handbook.pdf", "handbook.pdf", KindDocument},
		{"pdf uppercase extension", "Handbook.PDF", "Handbook.PDF", KindDocument},
		{"plain text", "notes.txt", "notes.txt", KindText},
		{"markdown treated as text", "README.md", "README.md", KindText},
		{"no extension", "/var/data/notes", "notes", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewFile(tt.path)
			assert.Equal(t, tt.wantID, src.ID)
			assert.Equal(t, tt.wantKind, src.Kind)
			assert.Equal(t, tt.path, src.Origin)
		})
	}
}

func TestResolve(t *testing.T) {
	src, err := Resolve("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, KindVideo, src.Kind)

	src, err = Resolve("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, KindText, src.Kind)

	_, err = Resolve("https://youtu.be/nope")
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "yt", KindVideo.Label())
	assert.Equal(t, "doc", KindDocument.Label())
	assert.Equal(t, "txt", KindText.Label())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single newline", "line one\nline two", "line one line two"},
		{"newline run", "page one\n\n\npage two", "page one page two"},
		{"leading and trailing whitespace", "  padded text \n", "padded text"},
		{"already clean", "clean text", "clean text"},
		{"empty", "", ""},
		{"only newlines", "\n\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
