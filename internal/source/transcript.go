package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Arminious-Now/ai-communication-coach/internal/security"
)

// TranscriptSegment is one timed caption line. Timing is preserved on the
// wire but discarded during extraction; only segment order matters here.
type TranscriptSegment struct {
	Start float64
	Dur   float64
	Text  string
}

// TranscriptClient fetches the ordered caption segments for a video.
// Defined here, on the consumer side, so tests and alternative transcript
// providers can substitute their own implementation.
type TranscriptClient interface {
	Fetch(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}

// DefaultTranscriptBaseURL is the YouTube timed-text endpoint.
const DefaultTranscriptBaseURL = "https://www.youtube.com/api/timedtext"

// HTTPTranscriptClient fetches transcripts over the timed-text HTTP API.
// Requests go through an SSRF-validating transport since origins are
// user-supplied.
type HTTPTranscriptClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTranscriptClient creates a transcript client. baseURL may be empty
// to use the default endpoint.
func NewHTTPTranscriptClient(baseURL string, validator *security.URL) *HTTPTranscriptClient {
	if baseURL == "" {
		baseURL = DefaultTranscriptBaseURL
	}
	client := &http.Client{Timeout: 30 * time.Second}
	if validator != nil {
		client.Transport = validator.SafeTransport()
	}
	return &HTTPTranscriptClient{baseURL: baseURL, client: client}
}

// timedText mirrors the <transcript><text start dur>…</text></transcript>
// wire format of the timed-text endpoint.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves the English transcript for videoID as ordered segments.
func (c *HTTPTranscriptClient) Fetch(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building transcript request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching transcript for %s: %v", ErrExtraction, videoID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: transcript endpoint returned %s for %s", ErrExtraction, resp.Status, videoID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading transcript body: %v", ErrExtraction, err)
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed transcript for %s: %v", ErrExtraction, videoID, err)
	}
	if len(doc.Texts) == 0 {
		return nil, fmt.Errorf("%w: empty transcript for %s", ErrExtraction, videoID)
	}

	segments := make([]TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		segments = append(segments, TranscriptSegment{
			Start: t.Start,
			Dur:   t.Dur,
			// Caption bodies carry doubly-escaped entities (&amp;#39;)
			Text: html.UnescapeString(html.UnescapeString(t.Body)),
		})
	}

	return segments, nil
}
