package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Arminious-Now/ai-communication-coach/internal/testutil"
)

func TestEmbedder_LiveGemini(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live embedding test in short mode")
	}

	setup := testutil.SetupEmbedder(t)
	embedder := NewEmbedder(setup.Embedder, "text-embedding-004",
		rate.NewLimiter(rate.Limit(2), 1), setup.Logger)

	ctx := context.Background()

	vec, err := embedder.Embed(ctx, "active listening means reflecting back what you heard")
	require.NoError(t, err)
	// text-embedding-004 output matches the vector(768) schema dimension.
	assert.Len(t, vec, 768)

	vectors, err := embedder.EmbedBatch(ctx, []string{
		"pause before replying",
		"ask open questions",
	})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], 768)
	assert.NotEqual(t, vectors[0], vectors[1])
}
