package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/Arminious-Now/ai-communication-coach/db"
	"github.com/Arminious-Now/ai-communication-coach/internal/chunk"
	"github.com/Arminious-Now/ai-communication-coach/internal/coach"
	"github.com/Arminious-Now/ai-communication-coach/internal/config"
	"github.com/Arminious-Now/ai-communication-coach/internal/ingest"
	"github.com/Arminious-Now/ai-communication-coach/internal/knowledge"
	"github.com/Arminious-Now/ai-communication-coach/internal/log"
	"github.com/Arminious-Now/ai-communication-coach/internal/retrieval"
	"github.com/Arminious-Now/ai-communication-coach/internal/security"
	"github.com/Arminious-Now/ai-communication-coach/internal/source"
)

// embedRateLimit caps outbound embedding calls. Ingestion issues one call
// per fragment, so a long video can easily queue hundreds of requests.
const embedRateLimit = rate.Limit(5)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup — call Close() to release.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = log.NewNop()
	}

	a := &App{Config: cfg, Logger: logger}

	// On error, release everything already initialized.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	pool, err := provideDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	g, err := provideGenkit(ctx)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := provideEmbedder(g, cfg)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}

	a.Embedder = knowledge.NewEmbedder(embedder, cfg.EmbedderModel,
		rate.NewLimiter(embedRateLimit, 1), logger)
	a.Store = knowledge.NewStore(knowledge.NewPGQuerier(pool, logger), logger)

	transcripts := source.NewHTTPTranscriptClient("", security.NewURL())
	extractor := source.NewExtractor(transcripts, logger)
	a.Ingestor = ingest.New(extractor, a.Embedder, a.Store, chunk.Options{
		Size:    cfg.ChunkSize,
		Overlap: cfg.ChunkOverlap,
	}, logger)

	a.Assembler = retrieval.New(a.Embedder, a.Store, cfg.TopK, logger)
	a.Coach = coach.New(g, cfg.ModelName, a.Assembler, logger)

	_, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	return a, nil
}

// provideGenkit initializes Genkit with the Google AI plugin. The plugin
// reads GEMINI_API_KEY from the environment; config.Validate() has already
// confirmed it is set.
func provideGenkit(ctx context.Context) (*genkit.Genkit, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with gemini provider")
	}
	return g, nil
}

// provideEmbedder looks up the Gemini embedder registered by the plugin.
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) ai.Embedder {
	return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
}

// provideDBPool runs migrations and creates the PostgreSQL connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
