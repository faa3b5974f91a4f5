// Package app wires the application together: Genkit, the database pool,
// the knowledge store, and the ingestion and retrieval pipelines. All
// dependencies are injected through constructors; nothing here is a
// package-level singleton.
package app

import (
	"context"

	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arminious-Now/ai-communication-coach/internal/coach"
	"github.com/Arminious-Now/ai-communication-coach/internal/config"
	"github.com/Arminious-Now/ai-communication-coach/internal/ingest"
	"github.com/Arminious-Now/ai-communication-coach/internal/knowledge"
	"github.com/Arminious-Now/ai-communication-coach/internal/log"
	"github.com/Arminious-Now/ai-communication-coach/internal/retrieval"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	DBPool   *pgxpool.Pool
	Store    *knowledge.Store
	Embedder *knowledge.Embedder

	Ingestor  *ingest.Orchestrator
	Assembler *retrieval.Assembler
	Coach     *coach.Coach

	cancel context.CancelFunc
}

// Close releases all resources. Safe to call on a partially built App.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}

	if a.DBPool != nil {
		a.DBPool.Close()
		if a.Logger != nil {
			a.Logger.Info("database pool closed")
		}
	}

	return nil
}
