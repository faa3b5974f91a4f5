package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arminious-Now/ai-communication-coach/internal/app"
	"github.com/Arminious-Now/ai-communication-coach/internal/config"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url|file]...",
	Short: "Ingest sources into the knowledge base",
	Long: `Ingest extracts text from each source, splits it into overlapping
fragments, embeds them, and upserts them into the vector index.

Sources are processed independently: one failing does not stop the rest.
Re-ingesting a source overwrites its fragments instead of duplicating them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing application", "error", err)
		}
	}()

	// A reference that does not resolve fails only its own entry in the
	// report; the remaining arguments still ingest.
	report := a.Ingestor.IngestRefs(ctx, args)

	for _, sr := range report.Sources {
		fmt.Fprintln(cmd.OutOrStdout(), sr.Summary())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "done: %s sources ingested\n", report.Progress())

	if report.Failed() == len(report.Sources) {
		return fmt.Errorf("all %d sources failed", report.Failed())
	}
	return nil
}
