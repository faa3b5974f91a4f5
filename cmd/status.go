package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arminious-Now/ai-communication-coach/internal/app"
	"github.com/Arminious-Now/ai-communication-coach/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show knowledge base statistics",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	count, err := a.Store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fragments stored: %d\n", count)
	fmt.Fprintf(cmd.OutOrStdout(), "embedder: %s\n", cfg.EmbedderModel)
	fmt.Fprintf(cmd.OutOrStdout(), "model: %s\n", cfg.ModelName)
	return nil
}
