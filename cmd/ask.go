package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Arminious-Now/ai-communication-coach/internal/app"
	"github.com/Arminious-Now/ai-communication-coach/internal/coach"
	"github.com/Arminious-Now/ai-communication-coach/internal/config"
)

var askMode string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the communication coach a question",
	Long: `Ask answers a question in one of two modes.

coach (default): retrieves the most relevant knowledge fragments and
answers with cited advice grounded in them.

practice: responds in character as a roleplay partner, without touching
the knowledge base.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askMode, "mode", "coach", "response mode: coach or practice")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	mode, err := coach.ParseMode(askMode)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}

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

	answer, err := a.Coach.Respond(ctx, question, mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
