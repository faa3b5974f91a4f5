// Package cmd implements the coach CLI.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Arminious-Now/ai-communication-coach/internal/log"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "AI communication coach with a personal knowledge base",
	Long: `coach ingests communication material (YouTube talks, PDFs, notes) into
a vector knowledge base and answers questions grounded in it.

  coach ingest https://youtu.be/dQw4w9WgXcQ notes.txt handbook.pdf
  coach ask "How do I open a difficult conversation?"
  coach ask --mode practice "I need to tell my manager the project slipped"`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI logger honoring the --verbose flag.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}
