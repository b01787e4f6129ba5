package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Aion.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aion",
		Short: "AI research workspace toolkit",
		Long: `Aion is a toolkit for AI research workspaces.

It analyzes files and directories for text statistics, code structure and
complexity, and sensitive data (credentials, PII, image metadata). It also
evaluates model predictions against ground truth, computes deterministic
text embeddings with similarity search, and generates project documentation.

Analysis results are archived in a local SQLite database for historical
comparison.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewEvalCmd())
	cmd.AddCommand(NewEmbedCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewDocCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewPromptCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
