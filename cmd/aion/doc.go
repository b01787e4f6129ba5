package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/docgen"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/spf13/cobra"
)

// NewDocCmd creates the doc command.
func NewDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc [path]",
		Short: "Generate Markdown documentation for a project",
		Long: `Doc analyzes a project directory and generates Markdown
documentation describing its modules, code structure, and text documents.

Examples:
  # Document the current directory to stdout
  aion doc

  # Write documentation to a file, including sensitive data findings
  aion doc ./project -o DOCS.md --findings`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDocCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Bool("findings", false, "Include sensitive data findings in the documentation")
	cmd.Flags().StringArrayP("ignore", "i", nil, "Glob pattern to exclude (repeatable)")

	return cmd
}

// runDocCmd executes the doc command.
func runDocCmd(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	includeFindings, err := cmd.Flags().GetBool("findings")
	if err != nil {
		return err
	}
	ignore, err := cmd.Flags().GetStringArray("ignore")
	if err != nil {
		return err
	}

	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}

	cfg := config.NewConfig()
	cfg.IgnorePatterns = ignore
	cfg.Targets = []string{target}

	ctx, cancel := signalContext(logger)
	defer cancel()

	docReport, err := analyzeForDoc(ctx, cfg, logger, target)
	if err != nil {
		return err
	}

	generator := docgen.NewGenerator(
		docgen.WithVersion(getVersion()),
		docgen.WithFindings(includeFindings),
	)

	output, closeOutput, err := reportDestination(outputPath)
	if err != nil {
		return err
	}
	defer closeOutput()

	if _, err := generator.Generate(docReport, output); err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}

	if outputPath != "" {
		logger.Info("documentation written", "path", outputPath)
	}
	return nil
}

// analyzeForDoc runs the analysis pipeline once over the target.
func analyzeForDoc(ctx context.Context, cfg *config.Config, logger *slog.Logger, target string) (*model.Report, error) {
	p, err := createPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	docReport := model.NewReport(target)
	if err := p.Execute(runCtx, docReport); err != nil {
		return nil, fmt.Errorf("analysis of %s failed: %w", target, err)
	}
	return docReport, nil
}
