package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/aqwel-ai/aion/internal/pipeline"
	"github.com/aqwel-ai/aion/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Analyze files and directories",
		Long: `Scan analyzes files and directories in a research workspace.

It collects files (honoring ignore patterns and size limits) and runs:
- Text statistics (words, sentences, language detection)
- Code structure and complexity analysis with smell detection
- Sensitive data detection (credentials, emails, PII, image metadata)
- Deterministic text embeddings

Examples:
  # Analyze the current directory
  aion scan .

  # Analyze multiple targets concurrently
  aion scan ./project-a ./project-b ./notes

  # Output JSON report to a file
  aion scan --json -o report.json ./project

  # Output Markdown report
  aion scan --markdown ./project

  # Use a custom configuration file
  aion scan -c myconfig.yaml ./project

Configuration file (.aion) example:
  defaults:
    maxFileSize: 5242880
  rules:
    third_party:
      disabledAnalyzers: ["secrets", "pii"]
    docs:
      ignorePatterns: ["*.pdf"]`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Analysis behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Time budget for analyzing each target")
	cmd.Flags().Int64("max-file-size", config.DefaultMaxFileSize,
		"Skip files larger than this many bytes")
	cmd.Flags().Int("max-files", config.DefaultMaxFiles,
		"Maximum number of files collected per target")
	cmd.Flags().StringArrayP("ignore", "i", nil,
		"Glob pattern to exclude from the walk (repeatable)")
	cmd.Flags().Bool("no-default-ignores", false,
		"Disable the built-in ignore patterns (.git, node_modules, ...)")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent target analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .aion in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Archive flags
	cmd.Flags().Bool("no-save", false,
		"Do not save results to the archive database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signalContext(logger)
	defer cancel()

	return runScan(ctx, cfg, logger)
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxFileSize, err = cmd.Flags().GetInt64("max-file-size")
	if err != nil {
		return nil, err
	}

	cfg.MaxFiles, err = cmd.Flags().GetInt("max-files")
	if err != nil {
		return nil, err
	}

	cfg.IgnorePatterns, err = cmd.Flags().GetStringArray("ignore")
	if err != nil {
		return nil, err
	}

	cfg.NoDefaultIgnores, err = cmd.Flags().GetBool("no-default-ignores")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load rule and template configuration from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Rules, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.Rules = &config.File{}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	// Save to the archive in the XDG data directory unless disabled
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	// Get positional arguments (target paths)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the analysis.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no targets provided (specify one or more paths as arguments)")
	}

	logger.Info("starting analysis",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open archive connection if saving is enabled
	var db *database.ArchiveDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive database: %w", err)
		}
		defer db.Close()
		logger.Info("archive opened", "dir", cfg.DBDir)
	}

	// Reject targets that do not exist before any analysis starts
	for _, target := range cfg.Targets {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("invalid target %q: %w", target, err)
		}
	}

	// Use batch processor for parallel analysis if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	// Single target or sequential analysis
	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan analyzes targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *database.ArchiveDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, err := createPipeline(cfg, logger)
		if err != nil {
			return err
		}

		analysisReport := model.NewReport(target)

		fmt.Printf("Analyzing %s...\n", target)
		startTime := time.Now()

		// Execute the pipeline with the per-target time budget
		runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err = p.Execute(runCtx, analysisReport)
		cancel()
		if err != nil {
			logger.Error("analysis failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

		// Compare against the last archived run before it is overwritten
		reportChanges(ctx, os.Stdout, db, analysisReport, logger)

		// Generate and output report
		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save to archive if enabled
		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "target", target, "error", err)
		}
	}

	return nil
}

// reportChanges prints how the new report differs from the most recent
// archived run for the same target. Silent on the first analysis.
func reportChanges(ctx context.Context, w io.Writer, db *database.ArchiveDB, analysisReport *model.Report, logger *slog.Logger) {
	if db == nil {
		return
	}

	previous, err := db.GetLatestReport(ctx, analysisReport.Target)
	if err != nil {
		logger.Warn("failed to load previous report", "target", analysisReport.Target, "error", err)
		return
	}
	if previous == nil {
		return
	}

	added, changed, unchanged := diffDocuments(previous, analysisReport)
	fmt.Fprintf(w, "Since last analysis: %d new, %d changed, %d unchanged\n\n", added, changed, unchanged)
	logger.Info("change detection completed",
		"target", analysisReport.Target,
		"new", added, "changed", changed, "unchanged", unchanged,
	)
}

// diffDocuments classifies the current report's documents by comparing
// content hashes against a previous report.
func diffDocuments(previous, current *model.Report) (added, changed, unchanged int) {
	for _, doc := range current.Documents {
		prev := previous.GetDocument(doc.Path)
		switch {
		case prev == nil:
			added++
		case prev.Hash != doc.Hash:
			changed++
		default:
			unchanged++
		}
	}
	return added, changed, unchanged
}

// runBatchScan analyzes multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.ArchiveDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p, err := createPipeline(cfg, logger)
			if err != nil {
				// Config was validated before this point; an error here
				// means the embedder rejected the dimension, which
				// Validate already excludes.
				logger.Error("pipeline creation failed", "error", err)
				p, _ = pipeline.DefaultPipeline(config.NewConfig())
			}
			return p
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(analysisReport *model.Report, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Targets), analysisReport.Target)

		// Compare against the last archived run before it is overwritten
		reportChanges(ctx, os.Stdout, db, analysisReport, logger)

		// Generate and output report
		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "target", analysisReport.Target, "error", err)
		}

		// Save to archive if enabled
		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "target", analysisReport.Target, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// createPipeline creates the standard analysis pipeline for the config.
func createPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	return pipeline.DefaultPipeline(cfg,
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, analysisReport *model.Report) error {
	// Generate summary if needed
	if analysisReport.Summary == nil {
		analysisReport.Summary = model.NewSummary(analysisReport)
	}

	output, closeOutput, err := reportDestination(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := reportWriter(cfg, output)
	_, err = writer.Write(analysisReport)
	return err
}

// reportWriter selects the report writer for the configured format.
func reportWriter(cfg *config.Config, output *os.File) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output)
	}
}

// reportDestination opens the report output file, or stdout when no
// path is configured. The returned func closes the file if one was
// opened.
func reportDestination(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Create/overwrite the output file with secure permissions (0600)
	// Reports may contain sensitive information that should only be
	// readable by the owner
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// saveReport saves the analysis report to the archive if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.ArchiveDB, analysisReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// Ensure the summary is generated before saving
	if analysisReport.Summary == nil {
		analysisReport.Summary = model.NewSummary(analysisReport)
	}

	id, err := db.SaveReport(ctx, analysisReport)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved to archive", "target", analysisReport.Target, "id", id)
	return nil
}
