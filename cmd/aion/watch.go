package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	"github.com/aqwel-ai/aion/internal/fileutil"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/aqwel-ai/aion/internal/report"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Monitor a directory and re-analyze on change",
		Long: `Watch monitors a directory tree for file changes.

When files change, the affected paths are re-analyzed after a debounce
window and any new findings are printed. Press Ctrl+C to stop.

Examples:
  # Watch the current directory
  aion watch

  # Watch a project with a longer debounce window
  aion watch --debounce 2s ./project`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatchCmd,
	}

	cmd.Flags().Duration("debounce", config.DefaultDebounce,
		"Window in which repeated changes collapse into one re-analysis")
	cmd.Flags().StringArrayP("ignore", "i", nil,
		"Glob pattern to exclude from watching (repeatable)")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	ignore, err := cmd.Flags().GetStringArray("ignore")
	if err != nil {
		return err
	}

	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	cfg.IgnorePatterns = ignore
	cfg.Targets = []string{root}
	cfg.Debounce = debounce

	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("invalid watch path %q: %w", root, err)
	} else if !info.IsDir() {
		return fmt.Errorf("watch path %q is not a directory", root)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	// The archive lets the watcher skip files whose content already
	// matches the last analysis. Watching works without one.
	var db *database.ArchiveDB
	if archive, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	}); err == nil {
		db = archive
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close archive database", "error", err)
			}
		}()
	} else {
		logger.Debug("no archive available for change detection", "error", err)
	}

	return runWatch(ctx, cfg, db, logger, cmd)
}

// runWatch starts the watcher and re-analyzes changed paths.
func runWatch(ctx context.Context, cfg *config.Config, db *database.ArchiveDB, logger *slog.Logger, cmd *cobra.Command) error {
	root := cfg.Targets[0]

	handler := func(change fileutil.Change) {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\n",
			change.Time.Format("15:04:05"), change.Op, change.Path)

		if !fileutil.Exists(change.Path) || fileutil.IsDir(change.Path) {
			return
		}
		if unchangedSinceLastScan(ctx, db, root, change.Path) {
			fmt.Fprintln(cmd.OutOrStdout(), "  unchanged since last analysis, skipping")
			return
		}
		analyzeChangedFile(ctx, cfg, logger, cmd, change.Path)
	}

	watcher, err := fileutil.NewWatcher(root, handler,
		fileutil.WithDebounce(cfg.Debounce),
		fileutil.WithIgnorePatterns(cfg.EffectiveIgnorePatterns()),
		fileutil.WithWatcherLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (debounce %s, Ctrl+C to stop)\n", root, cfg.Debounce)

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// unchangedSinceLastScan reports whether the archive's latest report
// for root already recorded this file with its current content hash.
func unchangedSinceLastScan(ctx context.Context, db *database.ArchiveDB, root, path string) bool {
	if db == nil {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	hash, err := fileutil.Checksum(path)
	if err != nil {
		return false
	}

	unchanged, err := db.HasUnchangedDocument(ctx, root, filepath.ToSlash(rel), hash)
	if err != nil {
		return false
	}
	return unchanged
}

// analyzeChangedFile runs the analysis pipeline on one changed file and
// prints any findings.
func analyzeChangedFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, cmd *cobra.Command, path string) {
	p, err := createPipeline(cfg, logger)
	if err != nil {
		logger.Error("pipeline creation failed", "error", err)
		return
	}

	analysisReport := model.NewReport(path)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	start := time.Now()
	if err := p.Execute(runCtx, analysisReport); err != nil {
		logger.Error("re-analysis failed", "path", path, "error", err)
		return
	}

	summary := analysisReport.Summary
	if summary == nil || !summary.HasFindings() {
		fmt.Fprintf(cmd.OutOrStdout(), "  clean (%s)\n", time.Since(start).Round(time.Millisecond))
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %d finding(s):\n", summary.TotalFindings())
	writer := report.NewSimpleWriter(cmd.OutOrStdout())
	if _, err := writer.WriteSummary(summary); err != nil {
		logger.Error("failed to print findings", "path", path, "error", err)
	}
}
