package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [target]",
		Short: "Browse archived analysis results",
		Long: `History browses the local archive of analysis results.

Without arguments it lists all analyzed targets. With a target argument
it lists the stored reports for that target, newest first. A specific
report can be printed in full with --id.

Examples:
  # List all analyzed targets
  aion history

  # List stored reports for a target
  aion history ./project

  # Print a specific report as JSON
  aion history --id 3 --json

  # List evaluation runs
  aion history --evals --task classification`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64("id", 0, "Print the full report with this ID")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().Bool("evals", false, "List evaluation runs instead of analysis reports")
	cmd.Flags().String("task", "", "Filter evaluation runs by task (with --evals)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	reportID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	listEvals, err := cmd.Flags().GetBool("evals")
	if err != nil {
		return err
	}
	task, err := cmd.Flags().GetString("task")
	if err != nil {
		return err
	}

	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no archive found (run an analysis first): %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close archive database", "error", err)
		}
	}()

	switch {
	case listEvals:
		return printEvalRuns(cmd, db, task, jsonOutput)
	case reportID != 0:
		return printArchivedReport(cmd, db, reportID, jsonOutput)
	case len(args) == 1:
		return printTargetHistory(cmd, db, args[0], jsonOutput)
	default:
		return printTargets(cmd, db, jsonOutput)
	}
}

// printTargets lists all targets present in the archive.
func printTargets(cmd *cobra.Command, db *database.ArchiveDB, jsonOutput bool) error {
	targets, err := db.ListTargets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(targets)
	}

	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analysis results archived yet.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived targets (%d):\n", len(targets))
	for _, target := range targets {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", target)
	}
	return nil
}

// printTargetHistory lists stored reports for one target, newest first.
func printTargetHistory(cmd *cobra.Command, db *database.ArchiveDB, target string, jsonOutput bool) error {
	entries, err := db.GetHistoryWithMetadata(cmd.Context(), target)
	if err != nil {
		return fmt.Errorf("failed to load history for %s: %w", target, err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No archived reports for %s.\n", target)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "History for %s:\n", target)
	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "  #%-4d %s  %s\n",
			entry.ID, entry.Timestamp.Format("2006-01-02 15:04:05"), formatRiskSummary(entry.RiskSummary))
	}
	return nil
}

// formatRiskSummary renders severity counts in a fixed order.
func formatRiskSummary(riskSummary map[string]int) string {
	if len(riskSummary) == 0 {
		return "no findings"
	}

	order := []string{"critical", "high", "medium", "low", "info"}
	result := ""
	for _, severity := range order {
		count, ok := riskSummary[severity]
		if !ok || count == 0 {
			continue
		}
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s:%d", severity, count)
	}
	if result == "" {
		return "no findings"
	}
	return result
}

// printArchivedReport prints one stored report in full.
func printArchivedReport(cmd *cobra.Command, db *database.ArchiveDB, id int64, jsonOutput bool) error {
	archived, err := db.GetReportByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load report %d: %w", id, err)
	}
	if archived == nil {
		return fmt.Errorf("no report with ID %d in the archive", id)
	}

	var writer report.Writer
	if jsonOutput {
		writer = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		writer = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	if _, err := writer.Write(archived); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// printEvalRuns lists stored evaluation runs, optionally filtered by task.
func printEvalRuns(cmd *cobra.Command, db *database.ArchiveDB, task string, jsonOutput bool) error {
	runs, err := db.ListEvalRuns(cmd.Context(), task)
	if err != nil {
		return fmt.Errorf("failed to list evaluation runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No evaluation runs archived yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %s  %-16s samples=%d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Task,
			run.SampleCount, formatMetrics(run.Metrics))
	}
	return nil
}

// formatMetrics renders metric names and values in a stable order.
func formatMetrics(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	result := ""
	for _, name := range names {
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s=%.4f", name, metrics[name])
	}
	return result
}
