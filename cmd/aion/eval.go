package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	"github.com/aqwel-ai/aion/internal/evaluate"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/spf13/cobra"
)

// NewEvalCmd creates the eval command.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate predictions against ground truth",
		Long: `Eval computes evaluation metrics for model predictions.

Predictions and ground truth are loaded from JSON arrays, single-column
CSV files, or line-delimited text, selected by file extension. The task
is auto-detected from the data unless set explicitly:
- classification: accuracy, and precision/recall/F1 for binary labels
- regression: MSE, RMSE, MAE, R²
- text_similarity: exact match ratio, average word overlap

Each evaluation run is saved to the archive for later comparison.

Examples:
  # Auto-detect the task
  aion eval --preds preds.json --truth truth.json

  # Force regression metrics
  aion eval --task regression --preds preds.csv --truth truth.csv

  # JSON output without archiving
  aion eval --json --no-save --preds preds.txt --truth truth.txt`,
		RunE: runEvalCmd,
	}

	cmd.Flags().StringP("preds", "p", "", "Predictions file (JSON/CSV/text)")
	cmd.Flags().StringP("truth", "g", "", "Ground truth file (JSON/CSV/text)")
	cmd.Flags().String("task", "",
		"Evaluation task: classification, regression, or text_similarity (default: auto)")
	cmd.Flags().BoolP("json", "j", false, "Output metrics as JSON")
	cmd.Flags().Bool("no-save", false, "Do not save the run to the archive")

	if err := cmd.MarkFlagRequired("preds"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("truth"); err != nil {
		panic(err)
	}

	return cmd
}

// runEvalCmd executes the eval command.
func runEvalCmd(cmd *cobra.Command, _ []string) error {
	predsFile, err := cmd.Flags().GetString("preds")
	if err != nil {
		return err
	}
	truthFile, err := cmd.Flags().GetString("truth")
	if err != nil {
		return err
	}
	task, err := cmd.Flags().GetString("task")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return err
	}

	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	run, err := evaluate.Run(task, predsFile, truthFile)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if !noSave {
		if err := saveEvalRun(cmd.Context(), run, logger); err != nil {
			logger.Error("failed to save evaluation run", "error", err)
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(run)
	}

	printEvalRun(cmd, run)
	return nil
}

// saveEvalRun persists the run to the archive database.
func saveEvalRun(ctx context.Context, run *model.EvalRun, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveEvalRun(ctx, run)
	if err != nil {
		return err
	}
	logger.Info("evaluation run saved", "id", id, "task", run.Task)
	return nil
}

// printEvalRun writes a human-readable metric summary.
func printEvalRun(cmd *cobra.Command, run *model.EvalRun) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Task:      %s\n", run.Task)
	fmt.Fprintf(out, "Samples:   %d\n", run.SampleCount)
	fmt.Fprintf(out, "Preds:     %s\n", run.PredsFile)
	fmt.Fprintf(out, "Truth:     %s\n\n", run.TruthFile)

	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %-20s %.4f\n", name, run.Metrics[name])
	}
}
