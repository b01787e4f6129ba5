package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aqwel-ai/aion/internal/evaluate"
	"github.com/aqwel-ai/aion/internal/stats"
	"github.com/spf13/cobra"
)

// histogramBarWidth is the widest bar drawn in the text histogram.
const histogramBarWidth = 30

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Descriptive statistics of a numeric series",
		Long: `Stats computes descriptive statistics for a numeric series.

The series is loaded from a JSON array, a single-column CSV file, or
line-delimited text, selected by file extension.

Examples:
  # Summarize losses recorded during training
  aion stats losses.json

  # JSON output for tooling
  aion stats --json metrics.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runStatsCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output statistics as JSON")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	values, err := evaluate.LoadValues(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	description, err := stats.Describe(values)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", args[0], err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(description)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:    %s\n\n", args[0])
	fmt.Fprintf(out, "  count   %d\n", description.Count)
	fmt.Fprintf(out, "  mean    %.4f\n", description.Mean)
	fmt.Fprintf(out, "  median  %.4f\n", description.Median)
	fmt.Fprintf(out, "  stddev  %.4f\n", description.StdDev)
	fmt.Fprintf(out, "  min     %.4f\n", description.Min)
	fmt.Fprintf(out, "  p25     %.4f\n", description.P25)
	fmt.Fprintf(out, "  p75     %.4f\n", description.P75)
	fmt.Fprintf(out, "  max     %.4f\n", description.Max)
	fmt.Fprintf(out, "  sum     %.4f\n", description.Sum)

	if len(description.Histogram) > 0 {
		fmt.Fprintf(out, "\n  histogram\n")
		maxCount := 0
		for _, b := range description.Histogram {
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}
		for _, b := range description.Histogram {
			bar := strings.Repeat("#", b.Count*histogramBarWidth/maxCount)
			fmt.Fprintf(out, "    [%10.4f, %10.4f]  %-*s %d\n",
				b.Low, b.High, histogramBarWidth, bar, b.Count)
		}
	}

	return nil
}
