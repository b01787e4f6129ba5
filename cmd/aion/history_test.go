package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aqwel-ai/aion/internal/database"
	"github.com/aqwel-ai/aion/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [target]" {
			t.Errorf("expected use 'history [target]', got %q", cmd.Use)
		}
	})

	t.Run("has id flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("id") == nil {
			t.Fatal("expected id flag")
		}
	})

	t.Run("has evals flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("evals") == nil {
			t.Fatal("expected evals flag")
		}
	})

	t.Run("has task flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("task") == nil {
			t.Fatal("expected task flag")
		}
	})
}

// TestFormatRiskSummary tests the severity count formatting.
func TestFormatRiskSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary map[string]int
		want    string
	}{
		{
			name:    "empty map",
			summary: map[string]int{},
			want:    "no findings",
		},
		{
			name:    "all zero counts",
			summary: map[string]int{"critical": 0, "low": 0},
			want:    "no findings",
		},
		{
			name:    "ordered by severity",
			summary: map[string]int{"low": 3, "critical": 1, "info": 2},
			want:    "critical:1 low:3 info:2",
		},
		{
			name:    "single severity",
			summary: map[string]int{"medium": 4},
			want:    "medium:4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := formatRiskSummary(tt.summary)
			if got != tt.want {
				t.Errorf("formatRiskSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatMetrics tests the metric formatting.
func TestFormatMetrics(t *testing.T) {
	t.Parallel()

	got := formatMetrics(map[string]float64{"rmse": 0.5, "mae": 0.25})
	want := "mae=0.2500 rmse=0.5000"
	if got != want {
		t.Errorf("formatMetrics() = %q, want %q", got, want)
	}

	if formatMetrics(nil) != "" {
		t.Errorf("formatMetrics(nil) = %q, want empty", formatMetrics(nil))
	}
}

// TestPrintArchivedReport tests report lookup against a real archive.
func TestPrintArchivedReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	analysisReport := model.NewReport("./history-test")
	analysisReport.AddDocument(&model.Document{
		Path: "notes.txt",
		Kind: model.KindText,
	})
	analysisReport.Summary = model.NewSummary(analysisReport)

	id, err := db.SaveReport(ctx, analysisReport)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	t.Run("prints a stored report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetContext(ctx)

		if err := printArchivedReport(cmd, db, id, true); err != nil {
			t.Fatalf("printArchivedReport() error = %v", err)
		}
		if !strings.Contains(buf.String(), "./history-test") {
			t.Errorf("expected report target in output, got %q", buf.String())
		}
	})

	t.Run("errors for an unknown id", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetContext(ctx)

		err := printArchivedReport(cmd, db, 9999, false)
		if err == nil {
			t.Fatal("expected error for unknown report ID")
		}
		if !strings.Contains(err.Error(), "no report with ID 9999") {
			t.Errorf("unexpected error message: %v", err)
		}
	})
}
