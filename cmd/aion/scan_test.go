package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	"github.com/aqwel-ai/aion/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [paths...]" {
			t.Errorf("expected use 'scan [paths...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has max-file-size flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-file-size")
		if flag == nil {
			t.Fatal("expected max-file-size flag")
		}
	})

	t.Run("has ignore flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("ignore")
		if flag == nil {
			t.Fatal("expected ignore flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-save flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-save")
		if flag == nil {
			t.Fatal("expected no-save flag")
		}
	})

	t.Run("does not have db-dir flag (uses XDG)", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("db-dir")
		if flag != nil {
			t.Error("db-dir flag should not exist (always uses XDG data directory)")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewScanCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		// Set verbose flag to true
		_ = root.PersistentFlags().Set("verbose", "true")

		// Get scan subcommand
		scanCmd, _, err := root.Find([]string{"scan"})
		if err != nil {
			t.Fatalf("failed to find scan command: %v", err)
		}

		result := getVerboseFlag(scanCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "./project" {
			t.Errorf("expected targets [./project], got %v", cfg.Targets)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.Rules == nil {
			t.Error("expected Rules to be initialized")
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
	})

	t.Run("builds config with custom timeout", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("timeout", "90s")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout.Seconds() != 90 {
			t.Errorf("expected timeout 90s, got %v", cfg.Timeout)
		}
	})

	t.Run("builds config with custom batch size", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("batch", "5")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BatchSize != 5 {
			t.Errorf("expected BatchSize 5, got %d", cfg.BatchSize)
		}
	})

	t.Run("builds config with ignore patterns", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("ignore", "*.ckpt")
		_ = cmd.Flags().Set("ignore", "wandb/*")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.IgnorePatterns) != 2 {
			t.Errorf("expected 2 ignore patterns, got %v", cfg.IgnorePatterns)
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with no-save flag", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("no-save", "true")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
	})

	t.Run("builds config with multiple targets", func(t *testing.T) {
		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd, []string{"./a", "./b", "./c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Targets) != 3 {
			t.Errorf("expected 3 targets, got %d", len(cfg.Targets))
		}
	})

	t.Run("builds config with valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "aion.yaml")

		// Create a valid config file
		content := []byte(`
defaults:
  maxFileSize: 1024
rules:
  third_party:
    disabledAnalyzers:
      - secrets
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Rules == nil {
			t.Fatal("expected Rules to be loaded")
		}
		if cfg.Rules.Defaults.MaxFileSize != 1024 {
			t.Errorf("expected default maxFileSize 1024, got %d", cfg.Rules.Defaults.MaxFileSize)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		// Create an invalid config file
		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("config", configPath)
		_, err := buildConfig(cmd, []string{"./project"})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("config", "/nonexistent/aion.yaml")
		_, err := buildConfig(cmd, []string{"./project"})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewScanCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{"./project"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})
}

// TestOutputReport tests the report output functionality.
func TestOutputReport(t *testing.T) {
	t.Run("outputs JSON report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		analysisReport := model.NewReport("./project")

		err := outputReport(cfg, analysisReport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Verify file exists
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected output file to be created")
		}

		// Verify JSON content
		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}

		if result["target"] != "./project" {
			t.Errorf("expected target './project', got %v", result["target"])
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "subdir", "nested", "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, model.NewReport("./project"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected output file to be created in nested directory")
		}
	})

	t.Run("outputs text report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.txt")

		cfg := &config.Config{
			JSONReport: false,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, model.NewReport("./project"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		if !bytes.Contains(content, []byte("./project")) {
			t.Error("expected report to contain target path")
		}
	})

	t.Run("outputs Markdown report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.md")

		cfg := &config.Config{
			MarkdownReport: true,
			ReportFile:     outputPath,
		}

		err := outputReport(cfg, model.NewReport("./project"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		if !bytes.Contains(content, []byte("# Aion Analysis Report")) {
			t.Error("expected Markdown header in report")
		}
	})

	t.Run("initializes Summary if nil", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.txt")

		cfg := &config.Config{
			ReportFile: outputPath,
		}

		analysisReport := model.NewReport("./project")
		analysisReport.Summary = nil

		err := outputReport(cfg, analysisReport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if analysisReport.Summary == nil {
			t.Error("expected Summary to be initialized")
		}
	})
}

// TestSaveReport tests the saveReport function.
func TestSaveReport(t *testing.T) {
	t.Parallel()

	// Create a logger for testing
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	t.Run("returns nil when db is nil", func(t *testing.T) {
		t.Parallel()

		analysisReport := model.NewReport("./project")
		err := saveReport(ctx, nil, analysisReport, logger)
		if err != nil {
			t.Errorf("expected nil error when db is nil, got %v", err)
		}
	})

	t.Run("saves report to database", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		db, err := database.Open(tmpDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		analysisReport := model.NewReport("./save-test")
		analysisReport.AddDocument(&model.Document{
			Path: "notes.txt",
			Kind: model.KindText,
		})

		err = saveReport(ctx, db, analysisReport, logger)
		if err != nil {
			t.Fatalf("saveReport() error = %v", err)
		}

		// Verify report was saved
		saved, err := db.GetLatestReport(ctx, "./save-test")
		if err != nil {
			t.Fatalf("failed to get saved report: %v", err)
		}
		if saved == nil {
			t.Fatal("expected report to be saved")
		}
		if saved.Target != "./save-test" {
			t.Errorf("expected target './save-test', got %q", saved.Target)
		}
	})

	t.Run("initializes Summary before saving", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		db, err := database.Open(tmpDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		analysisReport := model.NewReport("./summary-test")
		analysisReport.Summary = nil

		err = saveReport(ctx, db, analysisReport, logger)
		if err != nil {
			t.Fatalf("saveReport() error = %v", err)
		}

		if analysisReport.Summary == nil {
			t.Error("expected Summary to be initialized")
		}
	})
}

// TestRunScanNoTargets tests that runScan returns error when no targets provided.
func TestRunScanNoTargets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.NewConfig()
	cfg.Targets = []string{} // No targets
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	err := runScan(ctx, cfg, logger)
	if err == nil {
		t.Error("expected error for no targets")
	}
	if err.Error() != "no targets provided (specify one or more paths as arguments)" {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRunScanInvalidTarget tests that runScan rejects nonexistent paths.
func TestRunScanInvalidTarget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.NewConfig()
	cfg.Targets = []string{filepath.Join(t.TempDir(), "does-not-exist")}
	cfg.SaveToDB = false
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	err := runScan(ctx, cfg, logger)
	if err == nil {
		t.Error("expected error for nonexistent target")
	}
}

// TestRunScanSingleTarget tests a full sequential analysis of a small tree.
func TestRunScanSingleTarget(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"),
		[]byte("Model training went well. Accuracy improved again.\n"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "train.py"),
		[]byte("import os\n\ndef train():\n    return 1\n"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	outputPath := filepath.Join(t.TempDir(), "report.json")

	cfg := config.NewConfig()
	cfg.Targets = []string{tmpDir}
	cfg.SaveToDB = false
	cfg.JSONReport = true
	cfg.ReportFile = outputPath
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	if err := runScan(context.Background(), cfg, logger); err != nil {
		t.Fatalf("runScan() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var saved model.Report
	if err := json.Unmarshal(content, &saved); err != nil {
		t.Fatalf("failed to parse report JSON: %v", err)
	}
	if saved.Target != tmpDir {
		t.Errorf("expected target %q, got %q", tmpDir, saved.Target)
	}
	if len(saved.Documents) != 2 {
		t.Errorf("expected 2 documents, got %d", len(saved.Documents))
	}
}

// TestRunScanCmdNoArgs tests runScanCmd with no arguments.
func TestRunScanCmdNoArgs(t *testing.T) {
	t.Parallel()

	// NewRootCmd already includes the scan subcommand
	rootCmd := NewRootCmd()
	// Execute "scan" with no args via root command
	rootCmd.SetArgs([]string{"scan", "--no-save"})

	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error for no arguments")
	}
	if !strings.Contains(err.Error(), "no target") {
		t.Errorf("expected 'no target' error, got: %v", err)
	}
}

// TestRunScanCmdConflictingFormats tests runScanCmd with both --json and --markdown.
func TestRunScanCmdConflictingFormats(t *testing.T) {
	t.Parallel()

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"scan", "--json", "--markdown", "--no-save", "."})

	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error for conflicting report formats")
	}
	if !strings.Contains(err.Error(), "conflicting report formats") {
		t.Errorf("expected 'conflicting report formats' error, got: %v", err)
	}
}

// TestDiffDocuments tests hash-based document comparison.
func TestDiffDocuments(t *testing.T) {
	t.Parallel()

	previous := model.NewReport("./project")
	previous.AddDocument(&model.Document{Path: "same.txt", Hash: "aaa"})
	previous.AddDocument(&model.Document{Path: "edited.py", Hash: "bbb"})
	previous.AddDocument(&model.Document{Path: "deleted.md", Hash: "ccc"})

	current := model.NewReport("./project")
	current.AddDocument(&model.Document{Path: "same.txt", Hash: "aaa"})
	current.AddDocument(&model.Document{Path: "edited.py", Hash: "ddd"})
	current.AddDocument(&model.Document{Path: "fresh.go", Hash: "eee"})

	added, changed, unchanged := diffDocuments(previous, current)
	if added != 1 || changed != 1 || unchanged != 1 {
		t.Errorf("diffDocuments() = %d/%d/%d, want 1 new, 1 changed, 1 unchanged",
			added, changed, unchanged)
	}
}

// TestReportChanges tests the change summary printed between runs.
func TestReportChanges(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	t.Run("silent when db is nil", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reportChanges(ctx, &buf, nil, model.NewReport("./project"), logger)
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("silent on the first analysis", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var buf bytes.Buffer
		reportChanges(ctx, &buf, db, model.NewReport("./never-scanned"), logger)
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("summarizes changes against the archive", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		previous := model.NewReport("./project")
		previous.AddDocument(&model.Document{Path: "same.txt", Hash: "aaa"})
		previous.AddDocument(&model.Document{Path: "edited.py", Hash: "bbb"})
		if _, err := db.SaveReport(ctx, previous); err != nil {
			t.Fatalf("failed to save previous report: %v", err)
		}

		current := model.NewReport("./project")
		current.AddDocument(&model.Document{Path: "same.txt", Hash: "aaa"})
		current.AddDocument(&model.Document{Path: "edited.py", Hash: "zzz"})
		current.AddDocument(&model.Document{Path: "fresh.go", Hash: "eee"})

		var buf bytes.Buffer
		reportChanges(ctx, &buf, db, current, logger)

		want := "Since last analysis: 1 new, 1 changed, 1 unchanged"
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output, got %q", want, buf.String())
		}
	})
}
