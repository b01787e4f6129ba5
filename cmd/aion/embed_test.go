package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aqwel-ai/aion/internal/model"
)

// TestNewEmbedCmd tests the embed command creation.
func TestNewEmbedCmd(t *testing.T) {
	t.Parallel()

	cmd := NewEmbedCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "embed [paths...]" {
			t.Errorf("expected use 'embed [paths...]', got %q", cmd.Use)
		}
	})

	t.Run("has text flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("text") == nil {
			t.Fatal("expected text flag")
		}
	})

	t.Run("has query flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("query")
		if flag == nil {
			t.Fatal("expected query flag")
		}
		if flag.Shorthand != "q" {
			t.Errorf("expected shorthand 'q', got %q", flag.Shorthand)
		}
	})

	t.Run("has top flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("top")
		if flag == nil {
			t.Fatal("expected top flag")
		}
		if flag.DefValue != "5" {
			t.Errorf("expected default '5', got %q", flag.DefValue)
		}
	})

	t.Run("has dim flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("dim")
		if flag == nil {
			t.Fatal("expected dim flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
	})
}

// TestRunEmbedCmdText tests embedding a literal string.
func TestRunEmbedCmdText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewEmbedCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--text", "gradient descent converges slowly", "--no-save"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "dim=256") {
		t.Errorf("expected default dimension in output, got %q", output)
	}
	if !strings.Contains(output, "hash=") {
		t.Errorf("expected text hash in output, got %q", output)
	}
}

// TestRunEmbedCmdFile tests embedding a file with JSON output.
func TestRunEmbedCmdFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	notesFile := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(notesFile, []byte("Experiment notes on learning rates.\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var buf bytes.Buffer
	cmd := NewEmbedCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--no-save", "--json", "--dim", "64", notesFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var embeddings []*model.Embedding
	if err := json.Unmarshal(buf.Bytes(), &embeddings); err != nil {
		t.Fatalf("failed to parse output JSON: %v", err)
	}

	if len(embeddings) != 1 {
		t.Fatalf("expected 1 embedding, got %d", len(embeddings))
	}
	if embeddings[0].Source != notesFile {
		t.Errorf("expected source %q, got %q", notesFile, embeddings[0].Source)
	}
	if embeddings[0].Dimension != 64 {
		t.Errorf("expected dimension 64, got %d", embeddings[0].Dimension)
	}
	if len(embeddings[0].Vector) != 64 {
		t.Errorf("expected 64 vector components, got %d", len(embeddings[0].Vector))
	}
}

// TestRunEmbedCmdNoInput tests that embed fails without any input.
func TestRunEmbedCmdNoInput(t *testing.T) {
	t.Parallel()

	cmd := NewEmbedCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--no-save"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for no input")
	}
	if !strings.Contains(err.Error(), "nothing to embed") {
		t.Errorf("expected 'nothing to embed' error, got %v", err)
	}
}

// TestRunEmbedCmdInvalidDimension tests the embedder dimension check.
func TestRunEmbedCmdInvalidDimension(t *testing.T) {
	t.Parallel()

	cmd := NewEmbedCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--text", "x", "--no-save", "--dim", "0"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for invalid dimension")
	}
}
