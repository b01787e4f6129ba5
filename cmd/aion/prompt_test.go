package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewPromptCmd tests the prompt command creation.
func TestNewPromptCmd(t *testing.T) {
	t.Parallel()

	cmd := NewPromptCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "prompt [name]" {
			t.Errorf("expected use 'prompt [name]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has var flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("var") == nil {
			t.Fatal("expected var flag")
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
}

// TestRunPromptCmdList tests listing the built-in templates.
func TestRunPromptCmdList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewPromptCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, name := range []string{"summarize", "explain-code", "compare"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected template %q in listing, got %q", name, output)
		}
	}
	if !strings.Contains(output, "variables:") {
		t.Errorf("expected variable listing, got %q", output)
	}
}

// TestRunPromptCmdShow tests printing a single template.
func TestRunPromptCmdShow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewPromptCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"summarize"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Template: summarize") {
		t.Errorf("expected template header, got %q", output)
	}
	if !strings.Contains(output, "Variables:") {
		t.Errorf("expected variables line, got %q", output)
	}
}

// TestRunPromptCmdRender tests rendering with variables.
func TestRunPromptCmdRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewPromptCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"explain-code", "--var", "language=python", "--var", "code=print(1)"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "python") {
		t.Errorf("expected substituted language, got %q", output)
	}
	if !strings.Contains(output, "print(1)") {
		t.Errorf("expected substituted code, got %q", output)
	}
	if strings.Contains(output, "{language}") {
		t.Errorf("expected no unsubstituted placeholders, got %q", output)
	}
}

// TestRunPromptCmdMissingVariable tests that rendering fails when a
// required variable is not provided.
func TestRunPromptCmdMissingVariable(t *testing.T) {
	t.Parallel()

	cmd := NewPromptCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"explain-code", "--var", "language=python"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing variable")
	}
}

// TestRunPromptCmdUnknownTemplate tests the unknown-template error.
func TestRunPromptCmdUnknownTemplate(t *testing.T) {
	t.Parallel()

	cmd := NewPromptCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nonexistent-template"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown template")
	}
}

// TestRunPromptCmdCustomTemplates tests merging templates from a
// configuration file.
func TestRunPromptCmdCustomTemplates(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".aion")
	content := []byte(`
templates:
  review:
    description: Review code for common issues
    text: |
      Review the following {language} code:

      {code}
`)
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Run("custom template appears in listing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewPromptCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"-c", configPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "review") {
			t.Errorf("expected custom template in listing, got %q", buf.String())
		}
	})

	t.Run("custom template renders", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewPromptCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"-c", configPath, "review", "--var", "language=go", "--var", "code=x := 1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "x := 1") {
			t.Errorf("expected rendered template, got %q", buf.String())
		}
	})

	t.Run("fails for missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewPromptCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-c", filepath.Join(tmpDir, "missing.yaml")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("fails for malformed variable", func(t *testing.T) {
		t.Parallel()

		cmd := NewPromptCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"summarize", "--var", "not-a-pair"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for malformed variable")
		}
	})
}
