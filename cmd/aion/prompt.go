package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aqwel-ai/aion/internal/config"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/prompt"
	"github.com/spf13/cobra"
)

// NewPromptCmd creates the prompt command.
func NewPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [name]",
		Short: "List and render prompt templates",
		Long: `Prompt lists the available prompt templates and renders them
with variable substitution.

Custom templates defined in a configuration file are merged into the
built-in set and may override built-ins with the same name.

Examples:
  # List all templates
  aion prompt

  # Show one template and its variables
  aion prompt summarize

  # Render a template with variables
  aion prompt summarize --var text="machine learning is..." --var style=concise`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPromptCmd,
	}

	cmd.Flags().StringArray("var", nil, "Template variable as key=value (repeatable)")
	cmd.Flags().StringP("config", "c", "", "Configuration file with custom templates")

	return cmd
}

// runPromptCmd executes the prompt command.
func runPromptCmd(cmd *cobra.Command, args []string) error {
	vars, err := cmd.Flags().GetStringArray("var")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	logger := aionlog.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	registry, err := buildRegistry(configPath)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return listTemplates(cmd, registry)
	}

	name := args[0]
	if len(vars) == 0 {
		return showTemplate(cmd, registry, name)
	}

	variables, err := parseVariables(vars)
	if err != nil {
		return err
	}

	rendered, err := registry.Render(name, variables)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// buildRegistry creates the template registry, merging custom templates
// from the configuration file when one is available.
func buildRegistry(configPath string) (*prompt.Registry, error) {
	registry := prompt.NewRegistry()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
	} else {
		configPath = config.FindConfigFile("")
	}
	if configPath == "" {
		return registry, nil
	}

	rules, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	for name, tmpl := range rules.Templates {
		registry.Add(prompt.Template{
			Name:        name,
			Description: tmpl.Description,
			Text:        tmpl.Text,
		})
	}
	return registry, nil
}

// listTemplates prints all registered templates with their variables.
func listTemplates(cmd *cobra.Command, registry *prompt.Registry) error {
	templates := registry.Templates()

	fmt.Fprintf(cmd.OutOrStdout(), "Available templates (%d):\n", len(templates))
	for _, tmpl := range templates {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", tmpl.Name, tmpl.Description)
		if variables := tmpl.Variables(); len(variables) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-18s variables: %s\n", "", strings.Join(variables, ", "))
		}
	}
	return nil
}

// showTemplate prints one template in full.
func showTemplate(cmd *cobra.Command, registry *prompt.Registry, name string) error {
	tmpl, err := registry.Get(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Template: %s\n", tmpl.Name)
	if tmpl.Description != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Description: %s\n", tmpl.Description)
	}
	if variables := tmpl.Variables(); len(variables) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Variables: %s\n", strings.Join(variables, ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", tmpl.Text)
	return nil
}

// parseVariables converts repeated key=value flags into a variable map.
func parseVariables(pairs []string) (map[string]string, error) {
	variables := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid variable %q (expected key=value)", pair)
		}
		variables[key] = value
	}
	return variables, nil
}
