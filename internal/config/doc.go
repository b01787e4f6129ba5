// Package config provides configuration structures and utilities for Aion.
// It defines the main configuration options for workspace analysis,
// embedding, and report generation preferences, plus the .aion config
// file with per-path rules and custom prompt templates.
package config
