// Package main provides the entry point for the Aion CLI.
//
// Aion is a toolkit for AI research workspaces. It analyzes files and
// directories for text statistics, code structure, and sensitive data,
// evaluates model predictions, and manages text embeddings.
//
// Usage:
//
//	aion scan <path>
//	aion eval --preds preds.json --truth truth.json
//
// See --help for all available options.
package main

// main is the entry point for Aion.
func main() {
	Execute()
}
