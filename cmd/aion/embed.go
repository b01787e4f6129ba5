package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/database"
	"github.com/aqwel-ai/aion/internal/embed"
	aionlog "github.com/aqwel-ai/aion/internal/log"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/spf13/cobra"
)

// NewEmbedCmd creates the embed command.
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed [paths...]",
		Short: "Compute and search text embeddings",
		Long: `Embed computes deterministic text embeddings.

The embedder hashes tokens into a fixed-dimension vector, so the same
text always produces the same embedding without any model downloads.
Embeddings are stored in the archive and can be searched by cosine
similarity.

Examples:
  # Embed files and store the vectors
  aion embed notes.txt paper.md

  # Embed a literal string
  aion embed --text "gradient descent converges slowly"

  # Search stored embeddings
  aion embed --query "optimizer behavior" --top 5`,
		Args: cobra.ArbitraryArgs,
		RunE: runEmbedCmd,
	}

	cmd.Flags().String("text", "", "Embed a literal string instead of files")
	cmd.Flags().StringP("query", "q", "", "Search stored embeddings for similar text")
	cmd.Flags().IntP("top", "k", 5, "Number of search results to return")
	cmd.Flags().IntP("dim", "d", config.DefaultEmbedDimension, "Embedding dimension")
	cmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	cmd.Flags().Bool("no-save", false, "Do not store computed embeddings")

	return cmd
}

// runEmbedCmd executes the embed command.
func runEmbedCmd(cmd *cobra.Command, args []string) error {
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return err
	}
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	dim, err := cmd.Flags().GetInt("dim")
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

	embedder, err := embed.NewEmbedder(embed.WithDimension(dim))
	if err != nil {
		return fmt.Errorf("invalid embedder configuration: %w", err)
	}

	if query != "" {
		return runEmbedSearch(cmd, embedder, query, top, jsonOutput)
	}

	if text == "" && len(args) == 0 {
		return errors.New("nothing to embed (provide file paths, --text, or --query)")
	}

	return runEmbedStore(cmd, embedder, text, args, noSave, jsonOutput, logger)
}

// runEmbedStore embeds the given text and files, storing the vectors.
func runEmbedStore(cmd *cobra.Command, embedder *embed.Embedder, text string, paths []string, noSave, jsonOutput bool, logger *slog.Logger) error {
	embeddings := make([]*model.Embedding, 0, len(paths)+1)

	if text != "" {
		emb, err := embedder.EmbedText(text)
		if err != nil {
			return fmt.Errorf("failed to embed text: %w", err)
		}
		embeddings = append(embeddings, emb)
	}

	for _, path := range paths {
		emb, err := embedder.EmbedFile(path)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", path, err)
		}
		embeddings = append(embeddings, emb)
	}

	if !noSave {
		db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive database: %w", err)
		}
		defer db.Close()

		for _, emb := range embeddings {
			id, err := db.SaveEmbedding(cmd.Context(), emb)
			if err != nil {
				return fmt.Errorf("failed to store embedding for %s: %w", emb.Source, err)
			}
			logger.Info("embedding stored", "source", emb.Source, "id", id)
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(embeddings)
	}

	for _, emb := range embeddings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  dim=%d  hash=%.12s\n",
			emb.Source, emb.Dimension, emb.TextHash)
	}
	return nil
}

// runEmbedSearch searches stored embeddings by cosine similarity.
func runEmbedSearch(cmd *cobra.Command, embedder *embed.Embedder, query string, top int, jsonOutput bool) error {
	queryEmb, err := embedder.EmbedText(query)
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive database: %w", err)
	}
	defer db.Close()

	matches, err := db.SearchEmbeddings(cmd.Context(), queryEmb, top)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored embeddings found.")
		return nil
	}

	for i, match := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %.4f  %s\n", i+1, match.Score, match.Embedding.Source)
		if match.Embedding.Preview != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", match.Embedding.Preview)
		}
	}
	return nil
}
