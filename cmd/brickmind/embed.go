package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/llm"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate vector embeddings",
	Long:  "Generate vector embeddings for catalog sets using an OpenAI-compatible API. Requires OPENAI_API_KEY.",
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		if force {
			fmt.Fprintln(os.Stderr, "Force re-embedding: clearing all vectors...")
			if err := s.ClearAllEmbeddings(); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing embeddings: %v\n", err)
				os.Exit(1)
			}
		}

		sets, err := s.SetsNeedingEmbedding()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing sets: %v\n", err)
			os.Exit(1)
		}
		if len(sets) == 0 {
			fmt.Println("All sets already have embeddings.")
			return
		}

		cfg := loadConfig()
		client := newLLMClient(cfg)
		model := llm.EmbedModel(cfg.EmbedModel)
		fmt.Printf("Embedding %d sets, model: %s\n\n", len(sets), model)

		embedded := 0
		errors := 0
		now := time.Now()
		ctx := context.Background()

		for i, set := range sets {
			result, err := client.Embed(ctx, set.EmbedText())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error embedding %s: %v\n", set.SetID, err)
				errors++
				continue
			}
			if err := s.InsertEmbedding(set.SetID, result.Embedding, model, now); err != nil {
				fmt.Fprintf(os.Stderr, "Error inserting embedding: %v\n", err)
				errors++
				continue
			}
			embedded++
			fmt.Fprintf(os.Stderr, "\rEmbedded %d/%d sets...", i+1, len(sets))
		}
		fmt.Fprintln(os.Stderr)
		elapsed := time.Since(now).Seconds()
		fmt.Printf("Done. Embedded %d sets in %.1fs", embedded, elapsed)
		if errors > 0 {
			fmt.Printf(" (%d errors)", errors)
		}
		fmt.Println()
	},
}

func init() {
	embedCmd.Flags().BoolP("force", "f", false, "Force re-embedding (clear all vectors first)")
	rootCmd.AddCommand(embedCmd)
}
