package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/config"
	"github.com/brickmind/brickmind/internal/llm"
)

func newLLMClient(cfg *config.Config) *llm.OpenAIClient {
	return llm.NewOpenAIClient(
		llm.BaseURL(cfg.LLMBaseURL),
		llm.ChatModel(cfg.ChatModel),
		llm.EmbedModel(cfg.EmbedModel),
	)
}

var vsearchCmd = &cobra.Command{
	Use:   "vsearch [query]",
	Short: "Vector similarity search",
	Long:  "Search sets by meaning using vector embeddings. Run 'brickmind embed' first.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("n")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		format := getFormatFlag(cmd)

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		if !s.HasVectors() {
			fmt.Fprintln(os.Stderr, "Vector index is empty. Run 'brickmind embed' first.")
			os.Exit(1)
		}

		client := newLLMClient(loadConfig())
		result, err := client.Embed(context.Background(), query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error embedding query: %v\n", err)
			os.Exit(1)
		}

		results, err := s.SearchVectorsBrute(result.Embedding, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
			os.Exit(1)
		}

		var rows []SetOutputRow
		for _, r := range results {
			if r.Score < minScore {
				continue
			}
			row := rowFromSet(r.Set)
			row.Score = r.Score
			row.HasScore = true
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			fmt.Println("No results found.")
			return
		}
		WriteSetOutput(rows, format)
	},
}

func init() {
	vsearchCmd.Flags().IntP("n", "n", 5, "Number of results")
	vsearchCmd.Flags().Float64("min-score", 0.3, "Minimum score threshold")
	addFormatFlags(vsearchCmd)
	rootCmd.AddCommand(vsearchCmd)
}
