package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search (BM25)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("n")
		theme, _ := cmd.Flags().GetString("theme")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		format := getFormatFlag(cmd)

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		results, err := s.SearchFTS(query, limit, theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
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
	searchCmd.Flags().IntP("n", "n", 5, "Number of results")
	searchCmd.Flags().StringP("theme", "t", "", "Restrict to theme")
	searchCmd.Flags().Float64("min-score", 0, "Minimum score threshold")
	addFormatFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
