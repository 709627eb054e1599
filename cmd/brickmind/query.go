package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/store"
)

const rrfK = 60

// hybridResult is a merged result with RRF score.
type hybridResult struct {
	Set   catalog.Set
	Score float64
}

// reciprocalRankFusion merges FTS and vector results by set id using RRF.
func reciprocalRankFusion(fts []store.SearchResult, vec []store.VecSearchResult, limit int) []hybridResult {
	scores := make(map[string]*hybridResult)
	for rank, r := range fts {
		rrf := 1.0 / (float64(rrfK) + float64(rank) + 1)
		if scores[r.Set.SetID] == nil {
			scores[r.Set.SetID] = &hybridResult{Set: r.Set, Score: rrf}
		} else {
			scores[r.Set.SetID].Score += rrf
		}
	}
	for rank, r := range vec {
		rrf := 1.0 / (float64(rrfK) + float64(rank) + 1)
		if scores[r.Set.SetID] == nil {
			scores[r.Set.SetID] = &hybridResult{Set: r.Set, Score: rrf}
		} else {
			scores[r.Set.SetID].Score += rrf
		}
	}
	var list []*hybridResult
	for _, v := range scores {
		list = append(list, v)
	}
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].Score > list[i].Score {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]hybridResult, 0, limit)
	for i := 0; i < limit && i < len(list); i++ {
		out = append(out, *list[i])
	}
	return out
}

var queryCmd = &cobra.Command{
	Use:   "query [query]",
	Short: "Hybrid search (BM25 + vector)",
	Long:  "Combines BM25 and vector search with RRF. Run 'brickmind embed' for vector results.",
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

		fetchLimit := limit * 4
		if fetchLimit < 20 {
			fetchLimit = 20
		}

		// 1) BM25
		ftsResults, err := s.SearchFTS(query, fetchLimit, theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}

		// 2) Vectors, when the index exists and the embed endpoint answers
		var vecResults []store.VecSearchResult
		if s.HasVectors() {
			client := newLLMClient(loadConfig())
			if result, err := client.Embed(context.Background(), query); err == nil {
				vecResults, _ = s.SearchVectorsBrute(result.Embedding, fetchLimit)
			}
		}

		// 3) Merge with RRF
		merged := reciprocalRankFusion(ftsResults, vecResults, limit)
		if len(merged) == 0 {
			fmt.Println("No results found.")
			fmt.Fprintln(os.Stderr, "Tip: Run 'brickmind sync' or 'brickmind import' to fill the catalog; run 'brickmind embed' for vector search.")
			return
		}

		var rows []SetOutputRow
		for _, r := range merged {
			if r.Score < minScore {
				continue
			}
			row := rowFromSet(r.Set)
			row.Score = r.Score
			row.HasScore = true
			rows = append(rows, row)
		}
		WriteSetOutput(rows, format)
	},
}

func init() {
	queryCmd.Flags().IntP("n", "n", 5, "Number of results")
	queryCmd.Flags().StringP("theme", "t", "", "Restrict to theme")
	queryCmd.Flags().Float64("min-score", 0, "Minimum score threshold")
	addFormatFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}
