package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync all watchlists from the provider APIs",
	Long:  "Run every configured watchlist search against the providers and upsert the results into the local catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if len(cfg.Watchlists) == 0 {
			fmt.Println("No watchlists configured. Run 'brickmind watchlist add' first.")
			return
		}

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		logger := newLogger()
		defer logger.Sync()

		agg := newAggregator(cfg, logger)
		if agg == nil {
			fmt.Fprintln(os.Stderr, "BRICKSET_API_KEY is not set.")
			os.Exit(1)
		}

		ctx := context.Background()
		now := time.Now()
		for name, wl := range cfg.Watchlists {
			fmt.Printf("Syncing watchlist '%s' (%s)...\n", name, wl.Query)
			sets, err := agg.SearchSets(ctx, wl.Query)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error syncing '%s': %v\n", name, err)
				continue
			}
			stored := 0
			for i := range sets {
				if wl.Theme != "" && sets[i].Theme != wl.Theme {
					continue
				}
				if wl.Limit > 0 && stored >= wl.Limit {
					break
				}
				if _, err := s.UpsertSet(&sets[i], "sync", now); err != nil {
					fmt.Fprintf(os.Stderr, "Error storing %s: %v\n", sets[i].SetID, err)
					continue
				}
				stored++
			}
			fmt.Printf("  %d set(s) stored\n", stored)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
