package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <set-id> [set-id...]",
	Short: "Fetch sets from the provider APIs",
	Long: `Aggregate one or more sets from Brickset, Rebrickable and BrickOwl
and store them in the local catalog. Requires BRICKSET_API_KEY; the other
provider keys are optional and only widen the data.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		logger := newLogger()
		defer logger.Sync()

		agg := newAggregator(loadConfig(), logger)
		if agg == nil {
			fmt.Fprintln(os.Stderr, "BRICKSET_API_KEY is not set.")
			os.Exit(1)
		}

		ctx := context.Background()
		now := time.Now()
		fetched := 0
		for _, setID := range args {
			set, err := agg.FetchSet(ctx, setID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", setID, err)
				continue
			}
			created, err := s.UpsertSet(set, "api", now)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error storing %s: %v\n", set.SetID, err)
				continue
			}
			verb := "Updated"
			if created {
				verb = "Added"
			}
			fmt.Printf("%s %s  %s (%s, %d pieces)\n", verb, set.SetID, set.Name, set.Theme, set.PieceCount)
			fetched++
		}
		if fetched == 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
