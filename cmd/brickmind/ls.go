package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/store"
)

var lsCmd = &cobra.Command{
	Use:   "ls [theme]",
	Short: "List themes or sets in a theme",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			return
		}
		defer s.Close()

		if len(args) == 0 || args[0] == "" {
			themes, err := s.Themes()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if len(themes) == 0 {
				fmt.Println("Catalog is empty. Run 'brickmind sync' or 'brickmind import' to fill it.")
				return
			}
			fmt.Println("Themes:")
			fmt.Println()
			for _, t := range themes {
				fmt.Printf("  %s  (%d sets)\n", t.Theme, t.Count)
			}
			return
		}

		theme := args[0]
		order, _ := cmd.Flags().GetString("sort")
		year, _ := cmd.Flags().GetInt("year")
		limit, _ := cmd.Flags().GetInt("n")
		format := getFormatFlag(cmd)

		sets, err := s.ListSets(store.ListFilter{
			Theme:   theme,
			Year:    year,
			OrderBy: order,
			Limit:   limit,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if len(sets) == 0 {
			fmt.Printf("No sets in theme %s\n", theme)
			return
		}

		rows := make([]SetOutputRow, 0, len(sets))
		for _, set := range sets {
			rows = append(rows, rowFromSet(set))
		}
		WriteSetOutput(rows, format)
	},
}

func init() {
	lsCmd.Flags().String("sort", "name", "Sort: name, year, year_desc, pieces, pieces_desc, price, price_desc")
	lsCmd.Flags().Int("year", 0, "Restrict to release year")
	lsCmd.Flags().IntP("n", "n", 100, "Number of sets")
	addFormatFlags(lsCmd)
	rootCmd.AddCommand(lsCmd)
}
