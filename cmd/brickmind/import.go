package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import catalog dump CSVs",
	Long: `Import Rebrickable-style CSV dumps into the local catalog.
Recognized columns: set_id/set_num, name, theme/theme_name,
year/release_year, pieces/num_parts, price, description.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		pattern, _ := cmd.Flags().GetString("mask")

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		res, err := importer.ImportFiles(s, path, pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d, updated %d, skipped %d (from %d file(s))\n",
			res.Imported, res.Updated, res.Skipped, res.Files)
	},
}

func init() {
	importCmd.Flags().String("mask", "**/*.csv", "File pattern mask")
	rootCmd.AddCommand(importCmd)
}
