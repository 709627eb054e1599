package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove cached answers and orphaned data, vacuum DB",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			return
		}
		defer s.Close()

		n, err := s.ClearAnswerCache()
		if err != nil {
			fmt.Printf("Error clearing answer cache: %v\n", err)
		} else {
			fmt.Printf("Cleared %d cached answer(s)\n", n)
		}

		_, _ = s.DB.Exec(`DELETE FROM set_vectors WHERE set_id NOT IN (SELECT set_id FROM lego_sets)`)
		_, _ = s.DB.Exec(`DELETE FROM set_embeddings WHERE set_id NOT IN (SELECT set_id FROM set_vectors)`)
		fmt.Println("Cleaned orphaned vectors")

		if _, err := s.DB.Exec(`VACUUM`); err != nil {
			fmt.Printf("Vacuum failed: %v\n", err)
		} else {
			fmt.Println("Database vacuumed")
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
