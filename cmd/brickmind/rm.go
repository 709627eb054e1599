package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <set-id>",
	Short: "Remove a set from the local catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setID := args[0]

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		if _, err := s.GetSet(setID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				fmt.Fprintf(os.Stderr, "Set not found: %s\n", setID)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}

		if err := s.DeleteSet(setID); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", setID, err)
			os.Exit(1)
		}
		fmt.Printf("Removed %s\n", setID)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
