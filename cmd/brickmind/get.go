package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/config"
)

var getCmd = &cobra.Command{
	Use:   "get <set-id>",
	Short: "Get a set from the local catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setID := args[0]
		format := getFormatFlag(cmd)

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		set, err := s.GetSet(setID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				fmt.Fprintf(os.Stderr, "Set not found: %s\n", setID)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}

		row := rowFromSet(*set)
		if cfg, err := config.LoadConfig(); err == nil {
			row.Note = config.FindNoteForTheme(cfg, set.Theme)
		}
		WriteSetOutput([]SetOutputRow{row}, format)
	},
}

func init() {
	addFormatFlags(getCmd)
	rootCmd.AddCommand(getCmd)
}
