package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/config"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage collector notes",
	Long: `Collector notes are injected into assistant prompts for matching
themes. Use the theme '*' for a note that applies to every question.`,
}

var noteSetCmd = &cobra.Command{
	Use:   "set <theme> \"text\"",
	Short: "Set the note for a theme",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		theme := args[0]
		text := strings.Join(args[1:], " ")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if theme == "*" {
			config.SetGlobalNote(cfg, text)
		} else {
			config.SetNote(cfg, theme, text)
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		if theme == "*" {
			fmt.Println("Set global note")
		} else {
			fmt.Printf("Set note for theme '%s'\n", theme)
		}
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		entries := config.ListNotes(cfg)
		if len(entries) == 0 {
			fmt.Println("No notes configured. Use 'brickmind note set' to add one.")
			return
		}
		fmt.Println("Collector Notes")
		fmt.Println()
		for _, e := range entries {
			label := e.Theme
			if label == "*" {
				label = "* (global)"
			}
			fmt.Println(label)
			fmt.Println("    " + e.Note)
		}
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <theme>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		theme := args[0]
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if theme == "*" {
			config.SetGlobalNote(cfg, "")
			if err := config.SaveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Removed global note")
			return
		}

		if !config.RemoveNote(cfg, theme) {
			fmt.Fprintf(os.Stderr, "No note found for theme: %s\n", theme)
			os.Exit(1)
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed note for theme '%s'\n", theme)
	},
}

func init() {
	noteCmd.AddCommand(noteSetCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}
