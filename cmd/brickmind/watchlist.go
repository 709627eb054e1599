package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/config"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage watchlists",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all watchlists",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if len(cfg.Watchlists) == 0 {
			fmt.Println("No watchlists found.")
			return
		}

		fmt.Println("Watchlists:")
		for name, wl := range cfg.Watchlists {
			line := fmt.Sprintf("- %s (%s)", name, wl.Query)
			if wl.Theme != "" {
				line += " [" + wl.Theme + "]"
			}
			if wl.Limit > 0 {
				line += fmt.Sprintf(" limit=%d", wl.Limit)
			}
			fmt.Println(line)
		}
	},
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Add a watchlist",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.ReplaceAll(strings.ToLower(query), " ", "-")
		}
		theme, _ := cmd.Flags().GetString("theme")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if _, exists := cfg.Watchlists[name]; exists {
			fmt.Printf("Watchlist '%s' already exists.\n", name)
			os.Exit(1)
		}

		if cfg.Watchlists == nil {
			cfg.Watchlists = make(map[string]config.Watchlist)
		}
		cfg.Watchlists[name] = config.Watchlist{
			Query: query,
			Theme: theme,
			Limit: limit,
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Watchlist '%s' added.\n", name)
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a watchlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if _, exists := cfg.Watchlists[name]; !exists {
			fmt.Printf("Watchlist '%s' not found.\n", name)
			os.Exit(1)
		}

		delete(cfg.Watchlists, name)

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Watchlist '%s' removed.\n", name)
	},
}

func init() {
	watchlistAddCmd.Flags().String("name", "", "Watchlist name (default: derived from query)")
	watchlistAddCmd.Flags().String("theme", "", "Only keep results from this theme")
	watchlistAddCmd.Flags().Int("limit", 0, "Maximum sets to store per sync")

	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	rootCmd.AddCommand(watchlistCmd)
}
