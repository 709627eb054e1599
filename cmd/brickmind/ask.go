package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/assistant"
	"github.com/brickmind/brickmind/internal/llm"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the LEGO assistant",
	Long: `Answer a collector question with the LLM, grounded on the local
catalog, the vector index, and (when provider keys are set) live API data.
Requires OPENAI_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")
		noAPI, _ := cmd.Flags().GetBool("no-api")
		showSets, _ := cmd.Flags().GetBool("sets")
		useJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		cfg := loadConfig()
		logger := newLogger()
		defer logger.Sync()

		client := newLLMClient(cfg)
		var api assistant.LiveSearcher
		if !noAPI {
			if agg := newAggregator(cfg, logger); agg != nil {
				api = agg
			}
		}

		a := assistant.New(s, client, api, cfg, llm.ChatModel(cfg.ChatModel), logger)
		answer, err := a.Ask(context.Background(), question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}

		if useJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(answer)
			return
		}

		fmt.Println(answer.Response)
		if answer.Cached {
			fmt.Fprintln(os.Stderr, "(cached)")
		}
		if showSets && len(answer.Sets) > 0 {
			fmt.Println()
			fmt.Println("Matched sets:")
			for _, set := range answer.Sets {
				fmt.Printf("  %s  %s (%s)\n", set.SetID, set.Name, set.Theme)
			}
		}
	},
}

func init() {
	askCmd.Flags().Bool("no-api", false, "Skip live provider lookups")
	askCmd.Flags().Bool("sets", false, "List the matched sets after the answer")
	askCmd.Flags().Bool("json", false, "JSON output (answer + matched sets)")
	rootCmd.AddCommand(askCmd)
}
