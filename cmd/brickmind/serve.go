package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/assistant"
	"github.com/brickmind/brickmind/internal/llm"
	"github.com/brickmind/brickmind/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat web UI",
	Long: `Start the LEGO AI Assistant web UI and JSON API. Requires
OPENAI_API_KEY; provider keys are optional and enable live lookups.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		noAPI, _ := cmd.Flags().GetBool("no-api")

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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := web.NewServer(addr, s, a, logger)
		if err := srv.ListenAndServe(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", web.DefaultAddr, "Listen address")
	serveCmd.Flags().Bool("no-api", false, "Skip live provider lookups")
	rootCmd.AddCommand(serveCmd)
}
