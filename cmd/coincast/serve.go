package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/CoinCast/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecast service",
	Long: `Run the periodic refresher and the HTTP API.

Examples:
  coincast serve
  FEED=mock LOG_FORMAT=console coincast serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("feed", cfg.Feed).
		Int("top_n", cfg.TopN).
		Msg("Starting CoinCast")

	if err := app.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("CoinCast stopped")
	return nil
}
