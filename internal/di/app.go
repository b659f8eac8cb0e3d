package di

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/internal/api"
	"github.com/Alias1177/CoinCast/internal/board"
	"github.com/Alias1177/CoinCast/internal/config"
	"github.com/Alias1177/CoinCast/models"
)

// App is the fully wired service
type App struct {
	Config      *config.Config
	Source      models.SnapshotSource
	Forecasters Forecasters
	Board       *board.Board
	Refresher   *board.Refresher
	Server      *api.Server

	logger zerolog.Logger
}

// Run starts the refresher and the HTTP server and blocks until ctx is cancelled
// or the server fails. Both are stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		a.Refresher.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info().Msg("Shutdown requested")
	case runErr = <-serverErr:
		if runErr != nil {
			a.logger.Error().Err(runErr).Msg("HTTP server exited")
		}
	}

	cancel()
	if err := a.Server.Stop(context.Background()); err != nil {
		runErr = errors.Join(runErr, err)
	}
	<-refresherDone

	return runErr
}
