package board

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alias1177/CoinCast/internal/market"
	"github.com/Alias1177/CoinCast/models"
)

// BatchForecaster runs one batch forecast
type BatchForecaster interface {
	ForecastBatch(ctx context.Context, snapshots []models.AssetSnapshot) models.BatchResult
}

// RefreshObserver receives refresh timings
type RefreshObserver interface {
	ObserveRefresh(seconds float64)
	FeedError(source string)
}

// RefresherConfig holds the refresh cadence
type RefresherConfig struct {
	TopN               int
	RefreshInterval    time.Duration
	HotRefreshInterval time.Duration
}

// Refresher periodically fetches snapshots, forecasts them and publishes the results
type Refresher struct {
	board      *Board
	source     models.SnapshotSource
	forecaster BatchForecaster
	observer   RefreshObserver
	cfg        RefresherConfig
	logger     zerolog.Logger
	now        func() time.Time
}

// NewRefresher creates a refresher. observer may be nil.
func NewRefresher(b *Board, source models.SnapshotSource, forecaster BatchForecaster, observer RefreshObserver,
	cfg RefresherConfig, logger zerolog.Logger) *Refresher {
	return &Refresher{
		board:      b,
		source:     source,
		forecaster: forecaster,
		observer:   observer,
		cfg:        cfg,
		logger:     logger.With().Str("component", "refresher").Logger(),
		now:        time.Now,
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled
func (r *Refresher) Run(ctx context.Context) {
	r.logger.Info().
		Dur("interval", r.cfg.RefreshInterval).
		Dur("hot_interval", r.cfg.HotRefreshInterval).
		Msg("Starting refresher")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.loop(ctx, r.cfg.RefreshInterval, r.RefreshForecasts)
	}()
	go func() {
		defer wg.Done()
		r.loop(ctx, r.cfg.HotRefreshInterval, r.RefreshHot)
	}()
	wg.Wait()

	r.logger.Info().Msg("Refresher stopped")
}

func (r *Refresher) loop(ctx context.Context, interval time.Duration, tick func(context.Context) error) {
	_ = tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = tick(ctx)
		}
	}
}

// RefreshForecasts runs one forecast refresh. On a feed error the previous batch stays published.
func (r *Refresher) RefreshForecasts(ctx context.Context) error {
	start := r.now()

	snapshots, err := r.source.TopByVolume(ctx, r.cfg.TopN)
	if err != nil {
		r.logger.Error().Err(err).Str("source", r.source.Name()).Msg("Failed to fetch snapshots, keeping previous forecasts")
		if r.observer != nil {
			r.observer.FeedError(r.source.Name())
		}
		return err
	}

	batch := r.forecaster.ForecastBatch(ctx, snapshots)
	r.board.PublishForecasts(batch)

	elapsed := r.now().Sub(start)
	if r.observer != nil {
		r.observer.ObserveRefresh(elapsed.Seconds())
	}
	r.logger.Info().
		Str("run_id", batch.RunID).
		Int("assets", len(snapshots)).
		Int("failures", len(batch.Failures)).
		Dur("took", elapsed).
		Msg("Forecasts refreshed")
	return nil
}

// RefreshHot runs one hot-token refresh
func (r *Refresher) RefreshHot(ctx context.Context) error {
	snapshots, err := r.source.TopByVolume(ctx, r.cfg.TopN)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to fetch snapshots for hot tokens")
		if r.observer != nil {
			r.observer.FeedError(r.source.Name())
		}
		return err
	}

	r.board.PublishHot(market.RankHotTokens(snapshots, market.HotTokenLimit, r.now()))
	r.logger.Debug().Int("assets", len(snapshots)).Msg("Hot tokens refreshed")
	return nil
}
