package di

import (
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CoinCast/internal/analysis/prediction"
	"github.com/Alias1177/CoinCast/internal/api"
	"github.com/Alias1177/CoinCast/internal/board"
	"github.com/Alias1177/CoinCast/internal/config"
	"github.com/Alias1177/CoinCast/internal/indicators"
	"github.com/Alias1177/CoinCast/internal/market"
	"github.com/Alias1177/CoinCast/internal/metrics"
	phttp "github.com/Alias1177/CoinCast/internal/platform/http"
	"github.com/Alias1177/CoinCast/models"
)

// ProviderSet groups every provider of the application graph
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideCoinGecko,
	ProvideSnapshotSource,
	ProvideHistorySource,
	ProvideSignals,
	ProvideForecasters,
	ProvideBoard,
	ProvideRefresher,
	ProvideHandler,
	ProvideServer,
	ProvideApp,
)

// Forecasters holds one forecaster per profile
type Forecasters struct {
	Single *prediction.Forecaster
	Batch  *prediction.Forecaster
}

// ProvideLogger returns the globally configured logger.
func ProvideLogger() zerolog.Logger {
	return log.Logger
}

// ProvideRegistry creates the Prometheus registry.
func ProvideRegistry() *prometheus.Registry {
	return metrics.NewRegistry()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

// ProvideHTTPClient creates the outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config, logger zerolog.Logger) *phttp.Client {
	return phttp.NewClient(phttp.ClientOptions{
		Timeout:         time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec:  cfg.RatePerSec,
		MaxRetries:      3,
		MaxRetryTimeout: 30 * time.Second,
		Logger:          &logger,
	})
}

// ProvideCoinGecko creates the CoinGecko feed.
func ProvideCoinGecko(client *phttp.Client, cfg *config.Config, logger zerolog.Logger) *market.CoinGeckoSource {
	return market.NewCoinGeckoSource(client, cfg.CoinGeckoURL, cfg.CoinGeckoAPIKey, logger)
}

// ProvideSnapshotSource selects the configured feed. The live feed falls back to mock data.
// A non-zero FORECAST_SEED makes the mock feed reproducible.
func ProvideSnapshotSource(cfg *config.Config, cg *market.CoinGeckoSource, rec *metrics.Recorder, logger zerolog.Logger) models.SnapshotSource {
	seed := cfg.ForecastSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mock := market.NewMockSource(seed)
	if cfg.Feed == config.FeedMock {
		return mock
	}
	return market.NewFallbackSource(logger, rec, cg, mock)
}

// ProvideHistorySource selects the candle source backing the indicator signals.
func ProvideHistorySource(cfg *config.Config, cg *market.CoinGeckoSource) models.HistorySource {
	if cfg.Feed == config.FeedMock {
		return market.NewSyntheticHistory(cfg.ForecastSeed)
	}
	return cg
}

// ProvideSignals creates the technical-indicator provider.
func ProvideSignals(history models.HistorySource, logger zerolog.Logger) *indicators.Provider {
	return indicators.NewProvider(history, logger)
}

// ProvideForecasters builds the single-asset and batch forecasters.
func ProvideForecasters(cfg *config.Config, rec *metrics.Recorder, signals *indicators.Provider, logger zerolog.Logger) (Forecasters, error) {
	opts := []prediction.Option{
		prediction.WithLogger(logger),
		prediction.WithRecorder(rec),
		prediction.WithSignals(signals.Signals),
	}

	single, err := prediction.NewForecaster(cfg.Profiles.Single, opts...)
	if err != nil {
		return Forecasters{}, err
	}
	batch, err := prediction.NewForecaster(cfg.Profiles.Batch, opts...)
	if err != nil {
		return Forecasters{}, err
	}
	return Forecasters{Single: single, Batch: batch}, nil
}

// ProvideBoard creates the forecast board.
func ProvideBoard() *board.Board {
	return board.New()
}

// ProvideRefresher creates the periodic refresher running the batch profile.
func ProvideRefresher(b *board.Board, source models.SnapshotSource, f Forecasters, rec *metrics.Recorder,
	cfg *config.Config, logger zerolog.Logger) *board.Refresher {
	return board.NewRefresher(b, source, f.Batch, rec, board.RefresherConfig{
		TopN:               cfg.TopN,
		RefreshInterval:    cfg.RefreshInterval,
		HotRefreshInterval: cfg.HotRefreshInterval,
	}, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(b *board.Board, f Forecasters, logger zerolog.Logger) *api.ForecastHandler {
	return api.NewForecastHandler(b, f.Single, f.Batch, logger)
}

// ProvideServer creates the HTTP server.
func ProvideServer(cfg *config.Config, h *api.ForecastHandler, rec *metrics.Recorder, logger zerolog.Logger) *api.Server {
	return api.NewServer(cfg.HTTPAddr, h, rec.Handler(), logger)
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, source models.SnapshotSource, f Forecasters, b *board.Board,
	refresher *board.Refresher, server *api.Server, logger zerolog.Logger) *App {
	return &App{
		Config:      cfg,
		Source:      source,
		Forecasters: f,
		Board:       b,
		Refresher:   refresher,
		Server:      server,
		logger:      logger.With().Str("component", "app").Logger(),
	}
}
